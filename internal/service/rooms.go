package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
)

const FeaturedRoomsLimit = 6

// listing keeps empty results encoding as [] rather than null.
func listing(rooms []model.Room) []model.Room {
	if rooms == nil {
		return []model.Room{}
	}
	return rooms
}

type RoomStore interface {
	repository.RoomStore
	repository.ImageStore
	repository.ProfileStore
}

// Rooms is the listing query builder and room aggregate fetcher, plus the
// owner side create/update/delete.
type Rooms struct {
	store   RoomStore
	gate    *AccessGate
	objects ObjectStorage
}

func NewRooms(store RoomStore, gate *AccessGate, objects ObjectStorage) *Rooms {
	return &Rooms{store: store, gate: gate, objects: objects}
}

// Search runs the listing query with the owner summary joined in. When the
// store cannot resolve that join the identical filter is rerun without it.
func (s *Rooms) Search(ctx context.Context, filter repository.RoomFilter) ([]model.Room, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return []model.Room{}, nil
	}

	rooms, err := s.store.FindRooms(ctx, filter, repository.OwnerSummary)
	if errors.Is(err, repository.ErrJoinUnsupported) {
		log.Printf("[rooms] owner join unavailable, listing without owners: %v", err)
		rooms, err = s.store.FindRooms(ctx, filter, repository.OwnerNone)
	}
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	return listing(rooms), nil
}

func (s *Rooms) Featured(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.store.FindRooms(ctx, repository.RoomFilter{Limit: FeaturedRoomsLimit}, repository.OwnerNone)
	if err != nil {
		return nil, fmt.Errorf("find featured rooms: %w", err)
	}
	return listing(rooms), nil
}

// Get returns a room with its ordered images and owner contact details. When
// the joined read is unsupported the room and the owner are read separately
// and merged; Owner stays nil if that second read fails.
func (s *Rooms) Get(ctx context.Context, id uint) (*model.Room, error) {
	room, err := s.store.FindRoom(ctx, id, repository.OwnerContact)
	if errors.Is(err, repository.ErrJoinUnsupported) {
		log.Printf("[rooms] owner join unavailable for room %d, fetching separately", id)
		room, err = s.store.FindRoom(ctx, id, repository.OwnerNone)
		if err == nil {
			room.Owner = s.ownerContact(ctx, room.OwnerID)
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Room not found")
		}
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}
	return room, nil
}

func (s *Rooms) ownerContact(ctx context.Context, ownerID string) *model.Profile {
	if ownerID == "" {
		return nil
	}
	profile, err := s.store.FindProfile(ctx, ownerID)
	if err != nil {
		log.Printf("[rooms] owner profile %s unavailable: %v", ownerID, err)
		return nil
	}
	return &model.Profile{
		ID:          profile.ID,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
	}
}

// Mine lists every room of the owner, available or not.
func (s *Rooms) Mine(ctx context.Context, ownerID string) ([]model.Room, error) {
	rooms, err := s.store.FindRoomsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find rooms of %s: %w", ownerID, err)
	}
	return listing(rooms), nil
}

type NewRoom struct {
	Title              string
	Description        string
	Location           string
	RentPrice          int
	PropertyType       model.PropertyType
	TenantPreference   model.TenantPreference
	OwnerContactNumber string
	Amenities          []string
	AreaSqft           *int
	FloorNumber        *int
	ImageURLs          []string
}

func (n NewRoom) validate() error {
	if n.Title == "" || n.Location == "" || n.RentPrice == 0 ||
		n.PropertyType == "" || n.TenantPreference == "" || n.OwnerContactNumber == "" {
		return Invalid("Missing required fields")
	}
	if n.RentPrice < 0 {
		return Invalid("Rent price must be positive")
	}
	if !n.PropertyType.Valid() {
		return Invalid("Invalid property type")
	}
	if !n.TenantPreference.Valid() {
		return Invalid("Invalid tenant preference")
	}
	if n.AreaSqft != nil && *n.AreaSqft < 0 {
		return Invalid("Area must not be negative")
	}
	if len(n.ImageURLs) > MaxRoomImages {
		return Invalid(fmt.Sprintf("Maximum %d images allowed", MaxRoomImages))
	}
	return nil
}

// Create stores a room owned by ownerID and then attaches ImageURLs in order.
// Image attachment is not transactional: a failed image is logged and
// skipped, the room and the other images stay.
func (s *Rooms) Create(ctx context.Context, ownerID string, in NewRoom) (*model.Room, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	profile, err := s.store.FindProfile(ctx, ownerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find profile %s: %w", ownerID, err)
	}
	if profile == nil || !profile.IsOwner() {
		return nil, Forbidden("Only owners can list rooms")
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	room := &model.Room{
		OwnerID:            ownerID,
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		RentPrice:          in.RentPrice,
		PropertyType:       in.PropertyType,
		TenantPreference:   in.TenantPreference,
		OwnerContactNumber: in.OwnerContactNumber,
		Amenities:          amenities,
		AreaSqft:           in.AreaSqft,
		FloorNumber:        in.FloorNumber,
		IsAvailable:        true,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	room.Images = []model.RoomImage{}
	for i, url := range in.ImageURLs {
		image := &model.RoomImage{RoomID: room.ID, ImageURL: url, DisplayOrder: i}
		if err := s.store.AddImage(ctx, image); err != nil {
			log.Printf("[rooms] attach image %d/%d to room %d failed: %v", i+1, len(in.ImageURLs), room.ID, err)
			continue
		}
		room.Images = append(room.Images, *image)
	}
	return room, nil
}

func validateUpdate(u repository.RoomUpdate) error {
	if u.Title != nil && *u.Title == "" ||
		u.Location != nil && *u.Location == "" ||
		u.OwnerContactNumber != nil && *u.OwnerContactNumber == "" {
		return Invalid("Required fields cannot be empty")
	}
	if u.RentPrice != nil && *u.RentPrice <= 0 {
		return Invalid("Rent price must be positive")
	}
	if u.PropertyType != nil && !u.PropertyType.Valid() {
		return Invalid("Invalid property type")
	}
	if u.TenantPreference != nil && !u.TenantPreference.Valid() {
		return Invalid("Invalid tenant preference")
	}
	if u.AreaSqft != nil && *u.AreaSqft < 0 {
		return Invalid("Area must not be negative")
	}
	return nil
}

func (s *Rooms) Update(ctx context.Context, callerID string, id uint, update repository.RoomUpdate) (*model.Room, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeMutation(ctx, id, callerID, "update"); err != nil {
		return nil, err
	}

	room, err := s.store.UpdateRoom(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Room not found")
		}
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	return room, nil
}

// Delete hard deletes the room. Stored image objects are removed best effort
// after the row is gone.
func (s *Rooms) Delete(ctx context.Context, callerID string, id uint) error {
	if err := s.gate.AuthorizeMutation(ctx, id, callerID, "delete"); err != nil {
		return err
	}

	images, err := s.store.ListImages(ctx, id)
	if err != nil {
		log.Printf("[rooms] could not list images of room %d before delete: %v", id, err)
	}

	if err := s.store.DeleteRoom(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Room not found")
		}
		return fmt.Errorf("delete room %d: %w", id, err)
	}

	for _, img := range images {
		removeObject(ctx, s.objects, img.ImageURL)
	}
	return nil
}
