// Package memory is an in-process repository.Store used by tests and local
// runs without PostgreSQL. It follows the gorm store's semantics, including
// the owner join fallback trigger.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
)

type Store struct {
	mu sync.Mutex

	// FailOwnerJoin makes every owner-joined room read fail with
	// repository.ErrJoinUnsupported.
	FailOwnerJoin bool
	// ReadErr, when set, is returned by every room read.
	ReadErr error
	// Now stamps created rows. Defaults to time.Now.
	Now func() time.Time

	nextRoomID  uint
	nextImageID uint
	nextSavedID uint

	rooms       map[uint]model.Room
	images      map[uint]model.RoomImage
	profiles    map[string]model.Profile
	saved       map[uint]model.SavedRoom
	credentials map[string]model.Credential
	codes       map[string]model.AuthCode
}

func New() *Store {
	return &Store{
		Now:         time.Now,
		rooms:       map[uint]model.Room{},
		images:      map[uint]model.RoomImage{},
		profiles:    map[string]model.Profile{},
		saved:       map[uint]model.SavedRoom{},
		credentials: map[string]model.Credential{},
		codes:       map[string]model.AuthCode{},
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// roomImages returns the room's images by display order, then insertion order.
func (s *Store) roomImages(roomID uint) []model.RoomImage {
	images := []model.RoomImage{}
	for _, img := range s.images {
		if img.RoomID == roomID {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].DisplayOrder != images[j].DisplayOrder {
			return images[i].DisplayOrder < images[j].DisplayOrder
		}
		return images[i].ID < images[j].ID
	})
	return images
}

func (s *Store) ownerOf(room model.Room, owner repository.OwnerJoin) *model.Profile {
	p, ok := s.profiles[room.OwnerID]
	if !ok {
		return nil
	}
	out := &model.Profile{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
	if owner == repository.OwnerContact {
		out.PhoneNumber = p.PhoneNumber
	}
	return out
}

func (s *Store) load(room model.Room, owner repository.OwnerJoin) model.Room {
	room.Amenities = append(room.Amenities[:0:0], room.Amenities...)
	room.Images = s.roomImages(room.ID)
	room.Owner = nil
	if owner != repository.OwnerNone {
		room.Owner = s.ownerOf(room, owner)
	}
	return room
}

func matches(room model.Room, f repository.RoomFilter) bool {
	if !room.IsAvailable {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(room.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.MinPrice != nil && room.RentPrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && room.RentPrice > *f.MaxPrice {
		return false
	}
	if f.PropertyType != "" && room.PropertyType != f.PropertyType {
		return false
	}
	if f.TenantPreference != "" && room.TenantPreference != f.TenantPreference {
		return false
	}
	return true
}

func sortNewestFirst(rooms []model.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
}

func (s *Store) FindRooms(_ context.Context, f repository.RoomFilter, owner repository.OwnerJoin) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if owner != repository.OwnerNone && s.FailOwnerJoin {
		return nil, repository.ErrJoinUnsupported
	}

	rooms := []model.Room{}
	for _, room := range s.rooms {
		if matches(room, f) {
			rooms = append(rooms, s.load(room, owner))
		}
	}
	sortNewestFirst(rooms)
	if f.Limit > 0 && len(rooms) > f.Limit {
		rooms = rooms[:f.Limit]
	}
	return rooms, nil
}

func (s *Store) FindRoom(_ context.Context, id uint, owner repository.OwnerJoin) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if owner != repository.OwnerNone && s.FailOwnerJoin {
		return nil, repository.ErrJoinUnsupported
	}
	room, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	loaded := s.load(room, owner)
	return &loaded, nil
}

func (s *Store) FindRoomsByOwner(_ context.Context, ownerID string) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := []model.Room{}
	for _, room := range s.rooms {
		if room.OwnerID == ownerID {
			rooms = append(rooms, s.load(room, repository.OwnerNone))
		}
	}
	sortNewestFirst(rooms)
	return rooms, nil
}

func (s *Store) RoomOwner(_ context.Context, id uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return room.OwnerID, nil
}

func (s *Store) CreateRoom(_ context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRoomID++
	room.ID = s.nextRoomID
	if room.CreatedAt.IsZero() {
		room.CreatedAt = s.now()
	}
	room.UpdatedAt = room.CreatedAt

	stored := *room
	stored.Images = nil
	stored.Owner = nil
	s.rooms[room.ID] = stored
	return nil
}

func (s *Store) UpdateRoom(_ context.Context, id uint, u repository.RoomUpdate) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Title != nil {
		room.Title = *u.Title
	}
	if u.Description != nil {
		room.Description = *u.Description
	}
	if u.Location != nil {
		room.Location = *u.Location
	}
	if u.RentPrice != nil {
		room.RentPrice = *u.RentPrice
	}
	if u.PropertyType != nil {
		room.PropertyType = *u.PropertyType
	}
	if u.TenantPreference != nil {
		room.TenantPreference = *u.TenantPreference
	}
	if u.OwnerContactNumber != nil {
		room.OwnerContactNumber = *u.OwnerContactNumber
	}
	if u.Amenities != nil {
		room.Amenities = append([]string(nil), (*u.Amenities)...)
	}
	if u.ClearAreaSqft {
		room.AreaSqft = nil
	} else if u.AreaSqft != nil {
		v := *u.AreaSqft
		room.AreaSqft = &v
	}
	if u.ClearFloorNumber {
		room.FloorNumber = nil
	} else if u.FloorNumber != nil {
		v := *u.FloorNumber
		room.FloorNumber = &v
	}
	if u.IsAvailable != nil {
		room.IsAvailable = *u.IsAvailable
	}
	if !u.Empty() {
		room.UpdatedAt = s.now()
	}
	s.rooms[id] = room

	loaded := s.load(room, repository.OwnerNone)
	return &loaded, nil
}

func (s *Store) DeleteRoom(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rooms, id)
	// Images cascade like the foreign key does; saved rows are left dangling
	// on purpose so the listing and purge paths can be exercised.
	for imgID, img := range s.images {
		if img.RoomID == id {
			delete(s.images, imgID)
		}
	}
	return nil
}

func (s *Store) ListImages(_ context.Context, roomID uint) ([]model.RoomImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomImages(roomID), nil
}

func (s *Store) AddImage(_ context.Context, image *model.RoomImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[image.RoomID]; !ok {
		return repository.ErrNotFound
	}
	s.nextImageID++
	image.ID = s.nextImageID
	image.CreatedAt = s.now()
	s.images[image.ID] = *image
	return nil
}

func (s *Store) FindImage(_ context.Context, roomID, imageID uint) (*model.RoomImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[imageID]
	if !ok || img.RoomID != roomID {
		return nil, repository.ErrNotFound
	}
	return &img, nil
}

func (s *Store) DeleteImage(_ context.Context, imageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[imageID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.images, imageID)
	return nil
}

func (s *Store) FindProfile(_ context.Context, id string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProfile(_ context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return repository.ErrDuplicate
	}
	profile.CreatedAt = s.now()
	profile.UpdatedAt = profile.CreatedAt
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, id string, u repository.ProfileUpdate) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	s.profiles[id] = p
	return &p, nil
}

func (s *Store) FindSaved(_ context.Context, userID string, roomID uint) (*model.SavedRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sr := range s.saved {
		if sr.UserID == userID && sr.RoomID == roomID {
			return &sr, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) CreateSaved(_ context.Context, saved *model.SavedRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sr := range s.saved {
		if sr.UserID == saved.UserID && sr.RoomID == saved.RoomID {
			return repository.ErrDuplicate
		}
	}
	s.nextSavedID++
	saved.ID = s.nextSavedID
	saved.CreatedAt = s.now()
	s.saved[saved.ID] = *saved
	return nil
}

func (s *Store) DeleteSaved(_ context.Context, userID string, roomID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := false
	for id, sr := range s.saved {
		if sr.UserID == userID && sr.RoomID == roomID {
			delete(s.saved, id)
			deleted = true
		}
	}
	return deleted, nil
}

func (s *Store) ListSaved(_ context.Context, userID string) ([]model.SavedRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.SavedRoom{}
	for _, sr := range s.saved {
		if sr.UserID != userID {
			continue
		}
		room, ok := s.rooms[sr.RoomID]
		if !ok {
			continue
		}
		loaded := s.load(room, repository.OwnerNone)
		sr.Room = &loaded
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) PurgeDanglingSaved(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sr := range s.saved {
		if _, ok := s.rooms[sr.RoomID]; !ok {
			delete(s.saved, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateCredential(_ context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.credentials {
		if c.Email == cred.Email {
			return repository.ErrDuplicate
		}
	}
	cred.CreatedAt = s.now()
	cred.UpdatedAt = cred.CreatedAt
	s.credentials[cred.ID] = *cred
	return nil
}

func (s *Store) FindCredential(_ context.Context, id string) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credentials[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindCredentialByEmail(_ context.Context, email string) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range s.credentials {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ConfirmCredential(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credentials[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Confirmed = true
	s.credentials[id] = c
	return nil
}

func (s *Store) CreateAuthCode(_ context.Context, code *model.AuthCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[code.Code]; ok {
		return repository.ErrDuplicate
	}
	code.CreatedAt = s.now()
	s.codes[code.Code] = *code
	return nil
}

func (s *Store) ConsumeAuthCode(_ context.Context, code string, now time.Time) (*model.AuthCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[code]
	if !ok || c.UsedAt != nil || !c.ExpiresAt.After(now) {
		return nil, repository.ErrNotFound
	}
	used := now
	c.UsedAt = &used
	s.codes[code] = c
	return &c, nil
}

func (s *Store) PurgeAuthCodes(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, c := range s.codes {
		if c.UsedAt != nil || !c.ExpiresAt.After(now) {
			delete(s.codes, k)
			n++
		}
	}
	return n, nil
}
