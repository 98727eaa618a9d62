// Package repository holds the store contracts the services depend on and the
// gorm backed implementation of them.
package repository

import (
	"context"
	"errors"
	"time"

	"roomfinder_backend/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	// ErrJoinUnsupported means the store refused to resolve the owner relation
	// in the same request. Callers retry without it.
	ErrJoinUnsupported = errors.New("owner join unsupported by store")
)

// OwnerJoin selects how much of the owning profile is loaded with a room.
type OwnerJoin int

const (
	OwnerNone OwnerJoin = iota
	// OwnerSummary loads first_name, last_name and email.
	OwnerSummary
	// OwnerContact adds phone_number on top of the summary.
	OwnerContact
)

// RoomFilter restricts a listing query. Empty and nil fields do not filter.
// Only available rooms are ever returned.
type RoomFilter struct {
	Location         string
	MinPrice         *int
	MaxPrice         *int
	PropertyType     model.PropertyType
	TenantPreference model.TenantPreference
	Limit            int
}

// RoomUpdate carries a partial update; nil fields are left untouched.
// The Clear flags set the nullable columns back to NULL and win over a value.
type RoomUpdate struct {
	Title              *string
	Description        *string
	Location           *string
	RentPrice          *int
	PropertyType       *model.PropertyType
	TenantPreference   *model.TenantPreference
	OwnerContactNumber *string
	Amenities          *[]string
	AreaSqft           *int
	FloorNumber        *int
	IsAvailable        *bool

	ClearAreaSqft    bool
	ClearFloorNumber bool
}

func (u RoomUpdate) Empty() bool {
	return u == RoomUpdate{}
}

type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

func (u ProfileUpdate) Empty() bool {
	return u == ProfileUpdate{}
}

type RoomStore interface {
	FindRooms(ctx context.Context, filter RoomFilter, owner OwnerJoin) ([]model.Room, error)
	FindRoom(ctx context.Context, id uint, owner OwnerJoin) (*model.Room, error)
	FindRoomsByOwner(ctx context.Context, ownerID string) ([]model.Room, error)
	RoomOwner(ctx context.Context, id uint) (string, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, id uint, update RoomUpdate) (*model.Room, error)
	DeleteRoom(ctx context.Context, id uint) error
}

type ImageStore interface {
	ListImages(ctx context.Context, roomID uint) ([]model.RoomImage, error)
	AddImage(ctx context.Context, image *model.RoomImage) error
	FindImage(ctx context.Context, roomID, imageID uint) (*model.RoomImage, error)
	DeleteImage(ctx context.Context, imageID uint) error
}

type ProfileStore interface {
	FindProfile(ctx context.Context, id string) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.Profile, error)
}

type SavedRoomStore interface {
	FindSaved(ctx context.Context, userID string, roomID uint) (*model.SavedRoom, error)
	CreateSaved(ctx context.Context, saved *model.SavedRoom) error
	// DeleteSaved reports whether a row was removed.
	DeleteSaved(ctx context.Context, userID string, roomID uint) (bool, error)
	// ListSaved returns the user's saved rows newest first, each with its room
	// and images loaded. Rows whose room is gone are left out.
	ListSaved(ctx context.Context, userID string) ([]model.SavedRoom, error)
	PurgeDanglingSaved(ctx context.Context) (int64, error)
}

type CredentialStore interface {
	CreateCredential(ctx context.Context, cred *model.Credential) error
	FindCredential(ctx context.Context, id string) (*model.Credential, error)
	FindCredentialByEmail(ctx context.Context, email string) (*model.Credential, error)
	ConfirmCredential(ctx context.Context, id string) error
	CreateAuthCode(ctx context.Context, code *model.AuthCode) error
	// ConsumeAuthCode marks an unexpired, unused code as used and returns it.
	ConsumeAuthCode(ctx context.Context, code string, now time.Time) (*model.AuthCode, error)
	PurgeAuthCodes(ctx context.Context, now time.Time) (int64, error)
}

// Store is everything the API needs from persistence.
type Store interface {
	RoomStore
	ImageStore
	ProfileStore
	SavedRoomStore
	CredentialStore
}
