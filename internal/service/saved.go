package service

import (
	"context"
	"errors"
	"fmt"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
)

type SavedStore interface {
	repository.SavedRoomStore
	RoomOwner(ctx context.Context, id uint) (string, error)
}

// SavedRooms manages the caller's bookmarks.
type SavedRooms struct {
	store SavedStore
}

func NewSavedRooms(store SavedStore) *SavedRooms {
	return &SavedRooms{store: store}
}

func (s *SavedRooms) requireRoom(ctx context.Context, roomID uint) error {
	if _, err := s.store.RoomOwner(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Room not found")
		}
		return fmt.Errorf("look up room %d: %w", roomID, err)
	}
	return nil
}

// Toggle unsaves the room when it is saved and saves it otherwise, reporting
// the new state. Two concurrent toggles may both observe "not saved"; the
// unique (user_id, room_id) index lets the loser resolve to saved.
func (s *SavedRooms) Toggle(ctx context.Context, userID string, roomID uint) (bool, error) {
	deleted, err := s.store.DeleteSaved(ctx, userID, roomID)
	if err != nil {
		return false, fmt.Errorf("unsave room %d: %w", roomID, err)
	}
	if deleted {
		return false, nil
	}
	return s.save(ctx, userID, roomID)
}

// Save is idempotent: saving an already saved room succeeds without a second row.
func (s *SavedRooms) Save(ctx context.Context, userID string, roomID uint) error {
	_, err := s.save(ctx, userID, roomID)
	return err
}

func (s *SavedRooms) save(ctx context.Context, userID string, roomID uint) (bool, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return false, err
	}
	err := s.store.CreateSaved(ctx, &model.SavedRoom{UserID: userID, RoomID: roomID})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return false, fmt.Errorf("save room %d: %w", roomID, err)
	}
	return true, nil
}

func (s *SavedRooms) Unsave(ctx context.Context, userID string, roomID uint) error {
	if _, err := s.store.DeleteSaved(ctx, userID, roomID); err != nil {
		return fmt.Errorf("unsave room %d: %w", roomID, err)
	}
	return nil
}

func (s *SavedRooms) IsSaved(ctx context.Context, userID string, roomID uint) (bool, error) {
	_, err := s.store.FindSaved(ctx, userID, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find saved room %d: %w", roomID, err)
	}
	return true, nil
}

// List returns the caller's saved rooms, newest bookmark first. Bookmarks of
// deleted rooms are skipped.
func (s *SavedRooms) List(ctx context.Context, userID string) ([]model.Room, error) {
	saved, err := s.store.ListSaved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved rooms: %w", err)
	}

	rooms := make([]model.Room, 0, len(saved))
	for _, sr := range saved {
		if sr.Room == nil {
			continue
		}
		rooms = append(rooms, *sr.Room)
	}
	return rooms, nil
}
