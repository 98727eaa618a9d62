package service

import (
	"context"
	"errors"
	"fmt"

	"roomfinder_backend/internal/repository"
)

// AccessGate decides whether a caller may mutate a room.
type AccessGate struct {
	rooms repository.RoomStore
}

func NewAccessGate(rooms repository.RoomStore) *AccessGate {
	return &AccessGate{rooms: rooms}
}

// AuthorizeMutation permits only the room's owner. A missing room is denied
// the same way as a foreign one so callers cannot probe for existence.
func (g *AccessGate) AuthorizeMutation(ctx context.Context, roomID uint, callerID, action string) error {
	denied := Forbidden(fmt.Sprintf("Not authorized to %s this room", action))
	if callerID == "" {
		return denied
	}

	ownerID, err := g.rooms.RoomOwner(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return denied
		}
		return fmt.Errorf("look up room owner: %w", err)
	}
	if ownerID != callerID {
		return denied
	}
	return nil
}
