package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository/memory"
)

const (
	ownerID  = "0b7d2f4e-1c5a-4f53-9a77-1d2c3e4f5a60"
	otherID  = "6e1f0a9b-2d3c-4b5a-8e7f-0a1b2c3d4e5f"
	finderID = "9c8b7a6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateProfile(ctx, &model.Profile{
		ID: ownerID, Email: "owner@example.com", FirstName: "Asha", LastName: "Rao",
		PhoneNumber: "+91 98450 00000", UserType: model.UserTypeOwner,
	}))
	require.NoError(t, store.CreateProfile(ctx, &model.Profile{
		ID: otherID, Email: "other@example.com", FirstName: "Vikram", LastName: "Shah",
		UserType: model.UserTypeOwner,
	}))
	require.NoError(t, store.CreateProfile(ctx, &model.Profile{
		ID: finderID, Email: "finder@example.com", FirstName: "Meera", LastName: "Iyer",
		UserType: model.UserTypeFinder,
	}))
	return store
}

// addRoom stores an available room created i minutes after baseTime.
func addRoom(t *testing.T, store *memory.Store, i int, price int, pt model.PropertyType) *model.Room {
	t.Helper()
	room := &model.Room{
		OwnerID:            ownerID,
		Title:              "Room",
		Location:           "Koramangala, Bangalore",
		RentPrice:          price,
		PropertyType:       pt,
		TenantPreference:   model.TenantWorking,
		OwnerContactNumber: "+91 98450 00000",
		Amenities:          []string{"WiFi"},
		IsAvailable:        true,
		CreatedAt:          baseTime.Add(time.Duration(i) * time.Minute),
	}
	require.NoError(t, store.CreateRoom(context.Background(), room))
	return room
}

type fakeObjects struct {
	mu      sync.Mutex
	puts    map[string][]byte
	deleted []string
	putErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{puts: map[string][]byte{}}
}

func (f *fakeObjects) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts[key] = body
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjects) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

var errBoom = errors.New("connection reset by peer")
