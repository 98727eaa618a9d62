// Package seed loads development fixtures: one owner account with a handful
// of listings.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
)

const (
	FixtureOwnerEmail    = "owner@roomfinder.local"
	FixtureOwnerPassword = "roomfinder123"
)

type Store interface {
	repository.CredentialStore
	repository.ProfileStore
	repository.RoomStore
	repository.ImageStore
}

func intPtr(v int) *int { return &v }

func fixtureRooms() []model.Room {
	return []model.Room{
		{
			Title:              "Furnished 1 BHK near Metro",
			Description:        "Bright apartment five minutes from the metro station.",
			Location:           "Indiranagar, Bangalore",
			RentPrice:          18000,
			PropertyType:       model.PropertyType1BHK,
			TenantPreference:   model.TenantWorking,
			OwnerContactNumber: "+91 98450 12345",
			Amenities:          []string{"WiFi", "Power Backup", "Lift"},
			AreaSqft:           intPtr(620),
			FloorNumber:        intPtr(3),
			IsAvailable:        true,
		},
		{
			Title:              "Spacious 2 BHK for Families",
			Description:        "Gated society with children's play area and parking.",
			Location:           "Kothrud, Pune",
			RentPrice:          24000,
			PropertyType:       model.PropertyType2BHK,
			TenantPreference:   model.TenantFamily,
			OwnerContactNumber: "+91 98450 12345",
			Amenities:          []string{"Parking", "Security", "Gym"},
			AreaSqft:           intPtr(1050),
			FloorNumber:        intPtr(5),
			IsAvailable:        true,
		},
		{
			Title:              "Single Bed in Girls PG",
			Description:        "Meals included, housekeeping twice a week.",
			Location:           "Koramangala, Bangalore",
			RentPrice:          9000,
			PropertyType:       model.PropertyType1Bed,
			TenantPreference:   model.TenantGirls,
			OwnerContactNumber: "+91 98450 12345",
			Amenities:          []string{"Meals", "WiFi", "Laundry"},
			IsAvailable:        true,
		},
		{
			Title:              "Shared Room for Bachelors",
			Description:        "Two beds per room, walking distance to the tech park.",
			Location:           "Hinjewadi, Pune",
			RentPrice:          6500,
			PropertyType:       model.PropertyType2Bed,
			TenantPreference:   model.TenantBachelor,
			OwnerContactNumber: "+91 98450 12345",
			Amenities:          []string{"WiFi", "Washing Machine"},
			FloorNumber:        intPtr(1),
			IsAvailable:        true,
		},
	}
}

// SeedFixtures creates the fixture owner and its rooms. It is safe to run on
// every start: an existing owner with rooms is left alone.
func SeedFixtures(ctx context.Context, provider auth.Provider, store Store) error {
	ownerID, err := fixtureOwner(ctx, provider, store)
	if err != nil {
		return err
	}

	existing, err := store.FindRoomsByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list fixture rooms: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("[seed] fixture rooms already present, skipping")
		return nil
	}

	for _, room := range fixtureRooms() {
		room := room
		room.OwnerID = ownerID
		if err := store.CreateRoom(ctx, &room); err != nil {
			return fmt.Errorf("create fixture room %q: %w", room.Title, err)
		}
	}

	log.Printf("[seed] fixtures loaded, sign in as %s", FixtureOwnerEmail)
	return nil
}

func fixtureOwner(ctx context.Context, provider auth.Provider, store Store) (string, error) {
	identity, _, err := provider.SignUp(ctx, FixtureOwnerEmail, FixtureOwnerPassword, map[string]interface{}{
		"first_name": "Demo",
		"last_name":  "Owner",
		"user_type":  string(model.UserTypeOwner),
	})
	var ownerID string
	switch {
	case err == nil:
		ownerID = identity.ID
	case errors.Is(err, auth.ErrEmailTaken):
		cred, err := store.FindCredentialByEmail(ctx, FixtureOwnerEmail)
		if err != nil {
			return "", fmt.Errorf("find fixture owner: %w", err)
		}
		ownerID = cred.ID
	default:
		return "", fmt.Errorf("create fixture owner: %w", err)
	}

	err = store.CreateProfile(ctx, &model.Profile{
		ID:          ownerID,
		Email:       FixtureOwnerEmail,
		FirstName:   "Demo",
		LastName:    "Owner",
		PhoneNumber: "+91 98450 12345",
		UserType:    model.UserTypeOwner,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return "", fmt.Errorf("create fixture profile: %w", err)
	}
	return ownerID, nil
}
