package model

import (
	"time"

	"gorm.io/datatypes"
)

type PropertyType string

const (
	PropertyType1BHK PropertyType = "1 BHK"
	PropertyType2BHK PropertyType = "2 BHK"
	PropertyType1Bed PropertyType = "1 Bed"
	PropertyType2Bed PropertyType = "2 Bed"
	PropertyType3Bed PropertyType = "3 Bed"
)

var PropertyTypes = []PropertyType{
	PropertyType1BHK,
	PropertyType2BHK,
	PropertyType1Bed,
	PropertyType2Bed,
	PropertyType3Bed,
}

func (p PropertyType) Valid() bool {
	for _, t := range PropertyTypes {
		if p == t {
			return true
		}
	}
	return false
}

type TenantPreference string

const (
	TenantBachelor TenantPreference = "Bachelor"
	TenantFamily   TenantPreference = "Family"
	TenantGirls    TenantPreference = "Girls"
	TenantWorking  TenantPreference = "Working"
)

var TenantPreferences = []TenantPreference{
	TenantBachelor,
	TenantFamily,
	TenantGirls,
	TenantWorking,
}

func (t TenantPreference) Valid() bool {
	for _, p := range TenantPreferences {
		if t == p {
			return true
		}
	}
	return false
}

// Room is a rental listing. Rows are hard deleted; images go with them.
type Room struct {
	ID                 uint                        `json:"id" gorm:"primaryKey"`
	OwnerID            string                      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title              string                      `json:"title" gorm:"not null"`
	Description        string                      `json:"description" gorm:"type:text"`
	Location           string                      `json:"location" gorm:"not null"`
	RentPrice          int                         `json:"rent_price" gorm:"not null;index"`
	PropertyType       PropertyType                `json:"property_type" gorm:"not null"`
	TenantPreference   TenantPreference            `json:"tenant_preference" gorm:"not null"`
	OwnerContactNumber string                      `json:"owner_contact_number" gorm:"not null"`
	Amenities          datatypes.JSONSlice[string] `json:"amenities"`
	AreaSqft           *int                        `json:"area_sqft"`
	FloorNumber        *int                        `json:"floor_number"`
	IsAvailable        bool                        `json:"is_available" gorm:"not null;default:true;index"`
	CreatedAt          time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt          time.Time                   `json:"updated_at"`

	// Relations
	Images []RoomImage `json:"images" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Owner  *Profile    `json:"owner" gorm:"foreignKey:OwnerID"`
}

type RoomImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RoomID       uint      `json:"room_id" gorm:"not null;index"`
	ImageURL     string    `json:"image_url" gorm:"not null"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

// CoverImage is the first image in display order, or "" when there is none.
func (r *Room) CoverImage() string {
	if len(r.Images) == 0 {
		return ""
	}
	return r.Images[0].ImageURL
}
