package model

import "time"

// SavedRoom bookmarks a room for a user. The unique index backs the toggle
// against concurrent double inserts.
type SavedRoom struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_room"`
	RoomID    uint      `json:"room_id" gorm:"not null;index;uniqueIndex:idx_saved_user_room"`
	CreatedAt time.Time `json:"created_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
