package repository

import (
	"context"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomfinder_backend/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("room_images.display_order ASC").Order("room_images.id ASC")
}

func ownerColumns(owner OwnerJoin) []string {
	cols := []string{"id", "first_name", "last_name", "email"}
	if owner == OwnerContact {
		cols = append(cols, "phone_number")
	}
	return cols
}

func withOwner(q *gorm.DB, owner OwnerJoin) *gorm.DB {
	if owner == OwnerNone {
		return q
	}
	cols := ownerColumns(owner)
	return q.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(cols)
	})
}

// applyRoomFilter adds the listing predicates and ordering to q.
func applyRoomFilter(q *gorm.DB, f RoomFilter) *gorm.DB {
	if f.Location != "" {
		q = q.Where("rooms.location ILIKE ?", "%"+likeEscaper.Replace(f.Location)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("rooms.rent_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("rooms.rent_price <= ?", *f.MaxPrice)
	}
	if f.PropertyType != "" {
		q = q.Where("rooms.property_type = ?", f.PropertyType)
	}
	if f.TenantPreference != "" {
		q = q.Where("rooms.tenant_preference = ?", f.TenantPreference)
	}
	q = q.Where("rooms.is_available = ?", true).
		Order("rooms.created_at DESC").
		Order("rooms.id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}

func (s *GormStore) FindRooms(ctx context.Context, filter RoomFilter, owner OwnerJoin) ([]model.Room, error) {
	q := applyRoomFilter(s.db.WithContext(ctx).Model(&model.Room{}), filter).
		Preload("Images", orderedImages)
	q = withOwner(q, owner)

	var rooms []model.Room
	if err := q.Find(&rooms).Error; err != nil {
		if owner != OwnerNone {
			return nil, classifyJoin(err)
		}
		return nil, classify(err)
	}
	return rooms, nil
}

func (s *GormStore) FindRoom(ctx context.Context, id uint, owner OwnerJoin) (*model.Room, error) {
	q := withOwner(s.db.WithContext(ctx).Preload("Images", orderedImages), owner)

	var room model.Room
	if err := q.First(&room, id).Error; err != nil {
		if owner != OwnerNone {
			return nil, classifyJoin(err)
		}
		return nil, classify(err)
	}
	return &room, nil
}

func (s *GormStore) FindRoomsByOwner(ctx context.Context, ownerID string) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Images", orderedImages).
		Order("created_at DESC").
		Order("id ASC").
		Find(&rooms).Error
	return rooms, classify(err)
}

func (s *GormStore) RoomOwner(ctx context.Context, id uint) (string, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).Select("id", "owner_id").Take(&room, id).Error; err != nil {
		return "", classify(err)
	}
	return room.OwnerID, nil
}

func (s *GormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	return classify(s.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error)
}

func roomUpdateColumns(u RoomUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	}
	if u.RentPrice != nil {
		updates["rent_price"] = *u.RentPrice
	}
	if u.PropertyType != nil {
		updates["property_type"] = *u.PropertyType
	}
	if u.TenantPreference != nil {
		updates["tenant_preference"] = *u.TenantPreference
	}
	if u.OwnerContactNumber != nil {
		updates["owner_contact_number"] = *u.OwnerContactNumber
	}
	if u.Amenities != nil {
		updates["amenities"] = datatypes.JSONSlice[string](*u.Amenities)
	}
	if u.ClearAreaSqft {
		updates["area_sqft"] = nil
	} else if u.AreaSqft != nil {
		updates["area_sqft"] = *u.AreaSqft
	}
	if u.ClearFloorNumber {
		updates["floor_number"] = nil
	} else if u.FloorNumber != nil {
		updates["floor_number"] = *u.FloorNumber
	}
	if u.IsAvailable != nil {
		updates["is_available"] = *u.IsAvailable
	}
	return updates
}

func (s *GormStore) UpdateRoom(ctx context.Context, id uint, update RoomUpdate) (*model.Room, error) {
	if !update.Empty() {
		res := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).Updates(roomUpdateColumns(update))
		if res.Error != nil {
			return nil, classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindRoom(ctx, id, OwnerNone)
}

func (s *GormStore) DeleteRoom(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Room{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListImages(ctx context.Context, roomID uint) ([]model.RoomImage, error) {
	var images []model.RoomImage
	err := orderedImages(s.db.WithContext(ctx).Where("room_id = ?", roomID)).Find(&images).Error
	return images, classify(err)
}

func (s *GormStore) AddImage(ctx context.Context, image *model.RoomImage) error {
	return classify(s.db.WithContext(ctx).Create(image).Error)
}

func (s *GormStore) FindImage(ctx context.Context, roomID, imageID uint) (*model.RoomImage, error) {
	var image model.RoomImage
	if err := s.db.WithContext(ctx).Where("room_id = ?", roomID).First(&image, imageID).Error; err != nil {
		return nil, classify(err)
	}
	return &image, nil
}

func (s *GormStore) DeleteImage(ctx context.Context, imageID uint) error {
	res := s.db.WithContext(ctx).Delete(&model.RoomImage{}, imageID)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
