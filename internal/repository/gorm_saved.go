package repository

import (
	"context"

	"roomfinder_backend/internal/model"
)

func (s *GormStore) FindSaved(ctx context.Context, userID string, roomID uint) (*model.SavedRoom, error) {
	var saved model.SavedRoom
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		First(&saved).Error
	if err != nil {
		return nil, classify(err)
	}
	return &saved, nil
}

func (s *GormStore) CreateSaved(ctx context.Context, saved *model.SavedRoom) error {
	return classify(s.db.WithContext(ctx).Omit("Room").Create(saved).Error)
}

func (s *GormStore) DeleteSaved(ctx context.Context, userID string, roomID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Delete(&model.SavedRoom{})
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ListSaved(ctx context.Context, userID string) ([]model.SavedRoom, error) {
	var saved []model.SavedRoom
	err := s.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = saved_rooms.room_id").
		Where("saved_rooms.user_id = ?", userID).
		Preload("Room").
		Preload("Room.Images", orderedImages).
		Order("saved_rooms.created_at DESC").
		Order("saved_rooms.id DESC").
		Find(&saved).Error
	return saved, classify(err)
}

func (s *GormStore) PurgeDanglingSaved(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("room_id NOT IN (?)", s.db.Model(&model.Room{}).Select("id")).
		Delete(&model.SavedRoom{})
	return res.RowsAffected, classify(res.Error)
}
