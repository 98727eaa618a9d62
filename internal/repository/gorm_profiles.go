package repository

import (
	"context"

	"roomfinder_backend/internal/model"
)

func (s *GormStore) FindProfile(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, classify(err)
	}
	return &profile, nil
}

func (s *GormStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return classify(s.db.WithContext(ctx).Create(profile).Error)
}

func (s *GormStore) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.Profile, error) {
	if !update.Empty() {
		updates := map[string]interface{}{}
		if update.FirstName != nil {
			updates["first_name"] = *update.FirstName
		}
		if update.LastName != nil {
			updates["last_name"] = *update.LastName
		}
		if update.PhoneNumber != nil {
			updates["phone_number"] = *update.PhoneNumber
		}
		res := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindProfile(ctx, id)
}
