package repository

import (
	"context"
	"strings"
	"time"

	"roomfinder_backend/internal/model"
)

func (s *GormStore) CreateCredential(ctx context.Context, cred *model.Credential) error {
	return classify(s.db.WithContext(ctx).Create(cred).Error)
}

func (s *GormStore) FindCredential(ctx context.Context, id string) (*model.Credential, error) {
	var cred model.Credential
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&cred).Error; err != nil {
		return nil, classify(err)
	}
	return &cred, nil
}

func (s *GormStore) FindCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var cred model.Credential
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&cred).Error
	if err != nil {
		return nil, classify(err)
	}
	return &cred, nil
}

func (s *GormStore) ConfirmCredential(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&model.Credential{}).Where("id = ?", id).Update("confirmed", true)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateAuthCode(ctx context.Context, code *model.AuthCode) error {
	return classify(s.db.WithContext(ctx).Create(code).Error)
}

func (s *GormStore) ConsumeAuthCode(ctx context.Context, code string, now time.Time) (*model.AuthCode, error) {
	// The conditional update is what makes a code single use.
	res := s.db.WithContext(ctx).Model(&model.AuthCode{}).
		Where("code = ? AND used_at IS NULL AND expires_at > ?", code, now).
		Update("used_at", now)
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var authCode model.AuthCode
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&authCode).Error; err != nil {
		return nil, classify(err)
	}
	return &authCode, nil
}

func (s *GormStore) PurgeAuthCodes(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("used_at IS NOT NULL OR expires_at <= ?", now).
		Delete(&model.AuthCode{})
	return res.RowsAffected, classify(res.Error)
}

var _ Store = (*GormStore)(nil)
