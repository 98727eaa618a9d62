package repository

import "gorm.io/gorm"

// GormStore implements Store on top of gorm and PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}
