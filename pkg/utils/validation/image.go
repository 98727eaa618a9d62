// Package validation checks room photo uploads before they are read.
package validation

import (
	"errors"
	"fmt"
	"mime/multipart"

	"roomfinder_backend/pkg/utils/image"
)

var (
	ErrNoPhoto       = errors.New("An image file is required")
	ErrPhotoTooLarge = fmt.Errorf("Room photos must be %dMB or smaller", image.MaxUploadSize>>20)
	ErrPhotoFormat   = errors.New("Room photos must be JPEG, PNG or WebP")
)

// CheckRoomPhoto rejects a multipart file by size or by name. The content
// itself is checked when it is decoded.
func CheckRoomPhoto(file *multipart.FileHeader) error {
	switch {
	case file == nil:
		return ErrNoPhoto
	case file.Size <= 0:
		return ErrNoPhoto
	case file.Size > image.MaxUploadSize:
		return ErrPhotoTooLarge
	}
	if _, ok := image.FormatFromName(file.Filename); !ok {
		return ErrPhotoFormat
	}
	return nil
}
