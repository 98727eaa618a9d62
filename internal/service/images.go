package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/pkg/utils/image"
	"roomfinder_backend/pkg/utils/storage"
)

const MaxRoomImages = 16

// ObjectStorage holds uploaded image bytes. Delete ignores URLs it did not
// issue.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

var ErrStorageDisabled = errors.New("image storage is not configured")

func removeObject(ctx context.Context, objects ObjectStorage, url string) {
	if objects == nil {
		return
	}
	if err := objects.Delete(ctx, url); err != nil {
		log.Printf("[images] could not remove stored object %s: %v", url, err)
	}
}

// Images attaches images to rooms. Attaching and removing are owner only.
type Images struct {
	store   repository.ImageStore
	gate    *AccessGate
	objects ObjectStorage
	now     func() time.Time
}

func NewImages(store repository.ImageStore, gate *AccessGate, objects ObjectStorage) *Images {
	return &Images{store: store, gate: gate, objects: objects, now: time.Now}
}

func (s *Images) List(ctx context.Context, roomID uint) ([]model.RoomImage, error) {
	images, err := s.store.ListImages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list images of room %d: %w", roomID, err)
	}
	if images == nil {
		images = []model.RoomImage{}
	}
	return images, nil
}

// Attach records imageURL against the room. The first image of a room should
// be given display order 0.
func (s *Images) Attach(ctx context.Context, callerID string, roomID uint, imageURL string, displayOrder int) (*model.RoomImage, error) {
	if imageURL == "" {
		return nil, Invalid("Missing required fields")
	}
	if err := s.authorizeAttach(ctx, callerID, roomID, displayOrder); err != nil {
		return nil, err
	}
	return s.attach(ctx, roomID, imageURL, displayOrder)
}

// Upload re-encodes the file, stores it and attaches the resulting URL. The
// stored object is removed again if the row can not be written.
func (s *Images) Upload(ctx context.Context, callerID string, roomID uint, filename string, r io.Reader, displayOrder *int) (*model.RoomImage, error) {
	if s.objects == nil {
		return nil, ErrStorageDisabled
	}
	order := 0
	if displayOrder != nil {
		order = *displayOrder
	}
	if err := s.authorizeAttach(ctx, callerID, roomID, order); err != nil {
		return nil, err
	}

	processed, err := image.Process(r)
	if err != nil {
		return nil, Invalid("Invalid image file")
	}

	key := storage.ObjectKey(callerID, roomID, filename, processed.Ext, s.now())
	url, err := s.objects.Put(ctx, key, processed.Body, processed.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img, err := s.attach(ctx, roomID, url, order)
	if err != nil {
		removeObject(ctx, s.objects, url)
		return nil, err
	}
	return img, nil
}

// authorizeAttach checks ownership and the per-room image limit.
func (s *Images) authorizeAttach(ctx context.Context, callerID string, roomID uint, displayOrder int) error {
	if displayOrder < 0 {
		return Invalid("Display order must not be negative")
	}
	if err := s.gate.AuthorizeMutation(ctx, roomID, callerID, "add images to"); err != nil {
		return err
	}

	existing, err := s.store.ListImages(ctx, roomID)
	if err != nil {
		return fmt.Errorf("list images of room %d: %w", roomID, err)
	}
	if len(existing) >= MaxRoomImages {
		return Invalid(fmt.Sprintf("Maximum %d images allowed", MaxRoomImages))
	}
	return nil
}

// attach writes the row. Callers run authorizeAttach first.
func (s *Images) attach(ctx context.Context, roomID uint, imageURL string, displayOrder int) (*model.RoomImage, error) {
	img := &model.RoomImage{RoomID: roomID, ImageURL: imageURL, DisplayOrder: displayOrder}
	if err := s.store.AddImage(ctx, img); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Room not found")
		}
		return nil, fmt.Errorf("add image to room %d: %w", roomID, err)
	}
	return img, nil
}

// Remove detaches an image from the room and drops the stored object if it
// came from this service's bucket.
func (s *Images) Remove(ctx context.Context, callerID string, roomID, imageID uint) error {
	if err := s.gate.AuthorizeMutation(ctx, roomID, callerID, "remove images from"); err != nil {
		return err
	}

	img, err := s.store.FindImage(ctx, roomID, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Image not found")
		}
		return fmt.Errorf("find image %d: %w", imageID, err)
	}
	if err := s.store.DeleteImage(ctx, img.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Image not found")
		}
		return fmt.Errorf("delete image %d: %w", imageID, err)
	}

	removeObject(ctx, s.objects, img.ImageURL)
	return nil
}

// Uploads stores standalone images for room forms that upload before the room
// exists. The returned URL is later passed as an imageUrl.
type Uploads struct {
	objects ObjectStorage
	now     func() time.Time
}

func NewUploads(objects ObjectStorage) *Uploads {
	return &Uploads{objects: objects, now: time.Now}
}

func (s *Uploads) Upload(ctx context.Context, callerID, filename string, r io.Reader) (string, error) {
	if s.objects == nil {
		return "", ErrStorageDisabled
	}
	processed, err := image.Process(r)
	if err != nil {
		return "", Invalid("Invalid image file")
	}

	key := storage.ObjectKey(callerID, 0, filename, processed.Ext, s.now())
	url, err := s.objects.Put(ctx, key, processed.Body, processed.ContentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}
