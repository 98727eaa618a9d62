package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/service"
	"roomfinder_backend/pkg/utils/validation"
)

type UploadController struct {
	uploads *service.Uploads
}

func NewUploadController(uploads *service.Uploads) *UploadController {
	return &UploadController{uploads: uploads}
}

// UploadImage stores a photo before its room exists and returns the URL the
// room form later submits in imageUrls.
func (h *UploadController) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, validation.ErrNoPhoto.Error())
	}
	if err := validation.CheckRoomPhoto(file); err != nil {
		return badRequest(c, err.Error())
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, err, "Could not read file")
	}
	defer src.Close()

	url, err := h.uploads.Upload(c.UserContext(), callerID(c), file.Filename, src)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			return respondError(c, err, "Image uploads are not available")
		}
		return respondError(c, err, "Failed to upload image")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
