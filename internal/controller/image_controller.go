package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/service"
	"roomfinder_backend/pkg/utils/validation"
)

type AddImageInput struct {
	ImageURL     string `json:"imageUrl" validate:"required"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

type ImageController struct {
	images *service.Images
}

func NewImageController(images *service.Images) *ImageController {
	return &ImageController{images: images}
}

func (h *ImageController) ListImages(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, service.NotFound("Room not found"), "Failed to fetch images")
	}

	images, err := h.images.List(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch images")
	}
	return c.JSON(fiber.Map{
		"images": images,
	})
}

// AddImage attaches an image by URL (JSON body) or uploads one (multipart
// field "image").
func (h *ImageController) AddImage(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.uploadImage(c, id)
	}

	input := new(AddImageInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := validateInput(input); err != nil {
		return badRequest(c, err.Error())
	}

	image, err := h.images.Attach(c.UserContext(), callerID(c), id, input.ImageURL, input.DisplayOrder)
	if err != nil {
		return respondError(c, err, "Failed to add image")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image": image,
	})
}

func (h *ImageController) uploadImage(c *fiber.Ctx, roomID uint) error {
	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, validation.ErrNoPhoto.Error())
	}
	if err := validation.CheckRoomPhoto(file); err != nil {
		return badRequest(c, err.Error())
	}

	var displayOrder *int
	if raw := c.FormValue("displayOrder"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid displayOrder")
		}
		displayOrder = &n
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, err, "Could not read file")
	}
	defer src.Close()

	image, err := h.images.Upload(c.UserContext(), callerID(c), roomID, file.Filename, src, displayOrder)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			return respondError(c, err, "Image uploads are not available")
		}
		return respondError(c, err, "Failed to upload image")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image": image,
	})
}

func (h *ImageController) DeleteImage(c *fiber.Ctx) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return badRequest(c, "Invalid image ID")
	}

	if err := h.images.Remove(c.UserContext(), callerID(c), roomID, imageID); err != nil {
		return respondError(c, err, "Failed to delete image")
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
