package controller

import (
	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/service"
)

type SavedRoomInput struct {
	RoomID uint `json:"roomId" validate:"required"`
}

type SavedRoomController struct {
	saved *service.SavedRooms
}

func NewSavedRoomController(saved *service.SavedRooms) *SavedRoomController {
	return &SavedRoomController{saved: saved}
}

func (h *SavedRoomController) parseInput(c *fiber.Ctx) (*SavedRoomInput, error) {
	input := new(SavedRoomInput)
	if err := c.BodyParser(input); err != nil {
		return nil, badRequest(c, "Invalid input")
	}
	if err := validateInput(input); err != nil {
		return nil, badRequest(c, err.Error())
	}
	return input, nil
}

func (h *SavedRoomController) ListSaved(c *fiber.Ctx) error {
	rooms, err := h.saved.List(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch saved rooms")
	}
	return c.JSON(fiber.Map{
		"rooms": rooms,
	})
}

func (h *SavedRoomController) SavedStatus(c *fiber.Ctx) error {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}

	saved, err := h.saved.IsSaved(c.UserContext(), callerID(c), roomID)
	if err != nil {
		return respondError(c, err, "Failed to fetch saved state")
	}
	return c.JSON(fiber.Map{
		"saved": saved,
	})
}

func (h *SavedRoomController) ToggleSaved(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if input == nil {
		return err
	}

	saved, err := h.saved.Toggle(c.UserContext(), callerID(c), input.RoomID)
	if err != nil {
		return respondError(c, err, "Failed to update saved room")
	}
	return c.JSON(fiber.Map{
		"saved": saved,
	})
}

func (h *SavedRoomController) SaveRoom(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if input == nil {
		return err
	}

	if err := h.saved.Save(c.UserContext(), callerID(c), input.RoomID); err != nil {
		return respondError(c, err, "Failed to save room")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"saved": true,
	})
}

func (h *SavedRoomController) UnsaveRoom(c *fiber.Ctx) error {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return badRequest(c, "Invalid room ID")
	}

	if err := h.saved.Unsave(c.UserContext(), callerID(c), roomID); err != nil {
		return respondError(c, err, "Failed to unsave room")
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
