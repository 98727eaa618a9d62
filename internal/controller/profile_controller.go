package controller

import (
	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/middleware"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/internal/service"
)

// ProfileInput lists the only profile fields a caller may change.
type ProfileInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

type ProfileController struct {
	accounts *service.Accounts
}

func NewProfileController(accounts *service.Accounts) *ProfileController {
	return &ProfileController{accounts: accounts}
}

func callerID(c *fiber.Ctx) string {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		return identity.ID
	}
	return ""
}

func (h *ProfileController) GetProfile(c *fiber.Ctx) error {
	profile, err := h.accounts.Profile(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch profile")
	}
	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

func (h *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	profile, err := h.accounts.UpdateProfile(c.UserContext(), callerID(c), repository.ProfileUpdate{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return respondError(c, err, "Failed to update profile")
	}
	return c.JSON(fiber.Map{
		"profile": profile,
	})
}
