package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/middleware"
	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/service"
)

type SignUpInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	UserType  string `json:"userType" validate:"required,user_type"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	accounts      *service.Accounts
	provider      auth.Provider
	secureCookies bool
}

func NewAuthController(accounts *service.Accounts, provider auth.Provider, secureCookies bool) *AuthController {
	return &AuthController{accounts: accounts, provider: provider, secureCookies: secureCookies}
}

func (h *AuthController) setSession(c *fiber.Ctx, session *auth.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SignUp creates the identity and profile. The session is only issued once
// the emailed confirmation link is followed.
func (h *AuthController) SignUp(c *fiber.Ctx) error {
	input := new(SignUpInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := validateInput(input); err != nil {
		return badRequest(c, err.Error())
	}

	_, err := h.accounts.SignUp(c.UserContext(), service.SignUpInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		UserType:  model.UserType(input.UserType),
	})
	if err != nil {
		return respondError(c, err, "Internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Sign up successful. Please check your email.",
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := validateInput(input); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.provider.SignIn(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return respondError(c, err, "Could not sign in")
	}

	h.setSession(c, session)
	return c.JSON(fiber.Map{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       session.Identity,
	})
}

func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// Callback is where confirmation links land. It is a browser navigation, so
// every outcome is a redirect.
func (h *AuthController) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Redirect("/auth/login")
	}

	session, err := h.provider.ExchangeCode(c.UserContext(), code)
	if err != nil {
		log.Printf("[auth] code exchange failed: %v", err)
		return c.Redirect("/auth/error")
	}

	h.setSession(c, session)
	return c.Redirect("/")
}
