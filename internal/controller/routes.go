package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/middleware"
	"roomfinder_backend/internal/service"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	Provider      auth.Provider
	Accounts      *service.Accounts
	Rooms         *service.Rooms
	Images        *service.Images
	Uploads       *service.Uploads
	SavedRooms    *service.SavedRooms
	SecureCookies bool
	// AuthRateLimit caps auth requests per client per minute. Zero disables it.
	AuthRateLimit int
}

func SetupRoutes(app *fiber.App, deps Deps) {
	authCtrl := NewAuthController(deps.Accounts, deps.Provider, deps.SecureCookies)
	profiles := NewProfileController(deps.Accounts)
	rooms := NewRoomController(deps.Rooms)
	images := NewImageController(deps.Images)
	uploads := NewUploadController(deps.Uploads)
	saved := NewSavedRoomController(deps.SavedRooms)

	app.Use(middleware.Session(deps.Provider))
	requireAuth := middleware.RequireAuth()

	// Confirmation links are browser navigations, not API calls.
	app.Get("/auth/callback", authCtrl.Callback)

	api := app.Group("/api")

	// Auth Routes
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        deps.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests",
				})
			},
		}))
	}
	authGroup.Post("/sign-up", authCtrl.SignUp)
	authGroup.Post("/login", authCtrl.Login)
	authGroup.Post("/logout", authCtrl.Logout)

	// Profile Routes
	api.Get("/profile", requireAuth, profiles.GetProfile)
	api.Put("/profile", requireAuth, profiles.UpdateProfile)

	// Room Routes; static paths before /:id
	roomGroup := api.Group("/rooms")
	roomGroup.Get("/", rooms.ListRooms)
	roomGroup.Get("/featured", rooms.FeaturedRooms)
	roomGroup.Get("/mine", requireAuth, rooms.MyRooms)
	roomGroup.Post("/", requireAuth, rooms.CreateRoom)
	roomGroup.Get("/:id", rooms.GetRoom)
	roomGroup.Put("/:id", requireAuth, rooms.UpdateRoom)
	roomGroup.Delete("/:id", requireAuth, rooms.DeleteRoom)
	roomGroup.Get("/:id/images", images.ListImages)
	roomGroup.Post("/:id/images", requireAuth, images.AddImage)
	roomGroup.Delete("/:id/images/:imageId", requireAuth, images.DeleteImage)

	api.Post("/uploads", requireAuth, uploads.UploadImage)

	// Saved Room Routes
	savedGroup := api.Group("/saved-rooms", requireAuth)
	savedGroup.Get("/", saved.ListSaved)
	savedGroup.Post("/", saved.SaveRoom)
	savedGroup.Post("/toggle", saved.ToggleSaved)
	savedGroup.Get("/:roomId", saved.SavedStatus)
	savedGroup.Delete("/:roomId", saved.UnsaveRoom)
}
