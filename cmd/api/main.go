package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/controller"
	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/internal/service"
	"roomfinder_backend/pkg/config"
	"roomfinder_backend/pkg/cron"
	"roomfinder_backend/pkg/database"
	"roomfinder_backend/pkg/email"
	"roomfinder_backend/pkg/seed"
	"roomfinder_backend/pkg/utils/jwt"
	"roomfinder_backend/pkg/utils/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	err = database.MigrateDatabase(db,
		&model.Profile{},
		&model.Room{},
		&model.RoomImage{},
		&model.SavedRoom{},
		&model.Credential{},
		&model.AuthCode{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	store := repository.NewGormStore(db)
	provider := auth.NewLocalProvider(store, jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL))

	var objects service.ObjectStorage
	if cfg.Storage.Enabled() {
		client, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Could not initialize storage:", err)
		}
		objects = client
		log.Printf("Image storage enabled, bucket %s", cfg.Storage.Bucket)
	} else {
		log.Printf("STORAGE_BUCKET not set, image uploads disabled")
	}

	var mailer service.ConfirmationSender
	if cfg.Email.ResendAPIKey != "" {
		emailService, err := email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Server.AppURL)
		if err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
		mailer = emailService
	} else {
		log.Printf("RESEND_API_KEY not set, confirmation emails disabled")
	}

	if cfg.SeedFixtures {
		if err := seed.SeedFixtures(ctx, provider, store); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	scheduler, err := cron.InitMaintenanceCron(store)
	if err != nil {
		log.Fatal(err)
	}

	gate := service.NewAccessGate(store)
	deps := controller.Deps{
		Provider:      provider,
		Accounts:      service.NewAccounts(provider, store, mailer),
		Rooms:         service.NewRooms(store, gate, objects),
		Images:        service.NewImages(store, gate, objects),
		Uploads:       service.NewUploads(objects),
		SavedRooms:    service.NewSavedRooms(store),
		SecureCookies: strings.HasPrefix(cfg.Server.AppURL, "https://"),
		AuthRateLimit: 20,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: controller.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowCredentials: cfg.Server.CORSOrigins != "*",
	}))

	controller.SetupRoutes(app, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Printf("Shutting down")
		<-scheduler.Stop().Done()
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
