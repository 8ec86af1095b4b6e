package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sharespace/backend/internal/config"
	"github.com/sharespace/backend/internal/database"
	"github.com/sharespace/backend/internal/handlers"
	"github.com/sharespace/backend/internal/middleware"
	"github.com/sharespace/backend/internal/services"
	"github.com/sharespace/backend/internal/storage"
	"github.com/sharespace/backend/pkg/logger"
	"github.com/sharespace/backend/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	accessService := services.NewAccessService(db)
	uploader := services.NewUploader(db, storageClient, cfg.Upload.MaxFileSize, cfg.Upload.Throttle)

	authHandler := handlers.NewAuthHandler(db)
	spacesHandler := handlers.NewSpacesHandler(db, storageClient, accessService)
	photosHandler := handlers.NewPhotosHandler(db, accessService, uploader)
	cohostsHandler := handlers.NewCohostsHandler(db, accessService)
	usersHandler := handlers.NewUsersHandler(db)
	statsHandler := handlers.NewStatsHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 200 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Put("/me", authMiddleware.RequireAuth, authHandler.UpdateMe)

	publicRoutes := api.Group("/public", authMiddleware.OptionalAuth)
	publicRoutes.Get("/spaces", spacesHandler.PublicList)
	publicRoutes.Get("/spaces/:slug", spacesHandler.PublicGet)
	publicRoutes.Get("/spaces/:slug/photos", photosHandler.Gallery)

	spaceRoutes := api.Group("/spaces", authMiddleware.RequireAuth)
	spaceRoutes.Post("/", spacesHandler.Create)
	spaceRoutes.Get("/", spacesHandler.List)
	spaceRoutes.Put("/:id", spacesHandler.Update)
	spaceRoutes.Post("/:id/cohosts", cohostsHandler.Add)
	spaceRoutes.Get("/:id/cohosts", cohostsHandler.List)
	spaceRoutes.Post("/:slug/photos", photosHandler.Upload)
	spaceRoutes.Get("/:slug/photos", photosHandler.ListForModeration)

	api.Put("/photos/:id/approval", authMiddleware.RequireAuth, photosHandler.SetApproval)

	adminRoutes := api.Group("/admin", authMiddleware.RequireAuth, middleware.AdminOnly)
	adminRoutes.Get("/users", usersHandler.List)
	adminRoutes.Put("/users/:id/role", usersHandler.UpdateRole)
	adminRoutes.Get("/stats", statsHandler.Overview)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
