package http

import (
	"time"

	"github.com/campaign-studio/backend/internal/config"
	"github.com/campaign-studio/backend/internal/http/handlers"
	"github.com/campaign-studio/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	brandHandler *handlers.BrandHandler,
	builderHandler *handlers.BuilderHandler,
	campaignHandler *handlers.CampaignHandler,
	libraryHandler *handlers.LibraryHandler,
	studioHandler *handlers.StudioHandler,
	uploadHandler *handlers.UploadHandler,
	studioHub *handlers.StudioHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Generated images and user uploads
	app.Static("/uploads", cfg.UploadsDir)

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/platforms", metaHandler.Platforms)
	api.Get("/meta/objectives", metaHandler.Objectives)
	api.Get("/meta/creative-types", metaHandler.CreativeTypes)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", authHandler.GetMe)

	// Uploads
	protected.Post("/uploads", uploadHandler.Upload)

	// Brands
	protected.Post("/brands", brandHandler.CreateBrand)
	protected.Get("/brands", brandHandler.ListBrands)
	protected.Get("/brands/:id", brandHandler.GetBrand)
	protected.Put("/brands/:id", brandHandler.UpdateBrand)
	protected.Post("/brands/import-site", brandHandler.ImportSite)

	// Builder sessions
	protected.Post("/builder/sessions", builderHandler.CreateSession)
	protected.Get("/builder/sessions/:id", builderHandler.GetSession)
	protected.Delete("/builder/sessions/:id", builderHandler.DiscardSession)
	protected.Patch("/builder/sessions/:id/draft", builderHandler.UpdateDraft)
	protected.Post("/builder/sessions/:id/next", builderHandler.Next)
	protected.Post("/builder/sessions/:id/back", builderHandler.Back)
	protected.Post("/builder/sessions/:id/strategy/generate", builderHandler.GenerateStrategy)
	protected.Post("/builder/sessions/:id/creatives/generate", builderHandler.GenerateCreatives)
	protected.Post("/builder/sessions/:id/creatives/regenerate", builderHandler.RegenerateCreatives)
	protected.Post("/builder/sessions/:id/posters/generate", builderHandler.GeneratePosters)
	protected.Post("/builder/sessions/:id/posters/generate-more", builderHandler.GenerateMorePosters)
	protected.Post("/builder/sessions/:id/posters/:index/regenerate", builderHandler.RegeneratePoster)
	protected.Post("/builder/sessions/:id/deploy", builderHandler.Deploy)

	// Campaigns
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Patch("/campaigns/:id/status", campaignHandler.UpdateStatus)
	protected.Get("/campaigns/:id/creatives", campaignHandler.ListCampaignCreatives)
	protected.Get("/campaigns/:id/assets", campaignHandler.ListCampaignAssets)

	// Library (cross-campaign content)
	protected.Get("/creatives", libraryHandler.ListCreatives)
	protected.Get("/assets", libraryHandler.ListAssets)

	// Analytics
	protected.Get("/analytics/overview", campaignHandler.AnalyticsOverview)

	// Studio conversations
	protected.Post("/studio/conversations", studioHandler.CreateConversation)
	protected.Get("/studio/conversations", studioHandler.ListConversations)
	protected.Get("/studio/conversations/:id/messages", studioHandler.ListMessages)
	protected.Post("/studio/conversations/:id/messages", studioHandler.SendMessage)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(studioHub.HandleWS))
}
