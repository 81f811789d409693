package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campaign-studio/backend/internal/builder"
	"github.com/campaign-studio/backend/internal/config"
	"github.com/campaign-studio/backend/internal/db"
	"github.com/campaign-studio/backend/internal/events"
	"github.com/campaign-studio/backend/internal/generation"
	apphttp "github.com/campaign-studio/backend/internal/http"
	"github.com/campaign-studio/backend/internal/http/handlers"
	"github.com/campaign-studio/backend/internal/repositories"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/campaign-studio/backend/internal/siteparser"
	"github.com/campaign-studio/backend/migrations"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	brandRepo := repositories.NewBrandRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	creativeRepo := repositories.NewCreativeRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	conversationRepo := repositories.NewConversationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Generation backend
	uploader, err := generation.NewLocalUploader(cfg.UploadsDir, cfg.UploadsBaseURL, log)
	if err != nil {
		log.Fatal("failed to init uploads dir", zap.Error(err))
	}
	genClient := generation.NewClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey,
		cfg.GenerationModel, cfg.ImageModel, cfg.GenerationTimeout, uploader, log)

	strategyGen := builder.NewStrategyGenerator(genClient, log)
	creativeGen := builder.NewCreativeGenerator(genClient, log)
	posterGen := builder.NewPosterGenerator(genClient, cfg.MaxPostersPerBatch, log)

	// Services
	parser := siteparser.NewParser(cfg.GenerationTimeout, log)
	brandService := services.NewBrandService(brandRepo, auditRepo, parser, log)
	campaignService := services.NewCampaignService(campaignRepo, creativeRepo, assetRepo, auditRepo, log)
	builderService := services.NewBuilderService(campaignRepo, creativeRepo, assetRepo, brandRepo, auditRepo,
		strategyGen, creativeGen, posterGen, publisher, log)
	studioService := services.NewStudioService(conversationRepo, genClient, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	brandHandler := handlers.NewBrandHandler(brandService, log)
	builderHandler := handlers.NewBuilderHandler(builderService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	libraryHandler := handlers.NewLibraryHandler(campaignService, log)
	studioHandler := handlers.NewStudioHandler(studioService, log)
	uploadHandler := handlers.NewUploadHandler(uploader, log)
	studioHub := handlers.NewStudioHub(cfg, studioService, subscriber, log)

	// Start WS hub
	studioHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, brandHandler, builderHandler, campaignHandler,
		libraryHandler, studioHandler, uploadHandler, studioHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
