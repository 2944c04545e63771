package main

import (
	"log"

	"learning_portal/backend/config"
	"learning_portal/backend/middleware"
	"learning_portal/backend/payment"
	"learning_portal/backend/routes"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}

	var gateway payment.Gateway
	if cfg.MidtransServerKey != "" {
		gateway = payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransProduction)
	} else {
		logger.Warn("MIDTRANS_SERVER_KEY not set, paid checkout disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{AppName: "learning-portal"})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, gateway, logger)

	// Start server
	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
