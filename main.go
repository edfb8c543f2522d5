package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"vocab-learn-system/handlers"
	"vocab-learn-system/models"
	"vocab-learn-system/services"
	"vocab-learn-system/utils"
	"vocab-learn-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	secretKey := []byte(os.Getenv("JWT_SECRET"))
	if len(secretKey) == 0 {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — covers xlsx imports
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitObjectStore(); err != nil {
		log.Fatal("failed to initialize object store client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.VocabularyEntry{},
		&models.UserProgress{},
		&models.WordProgress{},
		&models.Badge{},
		&models.UserBadge{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	authService := services.NewAuthService(db, secretKey)
	vocabService := services.NewVocabularyService(db)
	progressService := services.NewProgressService(db)
	badgeService := services.NewBadgeService(db)
	importService := services.NewImportService(db)

	if err := badgeService.SeedBadges(); err != nil {
		log.Fatal("failed to seed badges:", err)
	}
	if err := vocabService.SeedVocabulary(); err != nil {
		log.Fatal("failed to seed vocabulary:", err)
	}

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupVocabularyRoutes(app, vocabService, secretKey)
	handlers.SetupProgressRoutes(app, progressService, secretKey)
	handlers.SetupBadgeRoutes(app, badgeService, secretKey)
	handlers.SetupImportRoutes(app, importService, secretKey)

	app.Static("/uploads", "./uploads")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanupSched, err := workers.StartResetCodeCleanup(db)
	if err != nil {
		log.Fatal("failed to start reset code cleanup worker:", err)
	}
	defer func() { _ = cleanupSched.Shutdown() }()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Reset code cleanup worker running (hourly)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
