package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dermacare/docs"
	"dermacare/internal/config"
	"dermacare/internal/handlers"
	"dermacare/internal/middleware"
	"dermacare/internal/pdf"
	"dermacare/internal/ranking"
	"dermacare/internal/repositories"
	"dermacare/internal/routes"
	"dermacare/internal/services"
	"dermacare/internal/utils"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetSigningKey(cfg.JWT.Secret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	challengeRepo := repositories.NewChallengeRepository(db)
	scanRepo := repositories.NewScanRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	otpService := services.NewOTPService(challengeRepo)
	registrationService := services.NewRegistrationService(userRepo, otpService, emailService, authService)
	scanService := services.NewScanService(scanRepo, cfg.Files.RootDir)

	// classifier handle: built once, shared read-only across requests
	classifierService := services.NewClassifierService(
		cfg.Classifier.URL,
		time.Duration(cfg.Classifier.TimeoutMS)*time.Millisecond,
	)

	geminiService := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.BaseURL,
		time.Duration(cfg.Gemini.TimeoutMS)*time.Millisecond,
	)
	chatService := services.NewChatService(geminiService)

	placesClient := utils.NewPlacesClient(
		cfg.Google.APIKey,
		cfg.Google.GeocodeURL,
		cfg.Google.PlacesURL,
		time.Duration(cfg.Google.TimeoutMS)*time.Millisecond,
		cfg.Google.DryRun,
	)
	rankingEngine := ranking.NewEngine(ranking.NewLinearPredictor())

	reportGenerator := pdf.NewReportGenerator("DERMACARE AI", "https://dermacare-ai.com")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userRepo, authService)
	registerHandler := handlers.NewRegisterHandler(registrationService)
	userHandler := handlers.NewUserHandler(userRepo)
	predictHandler := handlers.NewPredictHandler(classifierService, scanService)
	hospitalHandler := handlers.NewHospitalHandler(placesClient, rankingEngine)
	scanHandler := handlers.NewScanHandler(scanService, reportGenerator)
	chatHandler := handlers.NewChatHandler(chatService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		registerHandler,
		userHandler,
		predictHandler,
		hospitalHandler,
		scanHandler,
		chatHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
