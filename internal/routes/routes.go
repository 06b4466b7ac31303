package routes

import (
	"github.com/gin-gonic/gin"

	"dermacare/internal/handlers"
	"dermacare/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	registerHandler *handlers.RegisterHandler,
	userHandler *handlers.UserHandler,
	predictHandler *handlers.PredictHandler,
	hospitalHandler *handlers.HospitalHandler,
	scanHandler *handlers.ScanHandler,
	chatHandler *handlers.ChatHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/auth")
	{
		auth.POST("/register/send-otp", registerHandler.SendOTP)
		auth.POST("/register/verify-otp", registerHandler.VerifyOTP)
		auth.POST("/register", registerHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	r.POST("/chat", chatHandler.Chat)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ---- protected
	protected := r.Group("/", middleware.AuthMiddleware())

	protected.POST("/predict/skin-disease", predictHandler.Predict)
	protected.POST("/nearby-hospitals", hospitalHandler.NearbyHospitals)

	users := protected.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
	}

	scans := protected.Group("/scans")
	{
		scans.GET("/", scanHandler.List)
		scans.POST("/", scanHandler.Create)
		scans.GET("/:id", scanHandler.Get)
		scans.DELETE("/:id", scanHandler.Delete)
		scans.GET("/:id/pdf", scanHandler.DownloadPDF)
	}

	return r
}
