package routes

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjunvnair/campus-event-backend/config"
	"github.com/arjunvnair/campus-event-backend/database"
	"github.com/arjunvnair/campus-event-backend/internal/auth"
	"github.com/arjunvnair/campus-event-backend/internal/event"
	"github.com/arjunvnair/campus-event-backend/internal/notification"
	"github.com/arjunvnair/campus-event-backend/internal/registration"
	"github.com/arjunvnair/campus-event-backend/internal/reports"
	"github.com/arjunvnair/campus-event-backend/middleware"
)

func Setup(ctx context.Context, r *gin.Engine, cfg *config.Config, producer *notification.Producer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/verify-otp", authHandler.VerifyOTP)
		authGroup.POST("/resend-otp", authHandler.ResendOTP)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventService := event.NewService(eventRepo)

	// ========== Registrations ==========
	regRepo := registration.NewRepository(database.DB)
	regService := registration.NewService(regRepo, eventService, authSvc, producer)
	regHandler := registration.NewHandler(regService)

	// The registration service fans event updates out to participants.
	eventHandler := event.NewHandler(eventService, regService)

	// ========== Reports ==========
	reportsExporter := reports.NewExporter()
	reportsService := reports.NewService(eventService, regRepo, reportsExporter)
	reportsHandler := reports.NewHandler(reportsService)

	// Public event browsing and external registration need no session.
	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.POST("/events/:id/external-register", regHandler.ExternalRegister)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	eventRoutes := protected.Group("/events")
	{
		// Write operations require the organizer role; ownership is
		// checked in the service layer.
		writeRoutes := eventRoutes.Group("")
		writeRoutes.Use(middleware.RequireOrganizer())
		{
			writeRoutes.POST("", eventHandler.CreateEvent)
			writeRoutes.PUT("/:id", eventHandler.UpdateEvent)
			writeRoutes.DELETE("/:id", eventHandler.DeleteEvent)

			writeRoutes.GET("/:id/participants", regHandler.ListParticipants)
			writeRoutes.PATCH("/:id/participants/:pid/attendance", regHandler.MarkAttendance)
			writeRoutes.DELETE("/:id/participants/:pid", regHandler.RemoveParticipant)

			writeRoutes.GET("/:id/participants/pdf", reportsHandler.ExportPDF)
			writeRoutes.GET("/:id/participants/excel", reportsHandler.ExportExcel)
		}

		eventRoutes.GET("/mine", eventHandler.ListMyEvents)
		eventRoutes.POST("/:id/register", regHandler.Register)
		eventRoutes.DELETE("/:id/register", regHandler.Unregister)
	}

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notifSvc)
	notification.StartConsumer(ctx, cfg, notifSvc)

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.List)
		notificationRoutes.PATCH("/read-all", notificationHandler.MarkAllRead)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
