package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"orama.backend/internal/interfaces/http/handlers"
	"orama.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	adminHandler        *handlers.AdminHandler
	verificationHandler *handlers.VerificationHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, except the authenticated self endpoints)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)

			// Email verification (public: the caller is not logged in yet)
			auth.POST("/send-otp", d.verificationHandler.SendOTP)
			auth.POST("/resend-otp", d.verificationHandler.ResendOTP)
			auth.POST("/verify-otp", d.verificationHandler.VerifyOTP)
		}

		// User profile routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/profile", d.userHandler.GetProfile)
			users.PATCH("/profile", d.userHandler.UpdateProfile)
			users.PUT("/phone", d.userHandler.UpdatePhone)
			users.DELETE("/me", d.userHandler.DeleteAccount)
		}

		// Admin routes. Register and login stay public; everything else
		// requires an admin token.
		adminPublic := v1.Group("/admin")
		{
			adminPublic.POST("/register", d.adminHandler.Register)
			adminPublic.POST("/login", d.adminHandler.Login)
		}

		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/admins", d.adminHandler.ListAdmins)
			admin.GET("/users/by-email", d.adminHandler.GetUserByEmail)
			admin.GET("/users/by-phone", d.adminHandler.GetUserByPhone)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.PATCH("/users/:id", d.adminHandler.UpdateUserProfile)
			admin.PATCH("/users/:id/toggle-active", d.adminHandler.ToggleActive)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)

			// Diagnostics expose live codes; admin-only.
			admin.GET("/otp/inspect", d.verificationHandler.InspectOTP)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "orama-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
