package routes

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/studysphere/backend/internal/app/auth"
	"github.com/studysphere/backend/internal/app/controllers"
	"github.com/studysphere/backend/internal/middleware"
	"github.com/studysphere/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	resourceController *controllers.ResourceController,
	announcementController *controllers.AnnouncementController,
	chatController *controllers.ChatController,
	userController *controllers.UserController,
	assistantController *controllers.AssistantController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	assistantLimiter *middleware.RateLimiter,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", authController.Logout)
	authenticated.GET("/auth/me", authController.GetProfile)

	resources := authenticated.Group("/resources")
	{
		resources.GET("", authMiddleware.RequireCapability(appauth.CapViewResources), resourceController.GetResources)
		resources.GET("/:id", authMiddleware.RequireCapability(appauth.CapViewResources), resourceController.GetResource)
		resources.POST("/:id/engagements/:kind", authMiddleware.RequireCapability(appauth.CapEngageResources), resourceController.Engage)

		resources.POST("", authMiddleware.RequireCapability(appauth.CapUploadResources), resourceController.CreateResource)
		// Ownership is enforced in the service; teachers edit their own
		// uploads, admins edit anything.
		resources.PUT("/:id", authMiddleware.RequireCapability(appauth.CapUploadResources), resourceController.UpdateResource)
		resources.DELETE("/:id", authMiddleware.RequireCapability(appauth.CapUploadResources), resourceController.DeleteResource)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", authMiddleware.RequireCapability(appauth.CapViewAnnouncements), announcementController.GetAnnouncements)
		announcements.GET("/:id", authMiddleware.RequireCapability(appauth.CapViewAnnouncements), announcementController.GetAnnouncement)

		adminAnnouncements := announcements.Group("")
		adminAnnouncements.Use(authMiddleware.RequireCapability(appauth.CapPostAnnouncements))
		{
			adminAnnouncements.POST("", announcementController.CreateAnnouncement)
			adminAnnouncements.PUT("/:id", announcementController.UpdateAnnouncement)
			adminAnnouncements.DELETE("/:id", announcementController.DeleteAnnouncement)
		}
	}

	chat := authenticated.Group("/chat")
	chat.Use(authMiddleware.RequireCapability(appauth.CapUseChat))
	{
		chat.GET("/messages", chatController.GetChatMessages)
		chat.POST("/messages", chatController.SendTextMessage)
		chat.POST("/messages/image", chatController.SendImageMessage)
		chat.GET("/ws", wsHandler.HandleConnection)
	}

	assistant := authenticated.Group("/assistant")
	assistant.Use(authMiddleware.RequireCapability(appauth.CapUseAssistant), assistantLimiter.Middleware())
	{
		assistant.POST("/ask", assistantController.Ask)
	}

	users := authenticated.Group("/users")
	users.Use(authMiddleware.RequireCapability(appauth.CapManageUsers))
	{
		users.GET("", userController.GetUsers)
		users.GET("/:id", userController.GetUser)
		users.PUT("/:id/role", userController.UpdateUserRole)
		users.PUT("/:id/status", userController.SetUserActive)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
