package Routes

import (
	"IranElaj/Controllers"
	"IranElaj/Middleware"
	"IranElaj/Repositories"
	"IranElaj/Utils/Token"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ConfigRoutes(router *gin.Engine, h *Controllers.Handler, issuer *Token.Issuer, users Repositories.UserRepository, logger *zap.Logger) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/send-otp", h.SendOTP)
		public.POST("/auth/login", h.Login)
		public.GET("/statuses", h.Statuses)
		public.GET("/specialties", h.Specialties)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware(issuer))
	{
		authorized.GET("/user", h.CurrentUser)
		authorized.POST("/requests", h.CreateRequest)
		authorized.GET("/requests/mine", h.MyRequests)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(Middleware.JwtAuthMiddleware(issuer))
	admin.Use(Middleware.PermissionCheckAdmin(users, logger))
	{
		admin.GET("/requests", h.ListRequests)
		admin.GET("/requests/stats", h.RequestStats)
		admin.GET("/requests/export", h.ExportRequests)
		admin.GET("/requests/:id/contact", h.ContactLink)
		admin.PATCH("/requests/:id", h.UpdateRequestStatus)
	}
}
