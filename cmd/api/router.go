package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tattoo-backend/internal/shared/middleware"
	"tattoo-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Cart session cookie configuration
	sessionConfig := middleware.DefaultSessionConfig()
	if c.Config.App.Environment == "development" {
		sessionConfig.CookieSecure = false
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupCartRoutes(v1, c, sessionConfig)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.GetByID)
		categories.GET("/slug/:slug", c.CategoryHandler.GetBySlug)
	}

	admin := v1.Group("/admin/categories")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.CategoryHandler.Create)
		admin.PUT("/:id", c.CategoryHandler.Update)
		admin.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/artists", c.ProfileHandler.ListArtists)

	profiles := v1.Group("/profiles")
	{
		profiles.GET("/:id", c.ProfileHandler.GetByID)
	}

	authed := v1.Group("/profiles")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("", c.ProfileHandler.Create)
		authed.GET("/me", c.ProfileHandler.Me)
		authed.PUT("/:id", c.ProfileHandler.Update)
		authed.POST("/:id/avatar", c.ProfileHandler.UploadAvatar)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/slug/:slug", c.PostHandler.GetBySlug)
		posts.GET("/:id/comments", c.CommentHandler.ListByPost)
		posts.POST("/:id/comments", middleware.AuthMiddleware(c.JWTManager), c.CommentHandler.Create)
	}

	admin := v1.Group("/admin/posts")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.PostHandler.Create)
		admin.PUT("/:id", c.PostHandler.Update)
		admin.POST("/:id/publish", c.PostHandler.Publish)
		admin.POST("/:id/cover", c.PostHandler.UploadCover)
	}
}

// ========================================
// COMMENT MODERATION ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin/comments")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/pending", c.CommentHandler.ListPending)
		admin.POST("/:id/approve", c.CommentHandler.Approve)
		admin.POST("/:id/reject", c.CommentHandler.Reject)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/slug/:slug", c.ProductHandler.GetBySlug)
	}

	admin := v1.Group("/admin/products")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.ProductHandler.Create)
		admin.PUT("/:id", c.ProductHandler.Update)
		admin.PATCH("/:id/stock", c.ProductHandler.AdjustStock)
		admin.POST("/:id/photo", c.ProductHandler.UploadImage)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.SessionConfig) {
	cart := v1.Group("/cart")
	cart.Use(middleware.CartSession(sessionConfig))
	{
		cart.GET("", c.CartHandler.Get)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:productId", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:productId", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		status := http.StatusOK
		overall := "ok"

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		} else {
			checks["database"] = "up"
		}

		if c.Cache == nil || c.Cache.Ping(ctx.Request.Context()) != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}

		ctx.JSON(status, gin.H{
			"status":    overall,
			"app":       c.Config.App.Name,
			"version":   c.Config.App.Version,
			"checks":    checks,
			"timestamp": time.Now().UTC(),
		})
	}
}
