package v1

import (
	"go_listar/api/v1/auth"
	"go_listar/api/v1/categories"
	"go_listar/api/v1/listings"
	"go_listar/api/v1/middleware"
	"go_listar/api/v1/wishlist"
	"go_listar/internal/config"
	"go_listar/internal/httpx"
	"go_listar/internal/identity"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *listing.Service) {
	resolver := identity.NewResolver(db)

	listingsHandler := listings.NewHandler(svc)
	categoriesHandler := categories.NewHandler(db)
	wishlistHandler := wishlist.NewHandler(db)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", pingHandler)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", auth.RegisterHandler(db))
			authGroup.POST("/login", auth.LoginHandler(db, cfg))
			authGroup.GET("/role", middleware.AuthRequired(resolver), auth.RoleHandler())
		}

		// Public routes; optional auth widens what the caller may see
		public := v1.Group("")
		public.Use(middleware.OptionalAuth(resolver))
		{
			public.GET("/place/list", listingsHandler.List)
			public.GET("/place/view", listingsHandler.View)
			public.GET("/author/listing", listingsHandler.List)
		}

		v1.GET("/place/form", categoriesHandler.SubmitSettings)
		v1.GET("/place/terms", categoriesHandler.Terms)

		// Authenticated routes
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired(resolver))
		{
			protected.POST("/place/save", listingsHandler.Save)
			protected.POST("/place/delete", listingsHandler.Delete)
			protected.GET("/place/my-listings", listingsHandler.MyListings)

			protected.POST("/wishlist/save", wishlistHandler.Save)
			protected.GET("/wishlist/list", wishlistHandler.List)
		}

		// Admin moderation routes (hard gate)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(resolver), middleware.AdminRequired())
		{
			admin.GET("/listings/pending", listingsHandler.Pending)
			admin.PUT("/listings/:id/status", listingsHandler.UpdateStatus)
			admin.DELETE("/listings/:id", listingsHandler.AdminDelete)
		}
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}
