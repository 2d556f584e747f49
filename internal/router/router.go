// internal/router/router.go
package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/handlers"
	"github.com/javajoker/foodgram-backend/internal/middleware"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

// Initialize wires services and handlers onto a gin engine. Background
// work started here stops when ctx is done.
func Initialize(ctx context.Context, db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	store := repository.NewGormStore(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(store, cfg)
	userService := services.NewUserService(store)
	catalogService := services.NewCatalogService(store)
	recipeService := services.NewRecipeService(store, storageService)
	relationService := services.NewRelationService(store)
	shoppingService := services.NewShoppingListService(store, cfg.ShoppingList)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService, relationService, cfg.Pagination)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, relationService, shoppingService, cfg.Pagination)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	authLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		general := middleware.NewGeneralRateLimiter(cfg.RateLimit)
		auth := middleware.NewAuthRateLimiter(cfg.RateLimit)
		go general.Cleanup(ctx.Done())
		go auth.Cleanup(ctx.Done())

		r.Use(general.Middleware())
		authLimit = auth.Middleware()
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	// Uploaded images are served from disk unless S3 holds them
	if !storageService.UsesS3() {
		r.Static(cfg.Media.BaseURL, cfg.Media.Root)
	}

	api := r.Group("/api")
	{
		// Token routes
		auth := api.Group("/auth/token")
		{
			auth.POST("/login", authLimit, authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("", authLimit, userHandler.Register)
			users.GET("", middleware.OptionalAuth(), userHandler.ListUsers)
			users.GET("/me", middleware.AuthRequired(), userHandler.Me)
			users.POST("/set_password", middleware.AuthRequired(), userHandler.SetPassword)
			users.GET("/subscriptions", middleware.AuthRequired(), userHandler.ListSubscriptions)
			users.GET("/:id", middleware.OptionalAuth(), userHandler.GetUser)
			users.POST("/:id/subscribe", middleware.AuthRequired(), userHandler.Subscribe)
			users.DELETE("/:id/subscribe", middleware.AuthRequired(), userHandler.Unsubscribe)
		}

		// Catalog routes
		tags := api.Group("/tags")
		{
			tags.GET("", catalogHandler.ListTags)
			tags.GET("/:id", catalogHandler.GetTag)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", catalogHandler.ListIngredients)
			ingredients.GET("/:id", catalogHandler.GetIngredient)
			ingredients.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), catalogHandler.DeleteIngredient)
		}

		// Recipe routes
		recipes := api.Group("/recipes")
		{
			recipes.GET("", middleware.OptionalAuth(), recipeHandler.ListRecipes)
			recipes.POST("", middleware.AuthRequired(), recipeHandler.CreateRecipe)
			recipes.GET("/download_shopping_cart", middleware.AuthRequired(), recipeHandler.DownloadShoppingCart)
			recipes.GET("/:id", middleware.OptionalAuth(), recipeHandler.GetRecipe)
			recipes.PATCH("/:id", middleware.AuthRequired(), recipeHandler.UpdateRecipe)
			recipes.PUT("/:id", middleware.AuthRequired(), recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", middleware.AuthRequired(), recipeHandler.DeleteRecipe)
			recipes.POST("/:id/favorite", middleware.AuthRequired(), recipeHandler.AddFavorite)
			recipes.DELETE("/:id/favorite", middleware.AuthRequired(), recipeHandler.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", middleware.AuthRequired(), recipeHandler.AddToCart)
			recipes.DELETE("/:id/shopping_cart", middleware.AuthRequired(), recipeHandler.RemoveFromCart)
		}
	}

	return r, nil
}
