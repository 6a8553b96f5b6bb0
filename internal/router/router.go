package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/backend/internal/api"
	"github.com/recipehub/backend/internal/middleware"
)

// Setup configures the application routes.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	aiHandler *api.AIHandler,
	resolver middleware.UserResolver,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "RecipeHub API"})
	})

	apiGroup := router.Group("/api")

	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup, resolver)
	aiHandler.RegisterRoutes(apiGroup, resolver)

	return router
}
