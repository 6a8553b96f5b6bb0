package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/backend/internal/middleware"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

// AIHandler handles AI recipe generation requests.
type AIHandler struct {
	aiService     *service.AIService
	recipeService *service.RecipeService
}

// NewAIHandler creates a new AIHandler instance.
func NewAIHandler(aiService *service.AIService, recipeService *service.RecipeService) *AIHandler {
	return &AIHandler{
		aiService:     aiService,
		recipeService: recipeService,
	}
}

// RegisterRoutes registers the AI routes.
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.UserResolver) {
	ai := router.Group("/ai/recipes")
	{
		ai.POST("/generate", middleware.RequireAuth(resolver), h.GenerateRecipe)
	}
}

func (h *AIHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MaxTimeMinutes == 0 {
		req.MaxTimeMinutes = 30
	}
	if req.Difficulty == "" {
		req.Difficulty = "Easy"
	}
	if req.Servings == 0 {
		req.Servings = 2
	}

	user := middleware.CurrentUser(c)

	generated, err := h.aiService.GenerateRecipe(service.GenerateParams{
		Ingredients:    req.Ingredients,
		Diet:           req.Diet,
		Cuisine:        req.Cuisine,
		MaxTimeMinutes: req.MaxTimeMinutes,
		Difficulty:     req.Difficulty,
		Servings:       req.Servings,
	}, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		Title:       generated.Title,
		Description: generated.Description,
		Ingredients: generated.Ingredients,
		Steps:       generated.Steps,
		TimeMinutes: generated.TimeMinutes,
		Difficulty:  generated.Difficulty,
		Tags:        generated.Tags,
		Source:      models.SourceAI,
		IsPublic:    user.IsChef(),
	}

	view, err := h.recipeService.Create(user, &recipe)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateRecipeResponse{Recipe: *view})
}
