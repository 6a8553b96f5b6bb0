package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipehub/backend/internal/middleware"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

// RecipeHandler handles recipe CRUD, favorites and ratings.
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes registers the recipe routes. Reads allow anonymous access,
// mutations require a valid token.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.UserResolver) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(resolver), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(resolver), h.GetRecipe)
		recipes.POST("", middleware.RequireAuth(resolver), h.CreateRecipe)
		recipes.PUT("/:id", middleware.RequireAuth(resolver), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.RequireAuth(resolver), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.RequireAuth(resolver), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.RequireAuth(resolver), h.UnfavoriteRecipe)
		recipes.POST("/:id/rate", middleware.RequireAuth(resolver), h.RateRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewer := middleware.CurrentUser(c)

	filter := service.RecipeFilter{
		Search: c.Query("search"),
		Diet:   c.Query("diet"),
	}
	if v := c.Query("max_time"); v != "" {
		maxTime, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_time"})
			return
		}
		filter.MaxTime = maxTime
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	if v := c.Query("mine"); v != "" {
		mine, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mine"})
			return
		}
		filter.Mine = mine
	}

	views, err := h.recipeService.List(viewer, filter)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	view, err := h.recipeService.Get(recipeID, middleware.CurrentUser(c))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Visibility defaults to public; the service forces it false for
	// REGULAR owners.
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	owner := middleware.CurrentUser(c)
	recipe := models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		TimeMinutes: req.TimeMinutes,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		Source:      models.SourceManual,
		IsPublic:    isPublic,
	}

	view, err := h.recipeService.Create(owner, &recipe)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		TimeMinutes: req.TimeMinutes,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	}

	view, err := h.recipeService.Update(recipeID, middleware.CurrentUser(c), update)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(recipeID, middleware.CurrentUser(c)); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.recipeService.Favorite(recipeID, middleware.CurrentUser(c)); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "recipe favorited"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.recipeService.Unfavorite(recipeID, middleware.CurrentUser(c)); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.recipeService.Rate(recipeID, middleware.CurrentUser(c), req.Rating)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func recipeIDParam(c *gin.Context) (uuid.UUID, bool) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return recipeID, true
}
