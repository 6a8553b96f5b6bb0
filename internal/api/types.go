package api

import (
	"errors"
	"net/http"

	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"user_type" binding:"omitempty,oneof=REGULAR CHEF"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

type CreateRecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Ingredients []string `json:"ingredients" binding:"required"`
	Steps       []string `json:"steps" binding:"required"`
	TimeMinutes int      `json:"time_minutes" binding:"required"`
	Difficulty  string   `json:"difficulty" binding:"required"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"is_public"`
}

type UpdateRecipeRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
	TimeMinutes *int      `json:"time_minutes"`
	Difficulty  *string   `json:"difficulty"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"is_public"`
}

type RatingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type GenerateRecipeRequest struct {
	Ingredients    []string `json:"ingredients" binding:"required,min=1"`
	Diet           string   `json:"diet"`
	Cuisine        string   `json:"cuisine"`
	MaxTimeMinutes int      `json:"max_time_minutes"`
	Difficulty     string   `json:"difficulty"`
	Servings       int      `json:"servings"`
}

type GenerateRecipeResponse struct {
	Recipe service.RecipeView `json:"recipe"`
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRecipeNotAccessible),
		errors.Is(err, service.ErrNotRecipeOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrFavoriteNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
