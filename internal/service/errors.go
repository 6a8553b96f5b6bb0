package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP status codes.
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrAuthRequired        = errors.New("authentication required")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrRecipeNotAccessible = errors.New("recipe not accessible")
	ErrNotRecipeOwner      = errors.New("not authorized to modify this recipe")
	ErrAlreadyFavorited    = errors.New("recipe already favorited")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)
