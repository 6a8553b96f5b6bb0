package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

// AuthorInfo identifies the owner of a recipe in a view.
type AuthorInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeView is the viewer-dependent presentation of a recipe: all recipe
// fields plus author info and the viewer's ownership/favorite/rating flags.
type RecipeView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
	TimeMinutes int        `json:"time_minutes"`
	Difficulty  string     `json:"difficulty"`
	Tags        []string   `json:"tags"`
	Source      string     `json:"source"`
	IsPublic    bool       `json:"is_public"`
	AvgRating   *float64   `json:"avg_rating"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Author      AuthorInfo `json:"author"`
	IsOwner     bool       `json:"is_owner"`
	IsFavorite  bool       `json:"is_favorite"`
	UserRating  *int       `json:"user_rating"`
}

// RecipeFilter holds the optional, AND-combined list filters.
type RecipeFilter struct {
	Search  string
	Diet    string
	MaxTime int
	Mine    bool
	Limit   int
}

// RecipeUpdate carries the fields present in a partial update request. Nil
// fields are left untouched.
type RecipeUpdate struct {
	Title       *string
	Description *string
	Ingredients *[]string
	Steps       *[]string
	TimeMinutes *int
	Difficulty  *string
	Tags        *[]string
	IsPublic    *bool
}

// RatingResult is returned from Rate: the caller's rating and the recipe's
// new average.
type RatingResult struct {
	UserRating int      `json:"user_rating"`
	AvgRating  *float64 `json:"avg_rating"`
}

// RecipeService handles recipe queries, mutations and view assembly.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// BuildView assembles the presentation object for a recipe as seen by the
// viewer. Viewer-specific flags default to false/absent for anonymous reads.
func (s *RecipeService) BuildView(recipe *models.Recipe, viewer *models.User) RecipeView {
	view := RecipeView{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		TimeMinutes: recipe.TimeMinutes,
		Difficulty:  recipe.Difficulty,
		Tags:        recipe.Tags,
		Source:      recipe.Source,
		IsPublic:    recipe.IsPublic,
		AvgRating:   recipe.AvgRating,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
		Author:      AuthorInfo{ID: recipe.User.ID, Name: recipe.User.Name},
	}

	if viewer != nil {
		view.IsOwner = recipe.UserID == viewer.ID

		var favorite models.Favorite
		if err := s.db.Where("user_id = ? AND recipe_id = ?", viewer.ID, recipe.ID).First(&favorite).Error; err == nil {
			view.IsFavorite = true
		}

		var rating models.Rating
		if err := s.db.Where("user_id = ? AND recipe_id = ?", viewer.ID, recipe.ID).First(&rating).Error; err == nil {
			view.UserRating = &rating.Rating
		}
	}

	return view
}

// canView reports whether the viewer may read the recipe: the owner always,
// anyone else only when the recipe is public and its owner is a chef.
func canView(recipe *models.Recipe, viewer *models.User) bool {
	if viewer != nil && recipe.UserID == viewer.ID {
		return true
	}
	return recipe.IsPublic && recipe.User.IsChef()
}

// List returns recipe views matching the filter. "Mine" requires a viewer
// and ignores visibility; otherwise only public chef recipes are listed.
func (s *RecipeService) List(viewer *models.User, filter RecipeFilter) ([]RecipeView, error) {
	query := s.db.Model(&models.Recipe{}).Preload("User")

	if filter.Mine {
		if viewer == nil {
			return nil, ErrAuthRequired
		}
		query = query.Where("recipes.user_id = ?", viewer.ID)
	} else {
		query = query.Joins("JOIN users ON users.id = recipes.user_id").
			Where("recipes.is_public = ? AND users.user_type = ?", true, models.UserTypeChef)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?", like, like)
	}

	if filter.Diet != "" {
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("recipes.tags @> ?::jsonb", fmt.Sprintf("[%q]", filter.Diet))
		} else {
			// Match the quoted element in the serialized array so that
			// "vegan" does not match a "non-vegan" tag.
			query = query.Where("recipes.tags LIKE ?", fmt.Sprintf("%%%q%%", filter.Diet))
		}
	}

	if filter.MaxTime > 0 {
		query = query.Where("recipes.time_minutes <= ?", filter.MaxTime)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, s.BuildView(&recipes[i], viewer))
	}
	return views, nil
}

// Get returns a single recipe view, applying the read visibility rule.
func (s *RecipeService) Get(id uuid.UUID, viewer *models.User) (*RecipeView, error) {
	recipe, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	if !canView(recipe, viewer) {
		return nil, ErrRecipeNotAccessible
	}

	view := s.BuildView(recipe, viewer)
	return &view, nil
}

// Create persists a recipe owned by the given user. REGULAR owners cannot
// publish: is_public is forced false regardless of the requested value.
func (s *RecipeService) Create(owner *models.User, recipe *models.Recipe) (*RecipeView, error) {
	recipe.UserID = owner.ID
	if !owner.IsChef() {
		recipe.IsPublic = false
	}
	if recipe.Tags == nil {
		recipe.Tags = models.JSONBStringArray{}
	}

	if err := s.db.Create(recipe).Error; err != nil {
		return nil, err
	}

	recipe.User = *owner
	view := s.BuildView(recipe, owner)
	return &view, nil
}

// Update applies the supplied fields to a recipe owned by the viewer.
func (s *RecipeService) Update(id uuid.UUID, viewer *models.User, update RecipeUpdate) (*RecipeView, error) {
	recipe, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	if recipe.UserID != viewer.ID {
		return nil, ErrNotRecipeOwner
	}

	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Ingredients != nil {
		recipe.Ingredients = *update.Ingredients
	}
	if update.Steps != nil {
		recipe.Steps = *update.Steps
	}
	if update.TimeMinutes != nil {
		recipe.TimeMinutes = *update.TimeMinutes
	}
	if update.Difficulty != nil {
		recipe.Difficulty = *update.Difficulty
	}
	if update.Tags != nil {
		recipe.Tags = *update.Tags
	}
	if update.IsPublic != nil {
		recipe.IsPublic = *update.IsPublic
		if !viewer.IsChef() {
			recipe.IsPublic = false
		}
	}

	if err := s.db.Omit("User").Save(recipe).Error; err != nil {
		return nil, err
	}

	view := s.BuildView(recipe, viewer)
	return &view, nil
}

// Delete removes a recipe owned by the viewer, along with its favorites and
// ratings, in one transaction.
func (s *RecipeService) Delete(id uuid.UUID, viewer *models.User) error {
	recipe, err := s.fetch(id)
	if err != nil {
		return err
	}

	if recipe.UserID != viewer.ID {
		return ErrNotRecipeOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// Favorite inserts a favorite row for the viewer. At most one per recipe.
func (s *RecipeService) Favorite(id uuid.UUID, viewer *models.User) error {
	if _, err := s.fetch(id); err != nil {
		return err
	}

	var existing models.Favorite
	if err := s.db.Where("user_id = ? AND recipe_id = ?", viewer.ID, id).First(&existing).Error; err == nil {
		return ErrAlreadyFavorited
	}

	favorite := models.Favorite{UserID: viewer.ID, RecipeID: id}
	return s.db.Create(&favorite).Error
}

// Unfavorite removes the viewer's favorite row for the recipe.
func (s *RecipeService) Unfavorite(id uuid.UUID, viewer *models.User) error {
	var favorite models.Favorite
	if err := s.db.Where("user_id = ? AND recipe_id = ?", viewer.ID, id).First(&favorite).Error; err != nil {
		return ErrFavoriteNotFound
	}
	return s.db.Delete(&favorite).Error
}

// Rate upserts the viewer's rating and recomputes the recipe's average. The
// upsert and the average update commit together or not at all.
func (s *RecipeService) Rate(id uuid.UUID, viewer *models.User, value int) (*RatingResult, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	recipe, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	var avg *float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		err := tx.Where("user_id = ? AND recipe_id = ?", viewer.ID, id).First(&rating).Error
		switch {
		case err == nil:
			rating.Rating = value
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = models.Rating{UserID: viewer.ID, RecipeID: id, Rating: value}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		row := tx.Model(&models.Rating{}).Where("recipe_id = ?", id).Select("AVG(rating)").Row()
		var avgNull sql.NullFloat64
		if err := row.Scan(&avgNull); err != nil {
			return err
		}
		if avgNull.Valid {
			rounded := math.Round(avgNull.Float64*100) / 100
			avg = &rounded
		}

		return tx.Model(recipe).Update("avg_rating", avg).Error
	})
	if err != nil {
		return nil, err
	}

	return &RatingResult{UserRating: value, AvgRating: avg}, nil
}

func (s *RecipeService) fetch(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Preload("User").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
