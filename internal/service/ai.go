package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

const chefSystemPrompt = "You are a professional chef. Create detailed, accurate recipes in JSON format."

// GenerateParams are the constraints for an AI recipe generation.
type GenerateParams struct {
	Ingredients    []string
	Diet           string
	Cuisine        string
	MaxTimeMinutes int
	Difficulty     string
	Servings       int
}

// GeneratedRecipe is the fixed schema the model is asked to reply with.
type GeneratedRecipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	TimeMinutes int      `json:"time_minutes"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

// AIService generates recipes through the external completion API and logs
// token usage per call.
type AIService struct {
	db     *gorm.DB
	client *OpenAIClient
}

// NewAIService creates a new AIService instance.
func NewAIService(db *gorm.DB, client *OpenAIClient) *AIService {
	return &AIService{
		db:     db,
		client: client,
	}
}

// GenerateRecipe builds the constraint prompt, requests a strict JSON recipe
// from the model, parses it and logs an AIRequest row for the requester.
// Any call or parse failure is a terminal generation failure; nothing is
// persisted in that case.
func (s *AIService) GenerateRecipe(params GenerateParams, userID uuid.UUID) (*GeneratedRecipe, error) {
	prompt := buildRecipePrompt(params)

	content, usage, err := s.client.Complete(chefSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	request := models.AIRequest{
		UserID:           userID,
		Model:            s.client.Model(),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to log generation request: %w", err)
	}

	return &recipe, nil
}

func buildRecipePrompt(params GenerateParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Create a detailed recipe with the following requirements:
- Ingredients: %s
- Servings: %d
- Maximum time: %d minutes
- Difficulty: %s`,
		strings.Join(params.Ingredients, ", "),
		params.Servings,
		params.MaxTimeMinutes,
		params.Difficulty,
	)

	if params.Diet != "" {
		fmt.Fprintf(&b, "\n- Dietary preference: %s", params.Diet)
	}
	if params.Cuisine != "" {
		fmt.Fprintf(&b, "\n- Cuisine style: %s", params.Cuisine)
	}

	b.WriteString(`

Please provide the recipe in the following JSON format:
{
  "title": "Recipe title",
  "description": "Brief description of the recipe",
  "ingredients": ["ingredient1", "ingredient2", ...],
  "steps": ["step1", "step2", ...],
  "time_minutes": number,
  "difficulty": "Easy" or "Medium" or "Hard",
  "tags": ["tag1", "tag2", ...]
}

Make sure the recipe uses the provided ingredients and follows all the constraints.`)

	return b.String()
}
