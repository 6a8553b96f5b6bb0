package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/models"
)

// fakeCompletionServer returns an httptest server that replies with the given
// message content and token usage.
func fakeCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
			"usage": map[string]int{
				"prompt_tokens":     120,
				"completion_tokens": 240,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAIService(t *testing.T, apiURL, apiKey string) (*AIService, *AuthService) {
	db := setupTestDB(t)
	client := NewOpenAIClient(&config.Config{
		OpenAIAPIKey: apiKey,
		OpenAIAPIURL: apiURL,
		OpenAIModel:  "gpt-4o-mini",
	})
	return NewAIService(db, client), newTestAuthService(db)
}

const validRecipeJSON = `{
	"title": "Garlic Butter Pasta",
	"description": "Simple pasta with garlic butter sauce",
	"ingredients": ["200g pasta", "3 cloves garlic", "50g butter"],
	"steps": ["Boil pasta", "Melt butter with garlic", "Toss and serve"],
	"time_minutes": 20,
	"difficulty": "Easy",
	"tags": ["vegetarian", "quick"]
}`

func TestGenerateRecipe(t *testing.T) {
	srv := fakeCompletionServer(t, validRecipeJSON, http.StatusOK)
	svc, auth := newTestAIService(t, srv.URL, "test-key")

	user, err := auth.Register("Chef", "chef@example.com", "password123", models.UserTypeChef)
	require.NoError(t, err)

	recipe, err := svc.GenerateRecipe(GenerateParams{
		Ingredients:    []string{"pasta", "garlic", "butter"},
		Diet:           "vegetarian",
		MaxTimeMinutes: 30,
		Difficulty:     "Easy",
		Servings:       2,
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Garlic Butter Pasta", recipe.Title)
	assert.Equal(t, 20, recipe.TimeMinutes)
	assert.Equal(t, []string{"vegetarian", "quick"}, recipe.Tags)

	var request models.AIRequest
	require.NoError(t, svc.db.First(&request, "user_id = ?", user.ID).Error)
	assert.Equal(t, "gpt-4o-mini", request.Model)
	assert.Equal(t, 120, request.PromptTokens)
	assert.Equal(t, 240, request.CompletionTokens)
}

func TestGenerateRecipeMalformedReply(t *testing.T) {
	srv := fakeCompletionServer(t, "this is not json", http.StatusOK)
	svc, auth := newTestAIService(t, srv.URL, "test-key")

	user, err := auth.Register("Chef", "chef@example.com", "password123", models.UserTypeChef)
	require.NoError(t, err)

	_, err = svc.GenerateRecipe(GenerateParams{
		Ingredients:    []string{"pasta"},
		MaxTimeMinutes: 30,
		Difficulty:     "Easy",
		Servings:       2,
	}, user.ID)
	assert.Error(t, err)

	// A failed generation leaves no usage log behind.
	var count int64
	require.NoError(t, svc.db.Model(&models.AIRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGenerateRecipeUpstreamError(t *testing.T) {
	srv := fakeCompletionServer(t, "", http.StatusBadGateway)
	svc, auth := newTestAIService(t, srv.URL, "test-key")

	user, err := auth.Register("Chef", "chef@example.com", "password123", models.UserTypeChef)
	require.NoError(t, err)

	_, err = svc.GenerateRecipe(GenerateParams{
		Ingredients:    []string{"pasta"},
		MaxTimeMinutes: 30,
		Difficulty:     "Easy",
		Servings:       2,
	}, user.ID)
	assert.Error(t, err)
}

func TestGenerateRecipeMissingAPIKey(t *testing.T) {
	svc, auth := newTestAIService(t, "http://localhost:0", "")

	user, err := auth.Register("Chef", "chef@example.com", "password123", models.UserTypeChef)
	require.NoError(t, err)

	_, err = svc.GenerateRecipe(GenerateParams{
		Ingredients:    []string{"pasta"},
		MaxTimeMinutes: 30,
		Difficulty:     "Easy",
		Servings:       2,
	}, user.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestBuildRecipePrompt(t *testing.T) {
	prompt := buildRecipePrompt(GenerateParams{
		Ingredients:    []string{"chicken", "rice"},
		Diet:           "halal",
		Cuisine:        "Thai",
		MaxTimeMinutes: 45,
		Difficulty:     "Medium",
		Servings:       4,
	})

	assert.Contains(t, prompt, "Ingredients: chicken, rice")
	assert.Contains(t, prompt, "Servings: 4")
	assert.Contains(t, prompt, "Maximum time: 45 minutes")
	assert.Contains(t, prompt, "Difficulty: Medium")
	assert.Contains(t, prompt, "Dietary preference: halal")
	assert.Contains(t, prompt, "Cuisine style: Thai")
	assert.Contains(t, prompt, `"time_minutes": number`)
}

func TestBuildRecipePromptOptionalConstraints(t *testing.T) {
	prompt := buildRecipePrompt(GenerateParams{
		Ingredients:    []string{"eggs"},
		MaxTimeMinutes: 15,
		Difficulty:     "Easy",
		Servings:       1,
	})

	assert.NotContains(t, prompt, "Dietary preference")
	assert.NotContains(t, prompt, "Cuisine style")
}
