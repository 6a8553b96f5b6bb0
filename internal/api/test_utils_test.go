package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

// setupTestRouter builds an engine with the handler routes registered over an
// in-memory database. aiURL and aiKey configure the upstream the AI service
// talks to; tests point them at an httptest server.
func setupTestRouter(t *testing.T, aiURL, aiKey string) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
		&models.Rating{},
		&models.AIRequest{},
	))

	authService := service.NewAuthService(db, "test-secret", 30*time.Minute)
	recipeService := service.NewRecipeService(db)
	aiService := service.NewAIService(db, service.NewOpenAIClient(&config.Config{
		OpenAIAPIKey: aiKey,
		OpenAIAPIURL: aiURL,
		OpenAIModel:  "gpt-4o-mini",
	}))

	engine := gin.New()
	apiGroup := engine.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(apiGroup)
	NewRecipeHandler(recipeService).RegisterRoutes(apiGroup, authService)
	NewAIHandler(aiService, recipeService).RegisterRoutes(apiGroup, authService)

	return engine, db
}

// performRequest makes an HTTP request against the router. An empty token
// leaves the request anonymous.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns a bearer token.
func registerAndLogin(t *testing.T, router *gin.Engine, email, userType string) string {
	w := performRequest(router, "POST", "/api/auth/register", map[string]interface{}{
		"name":      "Test User",
		"email":     email,
		"password":  "password123",
		"user_type": userType,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(router, "POST", "/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// createRecipeViaAPI posts a recipe and returns the decoded view.
func createRecipeViaAPI(t *testing.T, router *gin.Engine, token, title string, isPublic bool) map[string]interface{} {
	w := performRequest(router, "POST", "/api/recipes", map[string]interface{}{
		"title":        title,
		"description":  "A test recipe",
		"ingredients":  []string{"flour", "water"},
		"steps":        []string{"mix", "bake"},
		"time_minutes": 30,
		"difficulty":   "Easy",
		"tags":         []string{"vegetarian"},
		"is_public":    isPublic,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}
