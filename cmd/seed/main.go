package main

import (
	"log"
	"time"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/database"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

// Seeds a chef account with a few public recipes for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	recipeService := service.NewRecipeService(db)

	chef, err := authService.Register("Seed Chef", "chef@example.com", "chefpass123", models.UserTypeChef)
	if err != nil {
		log.Fatalf("Failed to create seed chef: %v", err)
	}

	recipes := []models.Recipe{
		{
			Title:       "Tomato Basil Pasta",
			Description: "Quick weeknight pasta with fresh tomatoes and basil.",
			Ingredients: models.JSONBStringArray{"400g spaghetti", "4 tomatoes", "fresh basil", "2 cloves garlic", "olive oil"},
			Steps:       models.JSONBStringArray{"Boil the pasta", "Saute garlic and tomatoes", "Toss with basil and serve"},
			TimeMinutes: 25,
			Difficulty:  "Easy",
			Tags:        models.JSONBStringArray{"vegetarian", "italian"},
			Source:      models.SourceManual,
			IsPublic:    true,
		},
		{
			Title:       "Chickpea Curry",
			Description: "Creamy coconut chickpea curry.",
			Ingredients: models.JSONBStringArray{"2 cans chickpeas", "1 can coconut milk", "onion", "curry paste", "rice"},
			Steps:       models.JSONBStringArray{"Fry onion and curry paste", "Add chickpeas and coconut milk", "Simmer and serve over rice"},
			TimeMinutes: 35,
			Difficulty:  "Easy",
			Tags:        models.JSONBStringArray{"vegan", "gluten-free"},
			Source:      models.SourceManual,
			IsPublic:    true,
		},
	}

	for i := range recipes {
		if _, err := recipeService.Create(chef, &recipes[i]); err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipes[i].Title, err)
		}
	}

	log.Printf("Seeded %d recipes for %s", len(recipes), chef.Email)
}
