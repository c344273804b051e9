// Seeds the mock backend with demo users and menu items so the storefront
// has something to serve. Safe to run against a fresh json-server database;
// running it twice duplicates the data.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuseats/storefront/internal/adapter/backend"
	"github.com/campuseats/storefront/internal/core/domain"
)

const requestTimeout = 10 * time.Second

func main() {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:5000"
	}

	ctx := context.Background()
	client := backend.NewClient(backendURL, requestTimeout)

	users := []domain.User{
		{
			ID:        uuid.NewString(),
			Email:     "alice@campus.fr",
			Password:  "alice123",
			LastName:  "Martin",
			FirstName: "Alice",
		},
		{
			ID:        uuid.NewString(),
			Email:     "bruno@campus.fr",
			Password:  "bruno123",
			LastName:  "Leroy",
			FirstName: "Bruno",
		},
	}

	items := []domain.Item{
		{
			ID:          uuid.NewString(),
			Name:        "Croque-monsieur",
			Price:       decimal.NewFromFloat(4.50),
			Description: "Jambon, emmental, pain de mie toasté",
			Category:    "plats",
			Allergens:   []string{"gluten", "lait"},
		},
		{
			ID:          uuid.NewString(),
			Name:        "Salade César",
			Price:       decimal.NewFromFloat(6.00),
			Description: "Poulet grillé, parmesan, croûtons",
			Category:    "plats",
			Allergens:   []string{"gluten", "lait", "oeuf"},
		},
		{
			ID:        uuid.NewString(),
			Name:      "Tarte aux pommes",
			Price:     decimal.NewFromFloat(3.20),
			Category:  "desserts",
			Allergens: []string{"gluten"},
		},
		{
			ID:       uuid.NewString(),
			Name:     "Jus d'orange",
			Price:    decimal.NewFromFloat(2.00),
			Category: "boissons",
		},
	}

	for _, u := range users {
		created, err := client.CreateUser(ctx, u)
		if err != nil {
			log.Fatalf("failed to create user %s: %v", u.Email, err)
		}
		log.Printf("created user %s (%s)", created.Email, created.ID)
	}

	for _, it := range items {
		created, err := client.CreateItem(ctx, it)
		if err != nil {
			log.Fatalf("failed to create item %s: %v", it.Name, err)
		}
		log.Printf("created item %s (%s)", created.Name, created.ID)
	}

	log.Printf("seeded %d users and %d items", len(users), len(items))
}
