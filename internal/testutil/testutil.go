// internal/testutil/testutil.go

// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"hash/fnv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/database"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

// PNGPayload is a 1x1 PNG as a data URI.
const PNGPayload = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// NewDB opens a migrated in-memory sqlite database closed at test end.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), "silent")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewStore returns a GormStore over a fresh database.
func NewStore(t testing.TB) *repository.GormStore {
	t.Helper()
	return repository.NewGormStore(NewDB(t))
}

// Config returns a configuration for tests with media under a temp dir and
// rate limiting off.
func Config(t testing.TB) *config.Config {
	t.Helper()

	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: ":memory:",
			LogLevel:   "silent",
		},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
		Media: config.MediaConfig{
			Root:          t.TempDir(),
			BaseURL:       "/media",
			MaxImageBytes: 1024 * 1024,
		},
		Pagination: config.PaginationConfig{
			DefaultLimit: 6,
			MaxLimit:     100,
		},
		ShoppingList: config.ShoppingListConfig{
			Locale:   "ru",
			Filename: "shopping_cart.pdf",
			Title:    "Список покупок",
		},
		Server: config.ServerConfig{
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
	}
}

func CreateUser(t testing.TB, store repository.Store, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

// CreateTag stores a tag whose color is derived from the slug, since tag
// colors are unique.
func CreateTag(t testing.TB, store repository.Store, name, slug string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, Color: TagColor(slug), Slug: slug}
	_, err := store.GetOrCreateTag(context.Background(), tag)
	require.NoError(t, err)
	return tag
}

// TagColor maps a slug onto a stable hex color.
func TagColor(slug string) string {
	h := fnv.New32a()
	h.Write([]byte(slug))
	return fmt.Sprintf("#%06X", h.Sum32()&0xFFFFFF)
}

func CreateIngredient(t testing.TB, store repository.Store, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	_, err := store.GetOrCreateIngredient(context.Background(), ingredient)
	require.NoError(t, err)
	return ingredient
}

// Amounts maps ingredients to the amount a recipe uses.
type Amounts map[*models.Ingredient]int

// CreateRecipe writes a recipe with its tags and ingredients directly
// through the store.
func CreateRecipe(t testing.TB, store repository.Store, author *models.User, name string, tags []*models.Tag, amounts Amounts) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "/media/recipes/images/test.png",
		Text:        "Mix and cook.",
		CookingTime: 10,
		PubDate:     time.Now().UTC(),
	}

	err := store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.AddRecipeTag(ctx, recipe.ID, tag.ID); err != nil {
				return err
			}
		}
		for ingredient, amount := range amounts {
			err := tx.AddRecipeIngredient(ctx, &models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Amount:       amount,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return recipe
}
