// internal/repository/store.go

// Package repository is the persistence boundary. Services depend on Store
// and never on *gorm.DB directly.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrReferenced = errors.New("record is referenced")
)

// Page is an offset window over an ordered result set. Limit <= 0 means
// no limit.
type Page struct {
	Offset int
	Limit  int
}

// RecipeFilter predicates compose with AND semantics. TagSlugs matches
// recipes carrying at least one of the slugs.
type RecipeFilter struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
}

// ShoppingListRow is one (ingredient name, unit) group with its summed amount.
type ShoppingListRow struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int64
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, page Page) ([]models.User, int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	CountUsersByRole(ctx context.Context, role models.Role) (int64, error)
}

type CatalogRepository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	FindTags(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error)
	GetOrCreateTag(ctx context.Context, tag *models.Tag) (bool, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	FindIngredients(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error)
	GetOrCreateIngredient(ctx context.Context, ingredient *models.Ingredient) (bool, error)
	IngredientInUse(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
}

type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter, page Page) ([]models.Recipe, int64, error)
	ListRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error)
	CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ClearRecipeAssociations(ctx context.Context, recipeID uuid.UUID) error
	AddRecipeTag(ctx context.Context, recipeID, tagID uuid.UUID) error
	AddRecipeIngredient(ctx context.Context, item *models.RecipeIngredient) error
}

type RelationRepository interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	FavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	AddCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error
	CartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	AddSubscription(ctx context.Context, userID, followingID uuid.UUID) error
	RemoveSubscription(ctx context.Context, userID, followingID uuid.UUID) error
	SubscribedUserIDs(ctx context.Context, userID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	ListSubscriptions(ctx context.Context, userID uuid.UUID, page Page) ([]models.User, int64, error)
}

type ShoppingListRepository interface {
	ShoppingList(ctx context.Context, userID uuid.UUID) ([]ShoppingListRow, error)
}

// Store is the full persistence facility. Transaction runs fn against a
// Store bound to one database transaction; returning an error rolls back
// every write made through tx. Transactions do not nest.
type Store interface {
	UserRepository
	CatalogRepository
	RecipeRepository
	RelationRepository
	ShoppingListRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
