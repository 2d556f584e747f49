// internal/services/recipe_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

type RecipeService struct {
	store  repository.Store
	images ImageStore
	now    func() time.Time
}

// RecipePage is one window of recipe read models plus the unpaged total.
type RecipePage struct {
	Recipes []RecipeView
	Total   int64
}

func NewRecipeService(store repository.Store, images ImageStore) *RecipeService {
	return &RecipeService{
		store:  store,
		images: images,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateRecipe validates the input and writes the recipe with all of its
// tag and ingredient rows in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, viewer Viewer, input *RecipeInput) (*RecipeView, error) {
	if !viewer.Authenticated {
		return nil, permissionError(i18n.KeyAuthRequired)
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if input.Image == "" {
		return nil, validationError("image", i18n.KeyRecipeImage)
	}
	if err := s.checkReferences(ctx, s.store, input); err != nil {
		return nil, err
	}

	image, err := s.images.SaveImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := FromRecipeInput(input, viewer.UserID)
	recipe.Image = image
	recipe.PubDate = s.now()

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return writeAssociations(ctx, tx, recipe.ID, input)
	})
	if err != nil {
		s.discardImage(ctx, image)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"author_id": viewer.UserID,
	}).Info("Recipe created")

	return s.GetRecipe(ctx, viewer, recipe.ID)
}

// UpdateRecipe replaces the recipe's scalars and its complete set of tags
// and ingredients. An empty image keeps the current one.
func (s *RecipeService) UpdateRecipe(ctx context.Context, viewer Viewer, id uuid.UUID, input *RecipeInput) (*RecipeView, error) {
	current, err := s.loadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanModify(current.AuthorID) {
		return nil, permissionError(i18n.KeyRecipeNotOwner)
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, s.store, input); err != nil {
		return nil, err
	}

	updated := FromRecipeInput(input, current.AuthorID)
	updated.ID = current.ID
	updated.Image = current.Image
	updated.PubDate = current.PubDate

	if input.Image != "" {
		if updated.Image, err = s.images.SaveImage(ctx, input.Image); err != nil {
			return nil, err
		}
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.UpdateRecipe(ctx, updated); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := tx.ClearRecipeAssociations(ctx, updated.ID); err != nil {
			return fmt.Errorf("failed to clear recipe associations: %w", err)
		}
		return writeAssociations(ctx, tx, updated.ID, input)
	})
	if err != nil {
		if updated.Image != current.Image {
			s.discardImage(ctx, updated.Image)
		}
		return nil, err
	}

	if updated.Image != current.Image {
		s.discardImage(ctx, current.Image)
	}

	logrus.WithField("recipe_id", id).Info("Recipe updated")
	return s.GetRecipe(ctx, viewer, id)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	recipe, err := s.loadRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.CanModify(recipe.AuthorID) {
		return permissionError(i18n.KeyRecipeNotOwner)
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.DeleteRecipe(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.discardImage(ctx, recipe.Image)
	logrus.WithField("recipe_id", id).Info("Recipe deleted")
	return nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, viewer Viewer, id uuid.UUID) (*RecipeView, error) {
	recipe, err := s.loadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := loadRelations(ctx, s.store, viewer, []uuid.UUID{recipe.ID}, []uuid.UUID{recipe.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}

	view := ToRecipeView(recipe, viewer, rel)
	return &view, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, viewer Viewer, query RecipeQuery, page repository.Page) (*RecipePage, error) {
	recipes, total, err := s.store.ListRecipes(ctx, query.Filter(viewer), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}

	rel, err := loadRelations(ctx, s.store, viewer, recipeIDs, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}

	result := &RecipePage{Recipes: make([]RecipeView, 0, len(recipes)), Total: total}
	for i := range recipes {
		result.Recipes = append(result.Recipes, ToRecipeView(&recipes[i], viewer, rel))
	}
	return result, nil
}

func (s *RecipeService) loadRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyRecipeNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return recipe, nil
}

// checkReferences confirms every referenced tag and ingredient exists.
func (s *RecipeService) checkReferences(ctx context.Context, store repository.CatalogRepository, input *RecipeInput) error {
	ingredientIDs := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	ingredients, err := store.FindIngredients(ctx, ingredientIDs)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	if missing, ok := firstMissing(ingredientIDs, ingredients, func(i models.Ingredient) uuid.UUID { return i.ID }); ok {
		return validationError("ingredients", i18n.KeyIngredientNotFound, missing.String())
	}

	tags, err := store.FindTags(ctx, input.Tags)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	if missing, ok := firstMissing(input.Tags, tags, func(t models.Tag) uuid.UUID { return t.ID }); ok {
		return validationError("tags", i18n.KeyTagNotFound, missing.String())
	}
	return nil
}

func (s *RecipeService) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.DeleteImage(ctx, ref); err != nil {
		logrus.WithError(err).WithField("image", ref).Warn("Failed to delete recipe image")
	}
}

// validateRecipeInput runs every check that needs no database access. It
// rejects duplicate ingredients before any association row is written.
func validateRecipeInput(input *RecipeInput) error {
	if input.CookingTime < 1 {
		return validationError("cooking_time", i18n.KeyRecipeCookingTime)
	}
	if len(input.Tags) == 0 {
		return validationError("tags", i18n.KeyTagsRequired)
	}
	if len(input.Ingredients) == 0 {
		return validationError("ingredients", i18n.KeyIngredientsRequired)
	}

	seen := make(map[uuid.UUID]bool, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return validationError("ingredients", i18n.KeyIngredientAmount)
		}
		if seen[item.ID] {
			return validationError("ingredients", i18n.KeyIngredientDuplicated)
		}
		seen[item.ID] = true
	}
	return nil
}

// writeAssociations inserts tag links and ingredient amounts. A duplicate
// pair that slipped past validation aborts the enclosing transaction.
func writeAssociations(ctx context.Context, tx repository.Store, recipeID uuid.UUID, input *RecipeInput) error {
	for _, tagID := range input.Tags {
		if err := tx.AddRecipeTag(ctx, recipeID, tagID); err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}

	for _, item := range input.Ingredients {
		err := tx.AddRecipeIngredient(ctx, &models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return conflictError(i18n.KeyIngredientDuplicated, err)
		}
		if err != nil {
			return fmt.Errorf("failed to add ingredient: %w", err)
		}
	}
	return nil
}

func firstMissing[T any](want []uuid.UUID, found []T, id func(T) uuid.UUID) (uuid.UUID, bool) {
	present := make(map[uuid.UUID]bool, len(found))
	for _, item := range found {
		present[id(item)] = true
	}
	for _, candidate := range want {
		if !present[candidate] {
			return candidate, true
		}
	}
	return uuid.Nil, false
}
