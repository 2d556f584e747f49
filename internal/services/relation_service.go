// internal/services/relation_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

type RelationService struct {
	store repository.Store
}

// SubscriptionPage is one window of followed authors with their recipe
// previews.
type SubscriptionPage struct {
	Subscriptions []SubscriptionView
	Total         int64
}

func NewRelationService(store repository.Store) *RelationService {
	return &RelationService{store: store}
}

func (s *RelationService) AddFavorite(ctx context.Context, viewer Viewer, recipeID uuid.UUID) (*RecipeShortView, error) {
	return s.addRecipeRelation(ctx, viewer, recipeID, s.store.AddFavorite, i18n.KeyFavoriteExists)
}

func (s *RelationService) RemoveFavorite(ctx context.Context, viewer Viewer, recipeID uuid.UUID) error {
	return s.removeRelation(ctx, viewer, recipeID, s.store.RemoveFavorite, i18n.KeyFavoriteNotFound)
}

func (s *RelationService) AddToCart(ctx context.Context, viewer Viewer, recipeID uuid.UUID) (*RecipeShortView, error) {
	return s.addRecipeRelation(ctx, viewer, recipeID, s.store.AddCartEntry, i18n.KeyCartExists)
}

func (s *RelationService) RemoveFromCart(ctx context.Context, viewer Viewer, recipeID uuid.UUID) error {
	return s.removeRelation(ctx, viewer, recipeID, s.store.RemoveCartEntry, i18n.KeyCartNotFound)
}

// Subscribe makes the viewer follow authorID and returns the author with a
// preview of up to recipesLimit recipes. recipesLimit <= 0 means all.
func (s *RelationService) Subscribe(ctx context.Context, viewer Viewer, authorID uuid.UUID, recipesLimit int) (*SubscriptionView, error) {
	if !viewer.Authenticated {
		return nil, permissionError(i18n.KeyAuthRequired)
	}
	if viewer.UserID == authorID {
		return nil, validationError("author", i18n.KeySubscriptionSelf)
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.store.AddSubscription(ctx, viewer.UserID, authorID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(i18n.KeySubscriptionExists, err)
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   viewer.UserID,
		"author_id": authorID,
	}).Debug("Subscription created")

	views, err := s.subscriptionViews(ctx, viewer, []models.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RelationService) Unsubscribe(ctx context.Context, viewer Viewer, authorID uuid.UUID) error {
	return s.removeRelation(ctx, viewer, authorID, s.store.RemoveSubscription, i18n.KeySubscriptionMissing)
}

// ListSubscriptions returns the authors the viewer follows. An empty
// result is a valid empty page.
func (s *RelationService) ListSubscriptions(ctx context.Context, viewer Viewer, page repository.Page, recipesLimit int) (*SubscriptionPage, error) {
	if !viewer.Authenticated {
		return nil, permissionError(i18n.KeyAuthRequired)
	}

	authors, total, err := s.store.ListSubscriptions(ctx, viewer.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	views, err := s.subscriptionViews(ctx, viewer, authors, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &SubscriptionPage{Subscriptions: views, Total: total}, nil
}

func (s *RelationService) subscriptionViews(ctx context.Context, viewer Viewer, authors []models.User, recipesLimit int) ([]SubscriptionView, error) {
	views := make([]SubscriptionView, 0, len(authors))
	if len(authors) == 0 {
		return views, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(authors))
	for _, author := range authors {
		authorIDs = append(authorIDs, author.ID)
	}

	counts, err := s.store.CountRecipesByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}
	rel, err := loadRelations(ctx, s.store, viewer, nil, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}

	for i := range authors {
		recipes, err := s.store.ListRecipesByAuthor(ctx, authors[i].ID, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list author recipes: %w", err)
		}

		view := SubscriptionView{
			UserView:     ToUserView(&authors[i], viewer, rel),
			Recipes:      make([]RecipeShortView, 0, len(recipes)),
			RecipesCount: counts[authors[i].ID],
		}
		for j := range recipes {
			view.Recipes = append(view.Recipes, ToRecipeShortView(&recipes[j]))
		}
		views = append(views, view)
	}
	return views, nil
}

type relationWriter func(ctx context.Context, userID, targetID uuid.UUID) error

func (s *RelationService) addRecipeRelation(ctx context.Context, viewer Viewer, recipeID uuid.UUID, add relationWriter, existsKey string) (*RecipeShortView, error) {
	if !viewer.Authenticated {
		return nil, permissionError(i18n.KeyAuthRequired)
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyRecipeNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := add(ctx, viewer.UserID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(existsKey, err)
		}
		return nil, fmt.Errorf("failed to add relation: %w", err)
	}

	view := ToRecipeShortView(recipe)
	return &view, nil
}

func (s *RelationService) removeRelation(ctx context.Context, viewer Viewer, targetID uuid.UUID, remove relationWriter, missingKey string) error {
	if !viewer.Authenticated {
		return permissionError(i18n.KeyAuthRequired)
	}

	if err := remove(ctx, viewer.UserID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(missingKey)
		}
		return fmt.Errorf("failed to remove relation: %w", err)
	}
	return nil
}
