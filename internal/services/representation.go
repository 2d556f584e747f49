// internal/services/representation.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type IngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

type IngredientAmountView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID               uuid.UUID              `json:"id"`
	Tags             []TagView              `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []IngredientAmountView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	PubDate          time.Time              `json:"pub_date"`
}

// RecipeShortView is the compact form used by favorites, cart and
// subscription previews.
type RecipeShortView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// RecipeInput is the write model for create and update.
type RecipeInput struct {
	Ingredients []IngredientInput `json:"ingredients" validate:"required,dive"`
	Tags        []uuid.UUID       `json:"tags" validate:"required"`
	Image       string            `json:"image"`
	Name        string            `json:"name" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required"`
	CookingTime int               `json:"cooking_time"`
}

type IngredientInput struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount"`
}

// Relations is what a viewer has done to a batch of recipes and authors.
type Relations struct {
	Favorited  map[uuid.UUID]bool
	InCart     map[uuid.UUID]bool
	Subscribed map[uuid.UUID]bool
}

func IsFavorited(viewer Viewer, recipeID uuid.UUID, rel Relations) bool {
	return viewer.Authenticated && rel.Favorited[recipeID]
}

func IsInShoppingCart(viewer Viewer, recipeID uuid.UUID, rel Relations) bool {
	return viewer.Authenticated && rel.InCart[recipeID]
}

func IsSubscribed(viewer Viewer, authorID uuid.UUID, rel Relations) bool {
	return viewer.Authenticated && rel.Subscribed[authorID]
}

// loadRelations fetches the viewer's favorites, cart entries and
// subscriptions touching the given recipes and authors in three queries.
func loadRelations(ctx context.Context, store repository.RelationRepository, viewer Viewer, recipeIDs, authorIDs []uuid.UUID) (Relations, error) {
	rel := Relations{}
	if !viewer.Authenticated {
		return rel, nil
	}

	var err error
	if len(recipeIDs) > 0 {
		if rel.Favorited, err = store.FavoritedRecipeIDs(ctx, viewer.UserID, recipeIDs); err != nil {
			return rel, err
		}
		if rel.InCart, err = store.CartRecipeIDs(ctx, viewer.UserID, recipeIDs); err != nil {
			return rel, err
		}
	}
	if len(authorIDs) > 0 {
		if rel.Subscribed, err = store.SubscribedUserIDs(ctx, viewer.UserID, authorIDs); err != nil {
			return rel, err
		}
	}
	return rel, nil
}

func ToUserView(user *models.User, viewer Viewer, rel Relations) UserView {
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: IsSubscribed(viewer, user.ID, rel),
	}
}

func ToTagView(tag *models.Tag) TagView {
	return TagView{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
}

func ToIngredientView(ingredient *models.Ingredient) IngredientView {
	return IngredientView{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// ToRecipeView is the read model of a recipe loaded with its author, tags
// and ingredients.
func ToRecipeView(recipe *models.Recipe, viewer Viewer, rel Relations) RecipeView {
	view := RecipeView{
		ID:               recipe.ID,
		Tags:             make([]TagView, 0, len(recipe.Tags)),
		Author:           ToUserView(&recipe.Author, viewer, rel),
		Ingredients:      make([]IngredientAmountView, 0, len(recipe.Ingredients)),
		IsFavorited:      IsFavorited(viewer, recipe.ID, rel),
		IsInShoppingCart: IsInShoppingCart(viewer, recipe.ID, rel),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
	}

	for i := range recipe.Tags {
		view.Tags = append(view.Tags, ToTagView(&recipe.Tags[i]))
	}
	for _, item := range recipe.Ingredients {
		view.Ingredients = append(view.Ingredients, IngredientAmountView{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}
	return view
}

func ToRecipeShortView(recipe *models.Recipe) RecipeShortView {
	return RecipeShortView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// FromRecipeInput builds the scalar part of a recipe owned by authorID.
// Associations are written separately by the assembly transaction.
func FromRecipeInput(input *RecipeInput, authorID uuid.UUID) *models.Recipe {
	return &models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}
}
