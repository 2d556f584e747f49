// internal/services/representation_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/foodgram-backend/internal/models"
)

func TestRelationPredicates(t *testing.T) {
	recipeID, authorID := uuid.New(), uuid.New()
	rel := Relations{
		Favorited:  map[uuid.UUID]bool{recipeID: true},
		InCart:     map[uuid.UUID]bool{},
		Subscribed: map[uuid.UUID]bool{authorID: true},
	}
	viewer := AuthenticatedViewer(uuid.New(), models.RoleUser)

	assert.True(t, IsFavorited(viewer, recipeID, rel))
	assert.False(t, IsInShoppingCart(viewer, recipeID, rel))
	assert.True(t, IsSubscribed(viewer, authorID, rel))
	assert.False(t, IsSubscribed(viewer, uuid.New(), rel))

	// Anonymous viewers never own relations
	assert.False(t, IsFavorited(Anonymous(), recipeID, rel))
	assert.False(t, IsSubscribed(Anonymous(), authorID, rel))
	assert.False(t, IsFavorited(viewer, recipeID, Relations{}))
}

func TestToRecipeView(t *testing.T) {
	author := models.User{Username: "chef", Email: "chef@example.com"}
	author.ID = uuid.New()
	flour := models.Ingredient{Name: "Flour", MeasurementUnit: "g"}
	flour.ID = uuid.New()
	tag := models.Tag{Name: "Lunch", Color: "#FFFFFF", Slug: "lunch"}
	tag.ID = uuid.New()

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        "Bread",
		Image:       "/media/recipes/images/bread.png",
		Text:        "Bake",
		CookingTime: 30,
		PubDate:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Author:      author,
		Tags:        []models.Tag{tag},
		Ingredients: []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 500, Ingredient: flour}},
	}
	recipe.ID = uuid.New()

	viewer := AuthenticatedViewer(uuid.New(), models.RoleUser)
	view := ToRecipeView(recipe, viewer, Relations{InCart: map[uuid.UUID]bool{recipe.ID: true}})

	assert.Equal(t, recipe.ID, view.ID)
	assert.Equal(t, "chef", view.Author.Username)
	assert.False(t, view.Author.IsSubscribed)
	assert.True(t, view.IsInShoppingCart)
	assert.False(t, view.IsFavorited)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, TagView{ID: tag.ID, Name: "Lunch", Color: "#FFFFFF", Slug: "lunch"}, view.Tags[0])
	require.Len(t, view.Ingredients, 1)
	assert.Equal(t, IngredientAmountView{ID: flour.ID, Name: "Flour", MeasurementUnit: "g", Amount: 500}, view.Ingredients[0])

	short := ToRecipeShortView(recipe)
	assert.Equal(t, RecipeShortView{ID: recipe.ID, Name: "Bread", Image: recipe.Image, CookingTime: 30}, short)
}

func TestFromRecipeInput(t *testing.T) {
	authorID := uuid.New()
	recipe := FromRecipeInput(&RecipeInput{Name: "Soup", Text: "Boil", CookingTime: 15, Image: "/media/x.png"}, authorID)

	assert.Equal(t, authorID, recipe.AuthorID)
	assert.Equal(t, "Soup", recipe.Name)
	assert.Equal(t, 15, recipe.CookingTime)
	assert.Empty(t, recipe.Ingredients)
}

func TestRecipeQueryFilter(t *testing.T) {
	authorID := uuid.New()
	query := RecipeQuery{
		AuthorID:         &authorID,
		TagSlugs:         []string{"breakfast", "", "vegan"},
		IsFavorited:      true,
		IsInShoppingCart: true,
	}

	anonymous := query.Filter(Anonymous())
	assert.Equal(t, &authorID, anonymous.AuthorID)
	assert.Equal(t, []string{"breakfast", "vegan"}, anonymous.TagSlugs)
	assert.Nil(t, anonymous.FavoritedBy)
	assert.Nil(t, anonymous.InCartOf)

	viewer := AuthenticatedViewer(uuid.New(), models.RoleUser)
	filter := query.Filter(viewer)
	require.NotNil(t, filter.FavoritedBy)
	require.NotNil(t, filter.InCartOf)
	assert.Equal(t, viewer.UserID, *filter.FavoritedBy)
	assert.Equal(t, viewer.UserID, *filter.InCartOf)
}

func TestViewerCanModify(t *testing.T) {
	owner := uuid.New()

	assert.True(t, AuthenticatedViewer(owner, models.RoleUser).CanModify(owner))
	assert.False(t, AuthenticatedViewer(uuid.New(), models.RoleUser).CanModify(owner))
	assert.True(t, AuthenticatedViewer(uuid.New(), models.RoleAdmin).CanModify(owner))
	assert.False(t, Anonymous().CanModify(owner))

	// Unknown roles downgrade to user
	assert.Equal(t, models.RoleUser, AuthenticatedViewer(owner, models.Role("root")).Role)
}
