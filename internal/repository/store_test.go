// internal/repository/store_test.go
package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/testutil"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *repository.GormStore

	author *models.User
	reader *models.User
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testutil.NewStore(suite.T())
	suite.author = testutil.CreateUser(suite.T(), suite.store, "author", models.RoleUser)
	suite.reader = testutil.CreateUser(suite.T(), suite.store, "reader", models.RoleUser)
}

func (suite *StoreTestSuite) TestCreateUserDuplicateEmail() {
	dup := &models.User{Username: "other", Email: suite.author.Email, FirstName: "A", LastName: "B", PasswordHash: "x"}

	err := suite.store.CreateUser(suite.ctx, dup)
	assert.ErrorIs(suite.T(), err, repository.ErrDuplicate)
}

func (suite *StoreTestSuite) TestGetUserNotFound() {
	_, err := suite.store.GetUser(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
}

func (suite *StoreTestSuite) TestListUsersPaginates() {
	users, total, err := suite.store.ListUsers(suite.ctx, repository.Page{Limit: 1})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), users, 1)
}

func (suite *StoreTestSuite) TestListIngredientsByPrefix() {
	testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	testutil.CreateIngredient(suite.T(), suite.store, "flaxseed", "g")
	testutil.CreateIngredient(suite.T(), suite.store, "Sugar", "g")
	testutil.CreateIngredient(suite.T(), suite.store, "100%_juice", "ml")

	found, err := suite.store.ListIngredients(suite.ctx, "FL")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), found, 2)

	found, err = suite.store.ListIngredients(suite.ctx, "100%")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), found, 1)
	assert.Equal(suite.T(), "100%_juice", found[0].Name)

	all, err := suite.store.ListIngredients(suite.ctx, "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 4)
}

func (suite *StoreTestSuite) TestGetOrCreateIngredientIsIdempotent() {
	first := &models.Ingredient{Name: "Salt", MeasurementUnit: "g"}
	created, err := suite.store.GetOrCreateIngredient(suite.ctx, first)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)

	second := &models.Ingredient{Name: "Salt", MeasurementUnit: "g"}
	created, err = suite.store.GetOrCreateIngredient(suite.ctx, second)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)
	assert.Equal(suite.T(), first.ID, second.ID)

	// Same name in another unit is a different ingredient
	third := &models.Ingredient{Name: "Salt", MeasurementUnit: "pinch"}
	created, err = suite.store.GetOrCreateIngredient(suite.ctx, third)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)
}

func (suite *StoreTestSuite) TestAddRecipeIngredientDuplicate() {
	flour := testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	recipe := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Bread", nil, testutil.Amounts{flour: 100})

	err := suite.store.AddRecipeIngredient(suite.ctx, &models.RecipeIngredient{
		RecipeID:     recipe.ID,
		IngredientID: flour.ID,
		Amount:       5,
	})
	assert.ErrorIs(suite.T(), err, repository.ErrDuplicate)
}

func (suite *StoreTestSuite) TestTransactionRollsBack() {
	flour := testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	failure := errors.New("boom")

	var recipeID uuid.UUID
	err := suite.store.Transaction(suite.ctx, func(tx repository.Store) error {
		recipe := &models.Recipe{AuthorID: suite.author.ID, Name: "Bread", Text: "Bake", CookingTime: 5}
		if err := tx.CreateRecipe(suite.ctx, recipe); err != nil {
			return err
		}
		recipeID = recipe.ID
		if err := tx.AddRecipeIngredient(suite.ctx, &models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 1}); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(suite.T(), err, failure)

	_, err = suite.store.GetRecipe(suite.ctx, recipeID)
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)

	inUse, err := suite.store.IngredientInUse(suite.ctx, flour.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), inUse)
}

func (suite *StoreTestSuite) TestGetRecipeLoadsAssociations() {
	flour := testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	sugar := testutil.CreateIngredient(suite.T(), suite.store, "Sugar", "g")
	lunch := testutil.CreateTag(suite.T(), suite.store, "Lunch", "lunch")
	breakfast := testutil.CreateTag(suite.T(), suite.store, "Breakfast", "breakfast")

	created := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Cake",
		[]*models.Tag{lunch, breakfast}, testutil.Amounts{flour: 200, sugar: 50})

	recipe, err := suite.store.GetRecipe(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.author.Username, recipe.Author.Username)
	require.Len(suite.T(), recipe.Tags, 2)
	assert.Equal(suite.T(), "breakfast", recipe.Tags[0].Slug)
	assert.Len(suite.T(), recipe.Ingredients, 2)

	amounts := map[string]int{}
	for _, item := range recipe.Ingredients {
		amounts[item.Ingredient.Name] = item.Amount
	}
	assert.Equal(suite.T(), map[string]int{"Flour": 200, "Sugar": 50}, amounts)
}

func (suite *StoreTestSuite) TestListRecipesTagFilterMatchesAny() {
	breakfast := testutil.CreateTag(suite.T(), suite.store, "Breakfast", "breakfast")
	vegan := testutil.CreateTag(suite.T(), suite.store, "Vegan", "vegan")
	dinner := testutil.CreateTag(suite.T(), suite.store, "Dinner", "dinner")

	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Porridge", []*models.Tag{breakfast}, nil)
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Salad", []*models.Tag{vegan, dinner}, nil)
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Steak", []*models.Tag{dinner}, nil)
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Vegan pancakes", []*models.Tag{breakfast, vegan}, nil)

	recipes, total, err := suite.store.ListRecipes(suite.ctx, repository.RecipeFilter{
		TagSlugs: []string{"breakfast", "vegan"},
	}, repository.Page{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), total)

	names := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		names = append(names, recipe.Name)
	}
	assert.ElementsMatch(suite.T(), []string{"Porridge", "Salad", "Vegan pancakes"}, names)
}

func (suite *StoreTestSuite) TestListRecipesRelationFilters() {
	soup := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Soup", nil, nil)
	pie := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Pie", nil, nil)
	other := testutil.CreateUser(suite.T(), suite.store, "other", models.RoleUser)
	testutil.CreateRecipe(suite.T(), suite.store, other, "Toast", nil, nil)

	require.NoError(suite.T(), suite.store.AddFavorite(suite.ctx, suite.reader.ID, soup.ID))
	require.NoError(suite.T(), suite.store.AddCartEntry(suite.ctx, suite.reader.ID, pie.ID))

	favorites, total, err := suite.store.ListRecipes(suite.ctx, repository.RecipeFilter{FavoritedBy: &suite.reader.ID}, repository.Page{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), soup.ID, favorites[0].ID)

	cart, _, err := suite.store.ListRecipes(suite.ctx, repository.RecipeFilter{InCartOf: &suite.reader.ID}, repository.Page{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart, 1)
	assert.Equal(suite.T(), pie.ID, cart[0].ID)

	byAuthor, total, err := suite.store.ListRecipes(suite.ctx, repository.RecipeFilter{AuthorID: &suite.author.ID}, repository.Page{Limit: 1})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), byAuthor, 1)
}

func (suite *StoreTestSuite) TestFavoriteLifecycle() {
	recipe := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Soup", nil, nil)

	require.NoError(suite.T(), suite.store.AddFavorite(suite.ctx, suite.reader.ID, recipe.ID))
	assert.ErrorIs(suite.T(), suite.store.AddFavorite(suite.ctx, suite.reader.ID, recipe.ID), repository.ErrDuplicate)

	set, err := suite.store.FavoritedRecipeIDs(suite.ctx, suite.reader.ID, []uuid.UUID{recipe.ID, uuid.New()})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[uuid.UUID]bool{recipe.ID: true}, set)

	require.NoError(suite.T(), suite.store.RemoveFavorite(suite.ctx, suite.reader.ID, recipe.ID))
	assert.ErrorIs(suite.T(), suite.store.RemoveFavorite(suite.ctx, suite.reader.ID, recipe.ID), repository.ErrNotFound)
}

func (suite *StoreTestSuite) TestSubscriptions() {
	require.NoError(suite.T(), suite.store.AddSubscription(suite.ctx, suite.reader.ID, suite.author.ID))
	assert.ErrorIs(suite.T(), suite.store.AddSubscription(suite.ctx, suite.reader.ID, suite.author.ID), repository.ErrDuplicate)

	authors, total, err := suite.store.ListSubscriptions(suite.ctx, suite.reader.ID, repository.Page{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), authors, 1)
	assert.Equal(suite.T(), suite.author.ID, authors[0].ID)

	none, total, err := suite.store.ListSubscriptions(suite.ctx, suite.author.ID, repository.Page{})
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), total)
	assert.Empty(suite.T(), none)
}

func (suite *StoreTestSuite) TestDeleteRecipeRemovesDependents() {
	flour := testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	tag := testutil.CreateTag(suite.T(), suite.store, "Lunch", "lunch")
	recipe := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Bread", []*models.Tag{tag}, testutil.Amounts{flour: 1})
	require.NoError(suite.T(), suite.store.AddCartEntry(suite.ctx, suite.reader.ID, recipe.ID))

	err := suite.store.Transaction(suite.ctx, func(tx repository.Store) error {
		return tx.DeleteRecipe(suite.ctx, recipe.ID)
	})
	require.NoError(suite.T(), err)

	inUse, err := suite.store.IngredientInUse(suite.ctx, flour.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), inUse)

	rows, err := suite.store.ShoppingList(suite.ctx, suite.reader.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), rows)

	assert.ErrorIs(suite.T(), suite.store.DeleteRecipe(suite.ctx, recipe.ID), repository.ErrNotFound)
}

func (suite *StoreTestSuite) TestShoppingListSumsByNameAndUnit() {
	flour := testutil.CreateIngredient(suite.T(), suite.store, "Flour", "g")
	sugar := testutil.CreateIngredient(suite.T(), suite.store, "Sugar", "g")
	egg := testutil.CreateIngredient(suite.T(), suite.store, "Egg", "pcs")

	first := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Cake", nil, testutil.Amounts{flour: 200, sugar: 50})
	second := testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Pancakes", nil, testutil.Amounts{flour: 100, egg: 2})
	// Not in the cart
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Cookies", nil, testutil.Amounts{sugar: 500})

	require.NoError(suite.T(), suite.store.AddCartEntry(suite.ctx, suite.reader.ID, first.ID))
	require.NoError(suite.T(), suite.store.AddCartEntry(suite.ctx, suite.reader.ID, second.ID))

	rows, err := suite.store.ShoppingList(suite.ctx, suite.reader.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []repository.ShoppingListRow{
		{Name: "Egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 50},
	}, rows)
}

func (suite *StoreTestSuite) TestCountRecipesByAuthors() {
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "One", nil, nil)
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Two", nil, nil)

	counts, err := suite.store.CountRecipesByAuthors(suite.ctx, []uuid.UUID{suite.author.ID, suite.reader.ID})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), counts[suite.author.ID])
	assert.Zero(suite.T(), counts[suite.reader.ID])

	limited, err := suite.store.ListRecipesByAuthor(suite.ctx, suite.author.ID, 1)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), limited, 1)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
