// internal/services/relation_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/testutil"
)

type RelationServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *repository.GormStore
	service *services.RelationService

	author *models.User
	reader services.Viewer
	recipe *models.Recipe
}

func (suite *RelationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testutil.NewStore(suite.T())
	suite.service = services.NewRelationService(suite.store)

	suite.author = testutil.CreateUser(suite.T(), suite.store, "author", models.RoleUser)
	reader := testutil.CreateUser(suite.T(), suite.store, "reader", models.RoleUser)
	suite.reader = services.AuthenticatedViewer(reader.ID, reader.Role)
	suite.recipe = testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Soup", nil, nil)
}

func (suite *RelationServiceTestSuite) TestFavoriteTwiceConflicts() {
	short, err := suite.service.AddFavorite(suite.ctx, suite.reader, suite.recipe.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.recipe.ID, short.ID)
	assert.Equal(suite.T(), "Soup", short.Name)

	_, err = suite.service.AddFavorite(suite.ctx, suite.reader, suite.recipe.ID)
	assert.ErrorIs(suite.T(), err, services.ErrConflict)

	require.NoError(suite.T(), suite.service.RemoveFavorite(suite.ctx, suite.reader, suite.recipe.ID))
	err = suite.service.RemoveFavorite(suite.ctx, suite.reader, suite.recipe.ID)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *RelationServiceTestSuite) TestCartTwiceConflicts() {
	_, err := suite.service.AddToCart(suite.ctx, suite.reader, suite.recipe.ID)
	require.NoError(suite.T(), err)

	_, err = suite.service.AddToCart(suite.ctx, suite.reader, suite.recipe.ID)
	assert.ErrorIs(suite.T(), err, services.ErrConflict)

	require.NoError(suite.T(), suite.service.RemoveFromCart(suite.ctx, suite.reader, suite.recipe.ID))
	assert.ErrorIs(suite.T(), suite.service.RemoveFromCart(suite.ctx, suite.reader, suite.recipe.ID), services.ErrNotFound)
}

func (suite *RelationServiceTestSuite) TestFavoriteUnknownRecipe() {
	_, err := suite.service.AddFavorite(suite.ctx, suite.reader, uuid.New())
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *RelationServiceTestSuite) TestAnonymousCannotMutate() {
	_, err := suite.service.AddFavorite(suite.ctx, services.Anonymous(), suite.recipe.ID)
	assert.ErrorIs(suite.T(), err, services.ErrPermission)

	_, err = suite.service.Subscribe(suite.ctx, services.Anonymous(), suite.author.ID, 0)
	assert.ErrorIs(suite.T(), err, services.ErrPermission)
}

func (suite *RelationServiceTestSuite) TestSubscribe() {
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Stew", nil, nil)
	testutil.CreateRecipe(suite.T(), suite.store, suite.author, "Pie", nil, nil)

	view, err := suite.service.Subscribe(suite.ctx, suite.reader, suite.author.ID, 2)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.author.ID, view.ID)
	assert.True(suite.T(), view.IsSubscribed)
	assert.Equal(suite.T(), int64(3), view.RecipesCount)
	assert.Len(suite.T(), view.Recipes, 2)

	_, err = suite.service.Subscribe(suite.ctx, suite.reader, suite.author.ID, 0)
	assert.ErrorIs(suite.T(), err, services.ErrConflict)

	require.NoError(suite.T(), suite.service.Unsubscribe(suite.ctx, suite.reader, suite.author.ID))
	assert.ErrorIs(suite.T(), suite.service.Unsubscribe(suite.ctx, suite.reader, suite.author.ID), services.ErrNotFound)
}

func (suite *RelationServiceTestSuite) TestSubscribeToSelfIsRejected() {
	_, err := suite.service.Subscribe(suite.ctx, suite.reader, suite.reader.UserID, 0)
	assert.ErrorIs(suite.T(), err, services.ErrValidation)
}

func (suite *RelationServiceTestSuite) TestSubscribeToUnknownUser() {
	_, err := suite.service.Subscribe(suite.ctx, suite.reader, uuid.New(), 0)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *RelationServiceTestSuite) TestListSubscriptions() {
	page, err := suite.service.ListSubscriptions(suite.ctx, suite.reader, repository.Page{Limit: 6}, 0)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), page.Total)
	assert.NotNil(suite.T(), page.Subscriptions)
	assert.Empty(suite.T(), page.Subscriptions)

	_, err = suite.service.Subscribe(suite.ctx, suite.reader, suite.author.ID, 0)
	require.NoError(suite.T(), err)

	page, err = suite.service.ListSubscriptions(suite.ctx, suite.reader, repository.Page{Limit: 6}, 0)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), page.Total)
	require.Len(suite.T(), page.Subscriptions, 1)
	assert.Equal(suite.T(), "author", page.Subscriptions[0].Username)
	assert.Len(suite.T(), page.Subscriptions[0].Recipes, 1)
	assert.Equal(suite.T(), int64(1), page.Subscriptions[0].RecipesCount)
}

func TestRelationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RelationServiceTestSuite))
}
