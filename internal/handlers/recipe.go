// internal/handlers/recipe.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

type RecipeHandler struct {
	recipeService   *services.RecipeService
	relationService *services.RelationService
	shoppingService *services.ShoppingListService
	pagination      config.PaginationConfig
}

func NewRecipeHandler(recipeService *services.RecipeService, relationService *services.RelationService, shoppingService *services.ShoppingListService, pagination config.PaginationConfig) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		shoppingService: shoppingService,
		pagination:      pagination,
	}
}

// GET /api/recipes?author=&tags=&tags=&is_favorited=&is_in_shopping_cart=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	query := services.RecipeQuery{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      flagParam(c, "is_favorited"),
		IsInShoppingCart: flagParam(c, "is_in_shopping_cart"),
	}

	if author := c.Query("author"); author != "" {
		if err := utils.ValidateVar(author, "uuid"); err != nil {
			lang := utils.GetLangFromContext(c)
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "author"), nil)
			return
		}
		authorID := uuid.MustParse(author)
		query.AuthorID = &authorID
	}

	params := utils.GetPaginationParams(c, h.pagination)
	page, err := h.recipeService.ListRecipes(c.Request.Context(), viewerFromContext(c), query, params.Window())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(page.Recipes, page.Total, params))
}

// GET /api/recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), viewerFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, recipe)
}

// POST /api/recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input services.RecipeInput
	if !bindJSON(c, &input) {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), viewerFromContext(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, recipe)
}

// PATCH /api/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input services.RecipeInput
	if !bindJSON(c, &input) {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), viewerFromContext(c), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, recipe)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), viewerFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /api/recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.relationService.AddFavorite)
}

// DELETE /api/recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.relationService.RemoveFavorite)
}

// POST /api/recipes/:id/shopping_cart
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.relationService.AddToCart)
}

// DELETE /api/recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.relationService.RemoveFromCart)
}

// GET /api/recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	doc, err := h.shoppingService.Export(c.Request.Context(), viewerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

type recipeRelationAdder func(ctx context.Context, viewer services.Viewer, recipeID uuid.UUID) (*services.RecipeShortView, error)

type recipeRelationRemover func(ctx context.Context, viewer services.Viewer, recipeID uuid.UUID) error

func (h *RecipeHandler) addRelation(c *gin.Context, add recipeRelationAdder) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := add(c.Request.Context(), viewerFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, recipe)
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove recipeRelationRemover) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), viewerFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// flagParam treats "1" and "true" as set.
func flagParam(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true":
		return true
	default:
		return false
	}
}
