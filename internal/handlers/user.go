// internal/handlers/user.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

type UserHandler struct {
	userService     *services.UserService
	authService     *services.AuthService
	relationService *services.RelationService
	pagination      config.PaginationConfig
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService, relationService *services.RelationService, pagination config.PaginationConfig) *UserHandler {
	return &UserHandler{
		userService:     userService,
		authService:     authService,
		relationService: relationService,
		pagination:      pagination,
	}
}

// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, user)
}

// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.pagination)

	page, err := h.userService.ListUsers(c.Request.Context(), viewerFromContext(c), params.Window())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(page.Users, page.Total, params))
}

// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), viewerFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), viewerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /api/users/set_password
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req services.SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.SetPassword(c.Request.Context(), viewerFromContext(c), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GET /api/users/subscriptions
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	recipesLimit, ok := recipesLimitParam(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c, h.pagination)

	page, err := h.relationService.ListSubscriptions(c.Request.Context(), viewerFromContext(c), params.Window(), recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(page.Subscriptions, page.Total, params))
}

// POST /api/users/:id/subscribe
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipesLimit, ok := recipesLimitParam(c)
	if !ok {
		return
	}

	subscription, err := h.relationService.Subscribe(c.Request.Context(), viewerFromContext(c), id, recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, subscription)
}

// DELETE /api/users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.relationService.Unsubscribe(c.Request.Context(), viewerFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// recipesLimitParam reads ?recipes_limit. Absent means no limit.
func recipesLimitParam(c *gin.Context) (int, bool) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err == nil {
		err = utils.ValidateVar(limit, "gte=0")
	}
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "recipes_limit"), nil)
		return 0, false
	}
	return limit, true
}
