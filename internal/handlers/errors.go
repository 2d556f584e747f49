// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

// respondError maps service failures onto HTTP responses. Anything that is
// not a *services.Error is logged and reported as an internal error.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Error("Request failed")
		_ = c.Error(err)
		utils.InternalErrorResponse(c, "")
		return
	}

	message := i18n.T(lang, svcErr.Key, svcErr.Args...)
	switch svcErr.Kind {
	case services.KindValidation:
		var details interface{}
		if svcErr.Field != "" {
			details = []utils.ValidationError{{Field: svcErr.Field, Tag: "invalid", Message: message}}
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
	case services.KindConflict:
		utils.ConflictResponse(c, message)
	case services.KindNotFound:
		utils.NotFoundResponse(c, message)
	case services.KindPermission:
		switch svcErr.Key {
		case i18n.KeyAuthRequired, i18n.KeyAuthInvalidToken, i18n.KeyAuthTokenExpired:
			utils.UnauthorizedResponse(c, message)
		default:
			utils.ForbiddenResponse(c, message)
		}
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates a request body, writing the 400 response
// itself when either step fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func viewerFromContext(c *gin.Context) services.Viewer {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return services.Anonymous()
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Anonymous()
	}

	role, _ := utils.GetUserRoleFromContext(c)
	return services.AuthenticatedViewer(userID, models.Role(role))
}

// pathID parses the :id route parameter. A malformed id answers 404.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}
