// internal/services/errors_test.go
package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javajoker/foodgram-backend/internal/i18n"
)

func TestErrorMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", conflictError(i18n.KeyFavoriteExists, errors.New("unique")))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, &Error{Kind: KindConflict, Key: i18n.KeyFavoriteExists})
	assert.NotErrorIs(t, err, &Error{Kind: KindConflict, Key: i18n.KeyCartExists})
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("unique violation")
	err := conflictError(i18n.KeyCartExists, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "conflict")
	assert.Contains(t, err.Error(), i18n.KeyCartExists)
}

func TestErrorMessageIncludesArgs(t *testing.T) {
	err := notFoundError(i18n.KeyTagNotFound, "abc")
	assert.Equal(t, "not_found: tag.not_found [abc]", err.Error())
}
