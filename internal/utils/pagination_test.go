// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

func paramsFor(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/recipes?"+query, nil)
	return GetPaginationParams(c, config.PaginationConfig{DefaultLimit: 6, MaxLimit: 100})
}

func TestGetPaginationParams(t *testing.T) {
	assert.Equal(t, PaginationParams{Page: 1, Limit: 6}, paramsFor(""))
	assert.Equal(t, PaginationParams{Page: 3, Limit: 10}, paramsFor("page=3&limit=10"))
	assert.Equal(t, PaginationParams{Page: 1, Limit: 6}, paramsFor("page=-2&limit=abc"))
	assert.Equal(t, PaginationParams{Page: 1, Limit: 100}, paramsFor("limit=5000"))
}

func TestPaginationWindow(t *testing.T) {
	assert.Equal(t, repository.Page{Offset: 12, Limit: 6}, PaginationParams{Page: 3, Limit: 6}.Window())
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]int{1, 2}, 13, PaginationParams{Page: 1, Limit: 6})
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(13), result.Total)
}

func TestGenerateRandomString(t *testing.T) {
	first, err := GenerateRandomString(16)
	assert.NoError(t, err)
	assert.Len(t, first, 16)

	second, err := GenerateRandomString(16)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
