// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/foodgram-backend/internal/utils"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-secret")

	r := gin.New()
	whoami := func(c *gin.Context) {
		id, _ := utils.GetUserIDFromContext(c)
		c.String(http.StatusOK, id)
	}
	r.GET("/private", AuthRequired(), whoami)
	r.GET("/admin", AuthRequired(), AdminRequired(), whoami)
	r.GET("/public", OptionalAuth(), whoami)
	return r
}

func get(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtractToken(t *testing.T) {
	cases := map[string]struct {
		token string
		ok    bool
	}{
		"Token abc":  {"abc", true},
		"Bearer abc": {"abc", true},
		"Basic abc":  {"", false},
		"Token":      {"", false},
		"Token   ":   {"", false},
		"":           {"", false},
	}
	for header, want := range cases {
		token, ok := extractToken(header)
		assert.Equal(t, want.ok, ok, header)
		assert.Equal(t, want.token, token, header)
	}
}

func TestAuthRequired(t *testing.T) {
	r := newAuthRouter()
	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, "chef", "user", 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "Token not-a-jwt").Code)

	for _, scheme := range []string{"Token ", "Bearer "} {
		w := get(r, "/private", scheme+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	}
}

func TestAdminRequired(t *testing.T) {
	r := newAuthRouter()

	user, err := utils.GenerateJWT(uuid.New(), "chef", "user", 1)
	require.NoError(t, err)
	moderator, err := utils.GenerateJWT(uuid.New(), "mod", "moderator", 1)
	require.NoError(t, err)
	admin, err := utils.GenerateJWT(uuid.New(), "boss", "admin", 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Token "+user).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Token "+moderator).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Token "+admin).Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter()
	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, "chef", "user", 1)
	require.NoError(t, err)

	anonymous := get(r, "/public", "")
	assert.Equal(t, http.StatusOK, anonymous.Code)
	assert.Empty(t, anonymous.Body.String())

	broken := get(r, "/public", "Token broken")
	assert.Equal(t, http.StatusOK, broken.Code)
	assert.Empty(t, broken.Body.String())

	assert.Equal(t, userID.String(), get(r, "/public", "Token "+token).Body.String())
}
