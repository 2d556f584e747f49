// internal/testutil/testutil_test.go
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/foodgram-backend/internal/utils"
)

func TestCreateTagGivesEachSlugItsOwnColor(t *testing.T) {
	store := NewStore(t)

	colors := map[string]bool{}
	for _, slug := range []string{"breakfast", "lunch", "dinner", "vegan", "dessert"} {
		tag := CreateTag(t, store, slug, slug)
		require.NoError(t, utils.ValidateVar(tag.Color, "hexcolor"))
		assert.False(t, colors[tag.Color], tag.Color)
		colors[tag.Color] = true
	}

	assert.Equal(t, TagColor("vegan"), TagColor("vegan"))
}
