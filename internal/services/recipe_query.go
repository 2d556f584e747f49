// internal/services/recipe_query.go
package services

import (
	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/repository"
)

// RecipeQuery holds the recipe list filters as they arrive from a client.
type RecipeQuery struct {
	AuthorID         *uuid.UUID
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// Filter resolves the query against the viewer. The favorited and cart
// flags are ignored for anonymous viewers.
func (q RecipeQuery) Filter(viewer Viewer) repository.RecipeFilter {
	filter := repository.RecipeFilter{AuthorID: q.AuthorID}

	for _, slug := range q.TagSlugs {
		if slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}

	if viewer.Authenticated {
		userID := viewer.UserID
		if q.IsFavorited {
			filter.FavoritedBy = &userID
		}
		if q.IsInShoppingCart {
			filter.InCartOf = &userID
		}
	}
	return filter
}
