// internal/repository/shopping.go
package repository

import (
	"context"

	"github.com/google/uuid"
)

// ShoppingList sums recipe ingredient amounts over every recipe in the
// user's cart, grouped by ingredient name and unit.
func (s *GormStore) ShoppingList(ctx context.Context, userID uuid.UUID) ([]ShoppingListRow, error) {
	rows := []ShoppingListRow{}
	err := s.conn(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
