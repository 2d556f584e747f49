// internal/repository/recipes.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/foodgram-backend/internal/models"
)

func (s *GormStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(recipe).Error)
}

// UpdateRecipe writes the scalar columns only. Author and pub_date never
// change.
func (s *GormStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	res := s.conn(ctx).Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
		"name":         recipe.Name,
		"image":        recipe.Image,
		"text":         recipe.Text,
		"cooking_time": recipe.CookingTime,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withRecipeRelations(s.conn(ctx)).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (s *GormStore) ListRecipes(ctx context.Context, filter RecipeFilter, page Page) ([]models.Recipe, int64, error) {
	query := s.conn(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		tagged := s.conn(ctx).Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if filter.FavoritedBy != nil {
		favorited := s.conn(ctx).Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}

	if filter.InCartOf != nil {
		inCart := s.conn(ctx).Model(&models.CartEntry{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := paginate(withRecipeRelations(query).Order("recipes.pub_date DESC, recipes.id DESC"), page).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (s *GormStore) ListRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error) {
	query := s.conn(ctx).Where("author_id = ?", authorID).Order("pub_date ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *GormStore) CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	err := s.conn(ctx).Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

// DeleteRecipe removes the recipe and every row that references it. Call it
// inside Transaction.
func (s *GormStore) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	db := s.conn(ctx)
	for _, dependent := range []interface{}{
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Favorite{},
		&models.CartEntry{},
	} {
		if err := db.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
			return err
		}
	}

	res := db.Where("id = ?", id).Delete(&models.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ClearRecipeAssociations(ctx context.Context, recipeID uuid.UUID) error {
	db := s.conn(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
		return err
	}
	return db.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error
}

// AddRecipeTag is a no-op when the pair already exists.
func (s *GormStore) AddRecipeTag(ctx context.Context, recipeID, tagID uuid.UUID) error {
	return s.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RecipeTag{RecipeID: recipeID, TagID: tagID}).Error
}

// AddRecipeIngredient fails with ErrDuplicate when the recipe already holds
// the ingredient.
func (s *GormStore) AddRecipeIngredient(ctx context.Context, item *models.RecipeIngredient) error {
	return translate(s.conn(ctx).Omit("Ingredient").Create(item).Error)
}

func withRecipeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Ingredients.Ingredient")
}
