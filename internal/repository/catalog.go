// internal/repository/catalog.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/foodgram-backend/internal/models"
)

func (s *GormStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.conn(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *GormStore) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.conn(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (s *GormStore) FindTags(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreateTag looks the tag up by slug and inserts it when missing. On
// return tag holds the stored row.
func (s *GormStore) GetOrCreateTag(ctx context.Context, tag *models.Tag) (bool, error) {
	var existing models.Tag
	err := s.conn(ctx).Where("slug = ?", tag.Slug).First(&existing).Error
	if err == nil {
		*tag = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := s.conn(ctx).Create(tag).Error; err != nil {
		return false, translate(err)
	}
	return true, nil
}

// ListIngredients matches names starting with namePrefix, case-insensitively.
func (s *GormStore) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.conn(ctx).Model(&models.Ingredient{})
	if namePrefix = strings.TrimSpace(namePrefix); namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(namePrefix))+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *GormStore) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.conn(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func (s *GormStore) FindIngredients(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetOrCreateIngredient looks the ingredient up by (name, unit) and inserts
// it when missing. On return ingredient holds the stored row.
func (s *GormStore) GetOrCreateIngredient(ctx context.Context, ingredient *models.Ingredient) (bool, error) {
	var existing models.Ingredient
	err := s.conn(ctx).
		Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
		First(&existing).Error
	if err == nil {
		*ingredient = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := s.conn(ctx).Create(ingredient).Error; err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (s *GormStore) IngredientInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	res := s.conn(ctx).Where("id = ?", id).Delete(&models.Ingredient{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
