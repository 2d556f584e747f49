// internal/models/recipe.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	BaseModel
	AuthorID    uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"size:500"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:cooking_time >= 1"`
	PubDate     time.Time `json:"pub_date" gorm:"not null;index"`

	// Relationships
	Author      User               `json:"author" gorm:"foreignKey:AuthorID"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;joinForeignKey:RecipeID;joinReferences:TagID"`
}

// RecipeIngredient holds the amount of one ingredient in one recipe.
type RecipeIngredient struct {
	BaseModel
	RecipeID     uuid.UUID `json:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredients_pair"`
	IngredientID uuid.UUID `json:"ingredient_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_ingredients_pair"`
	Amount       int       `json:"amount" gorm:"not null;check:amount >= 1"`

	Ingredient Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID"`
}

// RecipeTag is the join row between recipes and tags.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
