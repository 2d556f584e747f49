// internal/models/catalog.go
package models

// Ingredient is a catalog entry. Rows referenced by a recipe must not be
// deleted.
type Ingredient struct {
	BaseModel
	Name            string `json:"name" gorm:"size:200;not null;index;uniqueIndex:idx_ingredients_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null;uniqueIndex:idx_ingredients_name_unit"`
}

type Tag struct {
	BaseModel
	Name  string `json:"name" gorm:"uniqueIndex;size:40;not null"`
	Color string `json:"color" gorm:"uniqueIndex;size:7;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}
