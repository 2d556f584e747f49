// internal/models/relation.go
package models

import (
	"github.com/google/uuid"
)

type Favorite struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_recipe"`
}

type CartEntry struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_entries_user_recipe"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_entries_user_recipe"`
}

// Subscription means UserID follows FollowingID.
type Subscription struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_following"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_user_following"`

	Following User `gorm:"foreignKey:FollowingID"`
}
