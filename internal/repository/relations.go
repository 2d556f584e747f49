// internal/repository/relations.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/foodgram-backend/internal/models"
)

func (s *GormStore) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return translate(s.conn(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error)
}

func (s *GormStore) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return deletePair(s.conn(ctx), &models.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (s *GormStore) FavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return pairSet(s.conn(ctx), &models.Favorite{}, "recipe_id", userID, recipeIDs)
}

func (s *GormStore) AddCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	return translate(s.conn(ctx).Create(&models.CartEntry{UserID: userID, RecipeID: recipeID}).Error)
}

func (s *GormStore) RemoveCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	return deletePair(s.conn(ctx), &models.CartEntry{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (s *GormStore) CartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return pairSet(s.conn(ctx), &models.CartEntry{}, "recipe_id", userID, recipeIDs)
}

func (s *GormStore) AddSubscription(ctx context.Context, userID, followingID uuid.UUID) error {
	return translate(s.conn(ctx).Omit("Following").Create(&models.Subscription{UserID: userID, FollowingID: followingID}).Error)
}

func (s *GormStore) RemoveSubscription(ctx context.Context, userID, followingID uuid.UUID) error {
	return deletePair(s.conn(ctx), &models.Subscription{}, "user_id = ? AND following_id = ?", userID, followingID)
}

func (s *GormStore) SubscribedUserIDs(ctx context.Context, userID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return pairSet(s.conn(ctx), &models.Subscription{}, "following_id", userID, candidateIDs)
}

// ListSubscriptions returns the authors userID follows, oldest subscription
// first.
func (s *GormStore) ListSubscriptions(ctx context.Context, userID uuid.UUID, page Page) ([]models.User, int64, error) {
	query := s.conn(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.following_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := paginate(query.Select("users.*").Order("subscriptions.created_at ASC, users.id ASC"), page).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func deletePair(db *gorm.DB, model interface{}, cond string, args ...interface{}) error {
	res := db.Where(cond, args...).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// pairSet reports which of ids appear in column for rows owned by userID.
func pairSet(db *gorm.DB, model interface{}, column string, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return set, nil
	}

	var found []uuid.UUID
	err := db.Model(model).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		set[id] = true
	}
	return set, nil
}
