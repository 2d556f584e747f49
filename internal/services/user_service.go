// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

type UserService struct {
	store repository.Store
}

type UserPage struct {
	Users []UserView
	Total int64
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetUser(ctx context.Context, viewer Viewer, id uuid.UUID) (*UserView, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	rel, err := loadRelations(ctx, s.store, viewer, nil, []uuid.UUID{user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}

	view := ToUserView(user, viewer, rel)
	return &view, nil
}

// Me returns the viewer's own profile.
func (s *UserService) Me(ctx context.Context, viewer Viewer) (*UserView, error) {
	if !viewer.Authenticated {
		return nil, permissionError(i18n.KeyAuthRequired)
	}
	return s.GetUser(ctx, viewer, viewer.UserID)
}

func (s *UserService) ListUsers(ctx context.Context, viewer Viewer, page repository.Page) (*UserPage, error) {
	users, total, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	rel, err := loadRelations(ctx, s.store, viewer, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}

	result := &UserPage{Users: make([]UserView, 0, len(users)), Total: total}
	for i := range users {
		result.Users = append(result.Users, ToUserView(&users[i], viewer, rel))
	}
	return result, nil
}
