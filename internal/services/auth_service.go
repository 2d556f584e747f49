// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

type AuthService struct {
	store repository.UserRepository
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=150"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
}

type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

func NewAuthService(store repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		store: store,
		cfg:   cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*UserView, error) {
	user, err := s.createUser(ctx, req, models.RoleUser)
	if err != nil {
		return nil, err
	}

	view := ToUserView(user, Anonymous(), Relations{})
	return &view, nil
}

// CreateAdmin registers an account with the admin role.
func (s *AuthService) CreateAdmin(ctx context.Context, req *RegisterRequest) (*UserView, error) {
	user, err := s.createUser(ctx, req, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	view := ToUserView(user, Anonymous(), Relations{})
	return &view, nil
}

// AdminCount reports how many admin accounts exist.
func (s *AuthService) AdminCount(ctx context.Context) (int64, error) {
	return s.store.CountUsersByRole(ctx, models.RoleAdmin)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError("", i18n.KeyValidationInvalid, "input")
	}

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("", i18n.KeyAuthInvalidCredentials)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, validationError("", i18n.KeyAuthInvalidCredentials)
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")
	return &TokenResponse{AuthToken: token}, nil
}

func (s *AuthService) SetPassword(ctx context.Context, viewer Viewer, req *SetPasswordRequest) error {
	if !viewer.Authenticated {
		return permissionError(i18n.KeyAuthRequired)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return validationError("new_password", i18n.KeyValidationInvalid, "new_password")
	}

	user, err := s.store.GetUser(ctx, viewer.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(i18n.KeyUserNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return validationError("current_password", i18n.KeyAuthPasswordMismatch)
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, user.ID, user.PasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

// ResolveToken turns a bearer token into a viewer.
func (s *AuthService) ResolveToken(tokenString string) (Viewer, error) {
	claims, err := utils.ValidateJWT(tokenString)
	if err != nil {
		if utils.IsTokenExpired(err) {
			return Anonymous(), permissionError(i18n.KeyAuthTokenExpired)
		}
		return Anonymous(), permissionError(i18n.KeyAuthInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Anonymous(), permissionError(i18n.KeyAuthInvalidToken)
	}
	return AuthenticatedViewer(userID, models.Role(claims.Role)), nil
}

func (s *AuthService) createUser(ctx context.Context, req *RegisterRequest, role models.Role) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError("", i18n.KeyValidationInvalid, "input")
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(i18n.KeyAuthUserExists, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    role,
	}).Info("User registered")
	return user, nil
}
