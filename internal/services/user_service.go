package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/repo"
)

// UserService exposes the public profile side of the local user mirror:
// the fields shown next to a user's reviews.
type UserService struct {
	DB *gorm.DB
}

// PublicProfile is the externally visible subset of a user row together
// with their review history.
type PublicProfile struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Username  *string         `json:"username"`
	AvatarURL *string         `json:"avatarUrl"`
	Reviews   []domain.Review `json:"reviews"`
}

// GetProfile returns the public profile for userID.
//
// Errors: ErrUserNotFound when no mirror row exists.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var reviews []domain.Review
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		reviews = []domain.Review{}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Reviews:   reviews,
	}, nil
}

// UpdateProfile updates the mutable fields of the local mirror row.
//
// Errors: ErrUserNotFound when no mirror row exists.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, username, avatarURL *string) error {
	if err := repo.UpdateUserProfile(ctx, s.DB, userID, username, avatarURL); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
