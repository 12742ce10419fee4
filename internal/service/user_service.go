package service

import (
	"context"

	"farmstead/internal/model"
	"farmstead/internal/repository"
)

// UserService covers the profile and settings views backed by the users
// table.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *UserService) Settings(ctx context.Context, userID string) (model.Settings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Settings{}, err
	}
	return user.Settings, nil
}

// UpdateSettings merges section-wise: sections absent from the payload keep
// their stored values.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, req model.UpdateSettingsRequest) (model.Settings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Settings{}, err
	}

	settings := user.Settings
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if req.Security != nil {
		settings.Security = *req.Security
	}
	if req.Appearance != nil {
		settings.Appearance = *req.Appearance
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}

	if err := s.users.UpdateSettings(ctx, userID, settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}
