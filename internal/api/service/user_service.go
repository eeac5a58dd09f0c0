package service

import (
	"context"
	"errors"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"
)

// ErrNoProfileFields signals an update request that supplied nothing to
// change; handlers answer it with 304 Not Modified.
var ErrNoProfileFields = errors.New("no profile fields supplied")

// UpdateProfileParams holds the optional profile fields. A nil pointer means
// "leave unchanged".
type UpdateProfileParams struct {
	Nickname     *string
	Introduction *string
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Profile(ctx context.Context, userID string) (user *models.User, role string, permissions []string, err error)
	UpdateProfile(ctx context.Context, userID string, p UpdateProfileParams) error
}

type userService struct {
	userRepo repository.UserRepository
	perms    PermissionService
}

func NewUserService(userRepo repository.UserRepository, perms PermissionService) UserService {
	return &userService{userRepo: userRepo, perms: perms}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

// Profile returns the user together with the computed role and permission
// list for the authenticated-profile endpoint.
func (s *userService) Profile(ctx context.Context, userID string) (*models.User, string, []string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", nil, err
	}
	role, permissions, err := s.perms.PermissionsForUser(ctx, userID)
	if err != nil {
		return nil, "", nil, err
	}
	return user, role, permissions, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, p UpdateProfileParams) error {
	if p.Nickname == nil && p.Introduction == nil {
		return ErrNoProfileFields
	}
	if p.Nickname != nil {
		if err := validateNickname(*p.Nickname); err != nil {
			return err
		}
	}
	if p.Introduction != nil {
		if err := validateIntroduction(*p.Introduction); err != nil {
			return err
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if p.Nickname != nil {
		user.Nickname = *p.Nickname
	}
	if p.Introduction != nil {
		user.Introduction = *p.Introduction
	}
	return s.userRepo.Update(ctx, user)
}
