package service

import (
	"context"

	"comichub/internal/api/repository"
)

// PermissionService resolves a user's permission group into the group's
// permission set. Route middleware gates mutating endpoints on it.
type PermissionService interface {
	PermissionsForUser(ctx context.Context, userID string) (role string, permissions []string, err error)
	HasPermission(ctx context.Context, userID, permission string) (bool, error)
}

type permissionService struct {
	userRepo repository.UserRepository
	permRepo repository.PermissionRepository
}

func NewPermissionService(userRepo repository.UserRepository, permRepo repository.PermissionRepository) PermissionService {
	return &permissionService{userRepo: userRepo, permRepo: permRepo}
}

func (s *permissionService) PermissionsForUser(ctx context.Context, userID string) (string, []string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	group, err := s.permRepo.FindGroupByID(ctx, user.PermissionGroupID)
	if err != nil {
		return "", nil, err
	}

	permissions := make([]string, 0, len(group.Permissions))
	for _, p := range group.Permissions {
		permissions = append(permissions, p.Name)
	}
	return group.Name, permissions, nil
}

func (s *permissionService) HasPermission(ctx context.Context, userID, permission string) (bool, error) {
	_, permissions, err := s.PermissionsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}
