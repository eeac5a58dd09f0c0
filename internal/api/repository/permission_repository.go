package repository

import (
	"context"
	"fmt"

	"comichub/internal/api/models"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	FindGroupByName(ctx context.Context, name string) (*models.PermissionGroup, error)
	FindGroupByID(ctx context.Context, id int64) (*models.PermissionGroup, error)
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) FindGroupByName(ctx context.Context, name string) (*models.PermissionGroup, error) {
	var g models.PermissionGroup
	if err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&g).Error; err != nil {
		return nil, fmt.Errorf("find permission group %s: %w", name, err)
	}
	return &g, nil
}

func (r *permissionRepository) FindGroupByID(ctx context.Context, id int64) (*models.PermissionGroup, error) {
	var g models.PermissionGroup
	if err := r.db.WithContext(ctx).Preload("Permissions").First(&g, id).Error; err != nil {
		return nil, fmt.Errorf("find permission group %d: %w", id, err)
	}
	return &g, nil
}
