package repository

import (
	"context"
	"fmt"

	"comichub/internal/api/models"

	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	ListByUploader(ctx context.Context, userID string) ([]models.Resource, error)
	Delete(ctx context.Context, id string) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, res *models.Resource) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	var res models.Resource
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) ListByUploader(ctx context.Context, userID string) ([]models.Resource, error) {
	var list []models.Resource
	if err := r.db.WithContext(ctx).
		Where("uploaded_by = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return list, nil
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Resource{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}
