package repository

import (
	"context"
	"fmt"

	"comichub/internal/api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	GetAll(ctx context.Context) ([]models.ComicTag, error)
	Create(ctx context.Context, t *models.ComicTag) error
	FindByIDs(ctx context.Context, ids []int64) ([]models.ComicTag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.ComicTag, error) {
	var list []models.ComicTag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	return list, nil
}

func (r *tagRepository) Create(ctx context.Context, t *models.ComicTag) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// FindByIDs returns the tags matching the given ids. Callers compare lengths
// to detect unknown ids before associating tags with a comic.
func (r *tagRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.ComicTag, error) {
	var list []models.ComicTag
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return list, nil
}
