package repository

import (
	"context"
	"fmt"

	"comichub/internal/api/models"

	"gorm.io/gorm"
)

type ComicRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error)
	GetByID(ctx context.Context, id string) (*models.Comic, error)
	GetBySlug(ctx context.Context, slug string) (*models.Comic, error)
	Exists(ctx context.Context, id string) (bool, error)
	CreateWithTags(ctx context.Context, c *models.Comic, tagIDs []int64) error
	Update(ctx context.Context, c *models.Comic) error
	AppendTags(ctx context.Context, comicID string, tagIDs []int64) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}

type comicRepository struct {
	db *gorm.DB
}

func NewComicRepository(db *gorm.DB) ComicRepository {
	return &comicRepository{db: db}
}

func (r *comicRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	var list []models.Comic
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Preload("Thumbnail").
		Preload("Tags").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *comicRepository) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	var c models.Comic
	if err := r.db.WithContext(ctx).
		Preload("Thumbnail").
		Preload("Tags").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comicRepository) GetBySlug(ctx context.Context, slug string) (*models.Comic, error) {
	var c models.Comic
	if err := r.db.WithContext(ctx).
		Preload("Thumbnail").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comicRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comic{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("comic exists check: %w", err)
	}
	return count > 0, nil
}

// CreateWithTags inserts the comic row and its tag-association rows in one
// transaction. Either everything commits or nothing does.
func (r *comicRepository) CreateWithTags(ctx context.Context, c *models.Comic, tagIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin create comic: %w", tx.Error)
	}

	if err := tx.Create(c).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create comic: %w", err)
	}

	if len(tagIDs) > 0 {
		tags := make([]models.ComicTag, 0, len(tagIDs))
		for _, id := range tagIDs {
			tags = append(tags, models.ComicTag{ID: id})
		}
		if err := tx.Model(c).Association("Tags").Append(&tags); err != nil {
			tx.Rollback()
			return fmt.Errorf("append comic tags: %w", err)
		}
	}

	return tx.Commit().Error
}

func (r *comicRepository) Update(ctx context.Context, c *models.Comic) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update comic: %w", err)
	}
	return nil
}

// AppendTags adds association rows for the given tag ids without touching
// rows that are already present.
func (r *comicRepository) AppendTags(ctx context.Context, comicID string, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin append tags: %w", tx.Error)
	}
	var c models.Comic
	if err := tx.First(&c, "id = ?", comicID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("comic not found: %w", err)
	}
	tags := make([]models.ComicTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.ComicTag{ID: id})
	}
	if err := tx.Model(&c).Association("Tags").Append(&tags); err != nil {
		tx.Rollback()
		return fmt.Errorf("append tags: %w", err)
	}
	return tx.Commit().Error
}

func (r *comicRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comic{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete comic: %w", err)
	}
	return nil
}

// IncrementViews bumps the counter in SQL so concurrent requests never lose
// an increment to a read-modify-write race.
func (r *comicRepository) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Comic{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *comicRepository) IncrementLikes(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Comic{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment likes: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
