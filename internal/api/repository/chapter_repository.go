package repository

import (
	"context"
	"fmt"

	"comichub/internal/api/models"

	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(ctx context.Context, c *models.ComicChapter) error
	GetByID(ctx context.Context, id string) (*models.ComicChapter, error)
	ListByComic(ctx context.Context, comicID string, limit, page int, sortField, sortDir string) ([]models.ComicChapter, int64, error)
	UpdateLength(ctx context.Context, id string, length int) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, c *models.ComicChapter) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) GetByID(ctx context.Context, id string) (*models.ComicChapter, error) {
	var c models.ComicChapter
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByComic pages through a comic's chapters. Pages are zero-based: the
// offset is page*limit, so page 0 returns the first window.
func (r *chapterRepository) ListByComic(ctx context.Context, comicID string, limit, page int, sortField, sortDir string) ([]models.ComicChapter, int64, error) {
	var list []models.ComicChapter
	var total int64

	q := r.db.WithContext(ctx).Model(&models.ComicChapter{}).Where("comic_id = ?", comicID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count chapters: %w", err)
	}

	offset := page * limit
	order := fmt.Sprintf("%s %s", sortField, sortDir)
	if err := r.db.WithContext(ctx).
		Where("comic_id = ?", comicID).
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list chapters: %w", err)
	}

	return list, total, nil
}

func (r *chapterRepository) UpdateLength(ctx context.Context, id string, length int) error {
	res := r.db.WithContext(ctx).Model(&models.ComicChapter{}).
		Where("id = ?", id).
		Update("length", length)
	if res.Error != nil {
		return fmt.Errorf("update chapter length: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
