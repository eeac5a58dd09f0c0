package service

import (
	"context"
	"errors"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"
)

var (
	ErrChapterNameRequired = errors.New("name is required")
	ErrInvalidViewType     = errors.New("view type must be image or text")
	ErrInvalidLength       = errors.New("length must not be negative")
)

// CreateChapterParams carries the fields accepted when posting a chapter.
type CreateChapterParams struct {
	Name     string
	ComicID  string
	PostedBy string
	ViewType models.ViewType
}

// ListChaptersParams selects a window of a comic's chapter list. Page is
// zero-based: the first window is page 0.
type ListChaptersParams struct {
	Limit     int
	Page      int
	SortField string
	SortDir   string
}

// sortable chapter columns, keyed by the API-facing field name
var chapterSortFields = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"length":    "length",
}

type ChapterService interface {
	Create(ctx context.Context, p CreateChapterParams) (*models.ComicChapter, error)
	List(ctx context.Context, comicID string, p ListChaptersParams) ([]models.ComicChapter, int64, error)
	GetByID(ctx context.Context, id string) (*models.ComicChapter, error)
	UpdateLength(ctx context.Context, id string, length int) error
}

type chapterService struct {
	repo   repository.ChapterRepository
	comics repository.ComicRepository
}

func NewChapterService(repo repository.ChapterRepository, comics repository.ComicRepository) ChapterService {
	return &chapterService{repo: repo, comics: comics}
}

func (s *chapterService) Create(ctx context.Context, p CreateChapterParams) (*models.ComicChapter, error) {
	if p.Name == "" {
		return nil, ErrChapterNameRequired
	}
	if err := checkUUID(p.ComicID); err != nil {
		return nil, err
	}
	if err := checkUUID(p.PostedBy); err != nil {
		return nil, err
	}
	if p.ViewType == "" {
		p.ViewType = models.ViewTypeImage
	}
	if !p.ViewType.Valid() {
		return nil, ErrInvalidViewType
	}

	exists, err := s.comics.Exists(ctx, p.ComicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrComicNotFound
	}

	chapter := &models.ComicChapter{
		Name:     p.Name,
		ComicID:  p.ComicID,
		PostedBy: p.PostedBy,
		ViewType: p.ViewType,
		Length:   0, // populated later, once content blocks are written
	}
	if err := s.repo.Create(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *chapterService) List(ctx context.Context, comicID string, p ListChaptersParams) ([]models.ComicChapter, int64, error) {
	if err := checkUUID(comicID); err != nil {
		return nil, 0, err
	}

	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Page < 0 {
		p.Page = 0
	}

	column, ok := chapterSortFields[p.SortField]
	if !ok {
		column = "created_at"
	}
	dir := "asc"
	if p.SortDir == "desc" {
		dir = "desc"
	}

	return s.repo.ListByComic(ctx, comicID, p.Limit, p.Page, column, dir)
}

func (s *chapterService) GetByID(ctx context.Context, id string) (*models.ComicChapter, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateLength records the total number of content blocks once a chapter has
// been populated.
func (s *chapterService) UpdateLength(ctx context.Context, id string, length int) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	if length < 0 {
		return ErrInvalidLength
	}
	return s.repo.UpdateLength(ctx, id, length)
}
