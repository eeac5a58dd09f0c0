package service

import (
	"context"
	"errors"
	"fmt"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"
	"comichub/internal/cache"

	"github.com/google/uuid"
)

var (
	ErrComicNameRequired = errors.New("name is required")
	ErrUnknownTag        = errors.New("unknown tag id")
	ErrComicNotFound     = errors.New("comic not found")
)

// CreateComicParams carries the fields accepted when posting a new comic.
type CreateComicParams struct {
	Name        string
	Description string
	Author      string
	Category    string
	PostedBy    string
	ThumbnailID *string
	TagIDs      []int64
}

// UpdateComicParams holds optional fields for partial updates. A nil TagIDs
// leaves associations untouched.
type UpdateComicParams struct {
	Name        *string
	Description *string
	Author      *string
	Category    *string
	ThumbnailID *string
	TagIDs      []int64
}

type ComicService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error)
	GetByID(ctx context.Context, id string) (*models.Comic, error)
	FindBySlugOrID(ctx context.Context, key string) (*models.Comic, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, p CreateComicParams) (*models.Comic, error)
	Update(ctx context.Context, id string, p UpdateComicParams) (*models.Comic, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}

type comicService struct {
	repo  repository.ComicRepository
	tags  repository.TagRepository
	cache *cache.ComicCache
}

func NewComicService(repo repository.ComicRepository, tags repository.TagRepository, comicCache *cache.ComicCache) ComicService {
	return &comicService{repo: repo, tags: tags, cache: comicCache}
}

func (s *comicService) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	return s.repo.GetAll(ctx, page, pageSize)
}

func (s *comicService) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	if c, ok := s.cache.Get(ctx, id); ok {
		return c, nil
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)
	return c, nil
}

// FindBySlugOrID resolves a lookup key that may be either a comic id or its
// slug. UUID-shaped keys go through the id path (and the cache).
func (s *comicService) FindBySlugOrID(ctx context.Context, key string) (*models.Comic, error) {
	if uuid.Validate(key) == nil {
		return s.GetByID(ctx, key)
	}
	return s.repo.GetBySlug(ctx, key)
}

func (s *comicService) Exists(ctx context.Context, id string) (bool, error) {
	if err := checkUUID(id); err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, id)
}

func (s *comicService) Create(ctx context.Context, p CreateComicParams) (*models.Comic, error) {
	if p.Name == "" {
		return nil, ErrComicNameRequired
	}
	if err := checkUUID(p.PostedBy); err != nil {
		return nil, err
	}
	if p.ThumbnailID != nil {
		if err := checkUUID(*p.ThumbnailID); err != nil {
			return nil, err
		}
	}
	if err := s.validateTagIDs(ctx, p.TagIDs); err != nil {
		return nil, err
	}

	comic := &models.Comic{
		Name:        p.Name,
		Slug:        Slugify(p.Name),
		Description: p.Description,
		Author:      p.Author,
		Category:    p.Category,
		PostedBy:    p.PostedBy,
		ThumbnailID: p.ThumbnailID,
	}

	if err := s.repo.CreateWithTags(ctx, comic, p.TagIDs); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, comic.ID)
}

func (s *comicService) Update(ctx context.Context, id string, p UpdateComicParams) (*models.Comic, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	// validate before touching the row so a bad tag list can't leave a
	// half-applied update behind
	if p.TagIDs != nil {
		if err := s.validateTagIDs(ctx, p.TagIDs); err != nil {
			return nil, err
		}
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil && *p.Name != "" {
		existing.Name = *p.Name
		existing.Slug = Slugify(*p.Name)
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.Author != nil {
		existing.Author = *p.Author
	}
	if p.Category != nil {
		existing.Category = *p.Category
	}
	if p.ThumbnailID != nil {
		if err := checkUUID(*p.ThumbnailID); err != nil {
			return nil, err
		}
		existing.ThumbnailID = p.ThumbnailID
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	// the row is dirty from here on, so drop the cached copy no matter how
	// the rest of the update goes
	defer s.cache.Invalidate(ctx, id)

	// Tag updates append new association rows; rows for tags no longer in
	// the list are left in place.
	if p.TagIDs != nil {
		if err := s.repo.AppendTags(ctx, id, p.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *comicService) Delete(ctx context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *comicService) IncrementViews(ctx context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *comicService) IncrementLikes(ctx context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *comicService) validateTagIDs(ctx context.Context, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	for _, id := range tagIDs {
		if id <= 0 {
			return fmt.Errorf("%w: %d", ErrUnknownTag, id)
		}
	}
	found, err := s.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(found))
	for _, t := range found {
		known[t.ID] = true
	}
	for _, id := range tagIDs {
		if !known[id] {
			return fmt.Errorf("%w: %d", ErrUnknownTag, id)
		}
	}
	return nil
}
