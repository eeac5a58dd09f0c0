package service

import (
	"context"
	"errors"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"
)

var (
	ErrTagNameRequired = errors.New("name is required")
	ErrTagExists       = errors.New("tag already exists")
)

type TagService interface {
	List(ctx context.Context) ([]models.ComicTag, error)
	Create(ctx context.Context, name string) (*models.ComicTag, error)
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context) ([]models.ComicTag, error) {
	return s.repo.GetAll(ctx)
}

func (s *tagService) Create(ctx context.Context, name string) (*models.ComicTag, error) {
	if name == "" {
		return nil, ErrTagNameRequired
	}
	tag := &models.ComicTag{
		Name: name,
		Slug: Slugify(name),
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return tag, nil
}
