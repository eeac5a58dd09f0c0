package service

import (
	"context"
	"testing"

	"comichub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockComicRepository mocks the ComicRepository interface
type MockComicRepository struct {
	mock.Mock
}

func (m *MockComicRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Comic), args.Get(1).(int64), args.Error(2)
}

func (m *MockComicRepository) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicRepository) GetBySlug(ctx context.Context, slug string) (*models.Comic, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockComicRepository) CreateWithTags(ctx context.Context, c *models.Comic, tagIDs []int64) error {
	return m.Called(ctx, c, tagIDs).Error(0)
}

func (m *MockComicRepository) Update(ctx context.Context, c *models.Comic) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockComicRepository) AppendTags(ctx context.Context, comicID string, tagIDs []int64) error {
	return m.Called(ctx, comicID, tagIDs).Error(0)
}

func (m *MockComicRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockComicRepository) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockComicRepository) IncrementLikes(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTagRepository mocks the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll(ctx context.Context) ([]models.ComicTag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComicTag), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, t *models.ComicTag) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.ComicTag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComicTag), args.Error(1)
}

// A service wired with nil repositories: any test that reaches the database
// would panic, which proves malformed ids are rejected before any query.
func newUnbackedComicService() ComicService {
	return NewComicService(nil, nil, nil)
}

func TestComicOperationsRejectNonUUIDBeforeQuery(t *testing.T) {
	svc := newUnbackedComicService()
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Exists(ctx, "123")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Update(ctx, "nope", UpdateComicParams{})
	assert.ErrorIs(t, err, ErrInvalidID)

	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrInvalidID)
	assert.ErrorIs(t, svc.IncrementViews(ctx, "x"), ErrInvalidID)
	assert.ErrorIs(t, svc.IncrementLikes(ctx, "x"), ErrInvalidID)
}

func TestComicCreateValidation(t *testing.T) {
	svc := newUnbackedComicService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateComicParams{
		Name:     "",
		PostedBy: "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba",
	})
	assert.ErrorIs(t, err, ErrComicNameRequired)

	_, err = svc.Create(ctx, CreateComicParams{
		Name:     "One Punch",
		PostedBy: "not-a-uuid",
	})
	assert.ErrorIs(t, err, ErrInvalidID)

	badThumb := "also-not-a-uuid"
	_, err = svc.Create(ctx, CreateComicParams{
		Name:        "One Punch",
		PostedBy:    "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba",
		ThumbnailID: &badThumb,
	})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestComicCreateRejectsNonPositiveTagIDs(t *testing.T) {
	svc := newUnbackedComicService()

	_, err := svc.Create(context.Background(), CreateComicParams{
		Name:     "One Punch",
		PostedBy: "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba",
		TagIDs:   []int64{1, 0},
	})
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestComicUpdateChecksTagsBeforeWriting(t *testing.T) {
	repo := new(MockComicRepository)
	tags := new(MockTagRepository)
	svc := NewComicService(repo, tags, nil)

	// tag 99 does not exist
	tags.On("FindByIDs", mock.Anything, []int64{99}).Return([]models.ComicTag{}, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), validComicID, UpdateComicParams{
		Name:   &name,
		TagIDs: []int64{99},
	})

	assert.ErrorIs(t, err, ErrUnknownTag)
	// the row was never read, let alone written
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestComicUpdateAppendsTagsKeepingExisting(t *testing.T) {
	repo := new(MockComicRepository)
	tags := new(MockTagRepository)
	svc := NewComicService(repo, tags, nil)

	action := models.ComicTag{ID: 1, Name: "Action", Slug: "action"}
	comedy := models.ComicTag{ID: 2, Name: "Comedy", Slug: "comedy"}

	before := &models.Comic{ID: validComicID, Name: "One Punch", Tags: []models.ComicTag{action}}
	after := &models.Comic{ID: validComicID, Name: "One Punch", Tags: []models.ComicTag{action, comedy}}

	tags.On("FindByIDs", mock.Anything, []int64{2}).Return([]models.ComicTag{comedy}, nil)
	repo.On("GetByID", mock.Anything, validComicID).Return(before, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Comic")).Return(nil)
	repo.On("AppendTags", mock.Anything, validComicID, []int64{2}).Return(nil)
	repo.On("GetByID", mock.Anything, validComicID).Return(after, nil).Once()

	got, err := svc.Update(context.Background(), validComicID, UpdateComicParams{TagIDs: []int64{2}})

	assert.NoError(t, err)
	// the update appends association rows; the earlier tag is still attached
	assert.Len(t, got.Tags, 2)
	assert.Equal(t, int64(1), got.Tags[0].ID)
	assert.Equal(t, int64(2), got.Tags[1].ID)
	repo.AssertCalled(t, "AppendTags", mock.Anything, validComicID, []int64{2})
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
