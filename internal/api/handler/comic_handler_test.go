package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"comichub/internal/api/handler"
	"comichub/internal/api/models"
	"comichub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockComicService struct {
	mock.Mock
}

func (m *MockComicService) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Comic), args.Get(1).(int64), args.Error(2)
}

func (m *MockComicService) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) FindBySlugOrID(ctx context.Context, key string) (*models.Comic, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockComicService) Create(ctx context.Context, p service.CreateComicParams) (*models.Comic, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Update(ctx context.Context, id string, p service.UpdateComicParams) (*models.Comic, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComicService) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComicService) IncrementLikes(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- SETUP ---

const testOrigin = "http://api.test"

func setupComicRouter(svc *MockComicService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewComicHandler(svc, testOrigin)

	rg := r.Group("/v1/comics")
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:comic_id", h.Get)
	rg.GET("/:comic_id/exists", h.Exists)
	rg.POST("/:comic_id/views", h.IncrementViews)
	rg.POST("/:comic_id/likes", h.IncrementLikes)

	authed := rg.Group("", fakeAuth(userID))
	authed.POST("", h.Create)
	authed.PUT("/:comic_id", h.Update)
	authed.DELETE("/:comic_id", h.Delete)
	return r
}

// --- TESTS ---

func TestComicCreateEchoesTags(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "u1")

	created := &models.Comic{
		ID:       "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba",
		Name:     "One Punch",
		Slug:     "one-punch",
		PostedBy: "u1",
		Tags: []models.ComicTag{
			{ID: 1, Name: "Action", Slug: "action"},
			{ID: 2, Name: "Comedy", Slug: "comedy"},
		},
	}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(p service.CreateComicParams) bool {
		return p.Name == "One Punch" && p.PostedBy == "u1" && len(p.TagIDs) == 2
	})).Return(created, nil)

	w := doJSON(r, http.MethodPost, "/v1/comics", gin.H{
		"name":    "One Punch",
		"tag_ids": []int64{1, 2},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Slug string `json:"slug"`
		Tags []struct {
			ID int64 `json:"id"`
		} `json:"tags"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "one-punch", body.Slug)
	assert.Len(t, body.Tags, 2)
	assert.Equal(t, int64(1), body.Tags[0].ID)
	assert.Equal(t, int64(2), body.Tags[1].ID)
}

func TestComicCreateUnknownTag(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "u1")

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrUnknownTag)

	w := doJSON(r, http.MethodPost, "/v1/comics", gin.H{
		"name":    "One Punch",
		"tag_ids": []int64{999},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComicGetRejectsNonUUID(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	svc.On("GetByID", mock.Anything, "not-a-uuid").Return(nil, service.ErrInvalidID)

	w := doJSON(r, http.MethodGet, "/v1/comics/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a uuid")
}

func TestComicGetIncludesThumbnailURL(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	id := "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba"
	thumbID := "11111111-2222-3333-4444-555555555555"
	svc.On("GetByID", mock.Anything, id).Return(&models.Comic{
		ID:          id,
		Name:        "One Punch",
		ThumbnailID: &thumbID,
		Thumbnail: &models.Resource{
			ID:       thumbID,
			Filename: thumbID + ".png",
		},
	}, nil)

	w := doJSON(r, http.MethodGet, "/v1/comics/"+id, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testOrigin+"/uploads/"+thumbID+".png")
}

func TestComicSearchRequiresKey(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	w := doJSON(r, http.MethodGet, "/v1/comics/search", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "FindBySlugOrID", mock.Anything, mock.Anything)
}

func TestComicSearchBySlug(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	svc.On("FindBySlugOrID", mock.Anything, "one-punch").
		Return(&models.Comic{ID: "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba", Slug: "one-punch"}, nil)

	w := doJSON(r, http.MethodGet, "/v1/comics/search?key=one-punch", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "one-punch")
}

func TestComicIncrementViews(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	id := "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba"
	svc.On("IncrementViews", mock.Anything, id).Return(nil)

	w := doJSON(r, http.MethodPost, "/v1/comics/"+id+"/views", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertCalled(t, "IncrementViews", mock.Anything, id)
}

func TestComicListPagination(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "")

	svc.On("GetAll", mock.Anything, 2, 5).Return([]models.Comic{}, int64(12), nil)

	w := doJSON(r, http.MethodGet, "/v1/comics?page=2&page_size=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pagination struct {
			Page       int   `json:"page"`
			TotalPages int64 `json:"total_pages"`
		} `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, int64(3), body.Pagination.TotalPages)
}

func TestComicDelete(t *testing.T) {
	svc := new(MockComicService)
	r := setupComicRouter(svc, "u1")

	id := "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba"
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := doJSON(r, http.MethodDelete, "/v1/comics/"+id, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
