package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"comichub/internal/api/dto"
	"comichub/internal/api/middleware"
	"comichub/internal/api/models"
	"comichub/internal/api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChapterHandler struct {
	svc service.ChapterService
}

func NewChapterHandler(svc service.ChapterService) *ChapterHandler {
	return &ChapterHandler{svc: svc}
}

// RegisterRoutes wires the nested comic-chapter routes plus the flat
// single-chapter routes.
func (h *ChapterHandler) RegisterRoutes(comics, chapters *gin.RouterGroup, authSvc service.AuthService, perms service.PermissionService) {
	nested := comics.Group("/:comic_id/chapters")
	nested.GET("", h.List)
	nested.POST("",
		middleware.AuthMiddleware(authSvc),
		middleware.RequirePermission(perms, models.PermCreateChapter),
		h.Create)

	chapters.GET("/:chapter_id", h.Get)
	chapters.PUT("/:chapter_id/length",
		middleware.AuthMiddleware(authSvc),
		middleware.RequirePermission(perms, models.PermUpdateChapter),
		h.UpdateLength)
}

func (h *ChapterHandler) Create(c *gin.Context) {
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	chapter, err := h.svc.Create(ctx, service.CreateChapterParams{
		Name:     req.Name,
		ComicID:  c.Param("comic_id"),
		PostedBy: c.GetString(middleware.ContextUserID),
		ViewType: models.ViewType(req.ViewType),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID),
			errors.Is(err, service.ErrChapterNameRequired),
			errors.Is(err, service.ErrInvalidViewType),
			errors.Is(err, service.ErrComicNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromChapter(*chapter))
}

func (h *ChapterHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	params := service.ListChaptersParams{
		SortField: c.DefaultQuery("sort", "createdAt"),
		SortDir:   c.DefaultQuery("direction", "asc"),
	}
	// pages are zero-based: page=0 is the first window
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			params.Limit = parsed
		}
	}
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			params.Page = parsed
		}
	}

	list, total, err := h.svc.List(ctx, c.Param("comic_id"), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ChapterResponse, 0, len(list))
	for _, ch := range list {
		resp = append(resp, dto.FromChapter(ch))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

func (h *ChapterHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	chapter, err := h.svc.GetByID(ctx, c.Param("chapter_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromChapter(*chapter))
}

// UpdateLength records the chapter's block count once its content is in.
func (h *ChapterHandler) UpdateLength(c *gin.Context) {
	var req dto.UpdateChapterLengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.UpdateLength(ctx, c.Param("chapter_id"), *req.Length); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrInvalidLength):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
