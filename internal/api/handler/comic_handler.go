package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"comichub/internal/api/dto"
	"comichub/internal/api/middleware"
	"comichub/internal/api/models"
	"comichub/internal/api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ComicHandler struct {
	svc    service.ComicService
	origin string
}

func NewComicHandler(svc service.ComicService, origin string) *ComicHandler {
	return &ComicHandler{svc: svc, origin: origin}
}

func (h *ComicHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService, perms service.PermissionService) {
	// Public routes
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:comic_id", h.Get)
	rg.GET("/:comic_id/exists", h.Exists)
	rg.POST("/:comic_id/views", h.IncrementViews)
	rg.POST("/:comic_id/likes", h.IncrementLikes)

	// Mutating routes, gated per permission flag
	authed := rg.Group("", middleware.AuthMiddleware(authSvc))
	authed.POST("", middleware.RequirePermission(perms, models.PermCreateComic), h.Create)
	authed.PUT("/:comic_id", middleware.RequirePermission(perms, models.PermUpdateComic), h.Update)
	authed.DELETE("/:comic_id", middleware.RequirePermission(perms, models.PermDeleteComic), h.Delete)
}

func (h *ComicHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	list, total, err := h.svc.GetAll(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ComicResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, dto.FromComic(m, h.origin))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

func (h *ComicHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comic, err := h.svc.GetByID(ctx, c.Param("comic_id"))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComic(*comic, h.origin))
}

// Search resolves ?key= as either a comic id or a slug.
func (h *ComicHandler) Search(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comic, err := h.svc.FindBySlugOrID(ctx, key)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComic(*comic, h.origin))
}

func (h *ComicHandler) Exists(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.svc.Exists(ctx, c.Param("comic_id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (h *ComicHandler) Create(c *gin.Context) {
	var req dto.CreateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comic, err := h.svc.Create(ctx, service.CreateComicParams{
		Name:        req.Name,
		Description: req.Description,
		Author:      req.Author,
		Category:    req.Category,
		PostedBy:    c.GetString(middleware.ContextUserID),
		ThumbnailID: req.ThumbnailID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		h.renderMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromComic(*comic, h.origin))
}

func (h *ComicHandler) Update(c *gin.Context) {
	var req dto.UpdateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comic, err := h.svc.Update(ctx, c.Param("comic_id"), service.UpdateComicParams{
		Name:        req.Name,
		Description: req.Description,
		Author:      req.Author,
		Category:    req.Category,
		ThumbnailID: req.ThumbnailID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		h.renderMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromComic(*comic, h.origin))
}

func (h *ComicHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("comic_id")); err != nil {
		h.renderMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComicHandler) IncrementViews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.IncrementViews(ctx, c.Param("comic_id")); err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComicHandler) IncrementLikes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.IncrementLikes(ctx, c.Param("comic_id")); err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComicHandler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comic not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *ComicHandler) renderMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrComicNameRequired),
		errors.Is(err, service.ErrUnknownTag):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comic not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
