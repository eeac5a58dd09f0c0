package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"comichub/internal/api/dto"
	"comichub/internal/api/middleware"
	"comichub/internal/api/models"
	"comichub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService, perms service.PermissionService) {
	rg.GET("", h.List)
	rg.POST("",
		middleware.AuthMiddleware(authSvc),
		middleware.RequirePermission(perms, models.PermCreateTag),
		h.Create)
}

func (h *TagHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.FromTag(t))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag, err := h.svc.Create(ctx, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagExists), errors.Is(err, service.ErrTagNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromTag(*tag))
}
