package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"comichub/internal/api/dto"
	"comichub/internal/api/middleware"
	"comichub/internal/api/models"
	"comichub/internal/api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResourceHandler struct {
	svc     service.ResourceService
	origin  string
	maxSize int64
}

func NewResourceHandler(svc service.ResourceService, origin string, maxSize int64) *ResourceHandler {
	return &ResourceHandler{svc: svc, origin: origin, maxSize: maxSize}
}

func (h *ResourceHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService, perms service.PermissionService) {
	rg.GET("/:resource_id", h.Get)

	authed := rg.Group("", middleware.AuthMiddleware(authSvc))
	authed.POST("",
		middleware.RequirePermission(perms, models.PermCreateResource),
		h.Upload)
	authed.GET("", h.ListMine)
	authed.DELETE("/:resource_id", h.Delete)
}

// Upload accepts one multipart image file under the "file" field and answers
// with the stored resource id, generated filename and public URL.
func (h *ResourceHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fileHeader.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": service.ErrFileTooLarge.Error()})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	res, err := h.svc.Upload(ctx, service.UploadParams{
		UploaderID: c.GetString(middleware.ContextUserID),
		Filename:   fileHeader.Filename,
		Data:       data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotAnImage), errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromResource(*res, h.origin))
}

func (h *ResourceHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := h.svc.GetByID(ctx, c.Param("resource_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromResource(*res, h.origin))
}

func (h *ResourceHandler) ListMine(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListByUploader(ctx, c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ResourceResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, dto.FromResource(r, h.origin))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.Delete(ctx, c.GetString(middleware.ContextUserID), c.Param("resource_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
