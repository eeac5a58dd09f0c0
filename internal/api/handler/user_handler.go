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
	"gorm.io/gorm"
)

type UserHandler struct {
	authSvc   service.AuthService
	userSvc   service.UserService
	accessTTL time.Duration
}

func NewUserHandler(authSvc service.AuthService, userSvc service.UserService, accessTTL time.Duration) *UserHandler {
	return &UserHandler{authSvc: authSvc, userSvc: userSvc, accessTTL: accessTTL}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, perms service.PermissionService) {
	rg.POST("/signup", h.Signup)
	rg.POST("/signin", h.Signin)
	rg.POST("/token/refresh", h.Refresh)
	rg.POST("/token/revoke", h.Revoke)
	rg.GET("/:id", h.GetUser)

	authed := rg.Group("", middleware.AuthMiddleware(h.authSvc))
	authed.POST("/profile", h.Profile)
	authed.PUT("/profile", middleware.RequirePermission(perms, models.PermUpdateProfile), h.UpdateProfile)
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authSvc.Register(ctx, service.RegisterParams{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Nickname:     req.Nickname,
		Introduction: req.Introduction,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists),
			errors.Is(err, service.ErrEmailInUse),
			errors.Is(err, service.ErrInvalidNickname),
			errors.Is(err, service.ErrInvalidIntroduction):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(*user))
}

func (h *UserHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	accessToken, refreshToken, user, err := h.authSvc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// the same response for unknown user and wrong password
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.accessTTL.Seconds()),
		User:         dto.FromUser(*user),
	})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	newAccessToken, newRefreshToken, err := h.authSvc.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Token:        newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTTL.Seconds()),
	})
}

func (h *UserHandler) Revoke(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// always report success so the endpoint can't be used to probe tokens
	_ = h.authSvc.RevokeToken(ctx, req.RefreshToken)
	c.JSON(http.StatusOK, dto.RevokeTokenResponse{Message: "refresh token revoked"})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(*user))
}

// Profile resolves the authenticated user and returns the public fields plus
// the computed role and permission list.
func (h *UserHandler) Profile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID := c.GetString(middleware.ContextUserID)
	user, role, permissions, err := h.userSvc.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		UserResponse: dto.FromUser(*user),
		Role:         role,
		Permissions:  permissions,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID := c.GetString(middleware.ContextUserID)
	err := h.userSvc.UpdateProfile(ctx, userID, service.UpdateProfileParams{
		Nickname:     req.Nickname,
		Introduction: req.Introduction,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProfileFields):
			c.Status(http.StatusNotModified)
		case errors.Is(err, service.ErrInvalidNickname),
			errors.Is(err, service.ErrInvalidIntroduction):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
