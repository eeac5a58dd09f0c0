package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"
	"comichub/internal/auth"
	"comichub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// Claims is the decoded identity carried by an access token.
type Claims struct {
	UserID   string
	IssuedAt time.Time
}

// RegisterParams carries the signup fields.
type RegisterParams struct {
	Username     string
	Password     string
	Email        string
	Nickname     string
	Introduction string
}

type AuthService interface {
	Register(ctx context.Context, p RegisterParams) (*models.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	permRepo         repository.PermissionRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	permRepo repository.PermissionRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		permRepo:         permRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Register creates a user in the default USER permission group. The returned
// user carries the stored hash only internally; responses strip it via the
// model's json tags.
func (s *authService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if p.Nickname == "" {
		p.Nickname = p.Username
	}
	if err := validateNickname(p.Nickname); err != nil {
		return nil, err
	}
	if err := validateIntroduction(p.Introduction); err != nil {
		return nil, err
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, p.Username); err == nil {
		return nil, ErrUserExists
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(ctx, p.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	group, err := s.permRepo.FindGroupByName(ctx, models.GroupUser)
	if err != nil {
		return nil, fmt.Errorf("resolve default permission group: %w", err)
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Username:          p.Username,
		Email:             p.Email,
		Password:          hashedPassword,
		Nickname:          p.Nickname,
		Introduction:      p.Introduction,
		PermissionGroupID: group.ID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique indexes are the last line of defense against a
		// racing signup
		return nil, signupConflict(err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens. Unknown
// usernames and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// dummy compare so misses take as long as hits
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

// RefreshAccessToken rotates both tokens: the presented refresh token is
// retired and a fresh pair is issued.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	if refreshToken.Revoked {
		return "", "", ErrInvalidToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(ctx, refreshToken.ID)
		return "", "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return "", "", err
	}

	if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
		return "", "", err
	}

	newAccessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	newRefreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

func (s *authService) RevokeToken(ctx context.Context, refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return ErrInvalidToken
	}
	return s.refreshTokenRepo.Revoke(ctx, refreshToken.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: userID}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}

	return claims, nil
}

// isUniqueViolation reports whether err is a postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// signupConflict maps a unique-index violation to the sentinel matching the
// column that collided. Anything else passes through unchanged.
func signupConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrEmailInUse
	}
	return ErrUserExists
}
