package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"comichub/internal/api/models"
	"comichub/internal/api/repository"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrNotAnImage   = errors.New("file is not a supported image")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	ErrNotOwner     = errors.New("resource does not belong to this user")
)

// thumbnails fit inside this bounding box, aspect ratio preserved
const thumbnailBound = 480

// UploadParams carries one uploaded file.
type UploadParams struct {
	UploaderID string
	Filename   string // original client filename, kept only as metadata
	Data       []byte
}

type ResourceService interface {
	Upload(ctx context.Context, p UploadParams) (*models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	ListByUploader(ctx context.Context, userID string) ([]models.Resource, error)
	Delete(ctx context.Context, userID, id string) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	perms     PermissionService
	uploadDir string
	maxSize   int64
}

func NewResourceService(repo repository.ResourceRepository, perms PermissionService, uploadDir string, maxSize int64) ResourceService {
	return &resourceService{repo: repo, perms: perms, uploadDir: uploadDir, maxSize: maxSize}
}

// Upload validates and stores one image: the original under a generated
// uuid filename, a bounded thumbnail next to it, and a metadata row in the
// database.
func (s *resourceService) Upload(ctx context.Context, p UploadParams) (*models.Resource, error) {
	if err := checkUUID(p.UploaderID); err != nil {
		return nil, err
	}
	if int64(len(p.Data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("%s.%s", id, extensionFor(format))
	thumbName := id + "_thumb.jpg"

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	thumbPath := filepath.Join(s.uploadDir, thumbName)
	thumb := imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write thumbnail: %w", err)
	}

	bounds := img.Bounds()
	res := &models.Resource{
		ID:            id,
		Name:          p.Filename,
		Filename:      filename,
		Path:          path,
		ThumbnailPath: thumbPath,
		MimeType:      "image/" + format,
		Size:          int64(len(p.Data)),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		UploadedBy:    p.UploaderID,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		os.Remove(path)
		os.Remove(thumbPath)
		return nil, err
	}

	return res, nil
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *resourceService) ListByUploader(ctx context.Context, userID string) ([]models.Resource, error) {
	if err := checkUUID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUploader(ctx, userID)
}

// Delete removes a resource along with its files on disk. Only the uploader
// or an admin-group user may remove it.
func (s *resourceService) Delete(ctx context.Context, userID, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.UploadedBy != userID {
		role, _, err := s.perms.PermissionsForUser(ctx, userID)
		if err != nil {
			return err
		}
		if role != models.GroupAdmin {
			return ErrNotOwner
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// file removal is best-effort once the row is gone
	os.Remove(res.Path)
	if res.ThumbnailPath != "" {
		os.Remove(res.ThumbnailPath)
	}
	return nil
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
