package dto

import (
	"time"

	"comichub/internal/api/models"
)

type ResourceResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromResource templates the configured public origin in front of the stored
// filenames so clients get usable asset URLs.
func FromResource(r models.Resource, origin string) ResourceResponse {
	resp := ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		Filename:  r.Filename,
		MimeType:  r.MimeType,
		Size:      r.Size,
		Width:     r.Width,
		Height:    r.Height,
		URL:       origin + "/uploads/" + r.Filename,
		CreatedAt: r.CreatedAt,
	}
	if r.ThumbnailPath != "" {
		resp.ThumbnailURL = origin + "/uploads/" + r.ID + "_thumb.jpg"
	}
	return resp
}
