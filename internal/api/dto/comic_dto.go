package dto

import (
	"time"

	"comichub/internal/api/models"
)

// CreateComicRequest used for POST /v1/comics
type CreateComicRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	ThumbnailID *string `json:"thumbnail_id,omitempty"`
	TagIDs      []int64 `json:"tag_ids"`
}

// UpdateComicRequest used for PUT /v1/comics/:comic_id (partial updates allowed)
type UpdateComicRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	Category    *string `json:"category,omitempty"`
	ThumbnailID *string `json:"thumbnail_id,omitempty"`
	TagIDs      []int64 `json:"tag_ids,omitempty"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ComicResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Author      string            `json:"author,omitempty"`
	Category    string            `json:"category,omitempty"`
	PostedBy    string            `json:"posted_by"`
	Thumbnail   *ResourceResponse `json:"thumbnail,omitempty"`
	Likes       int64             `json:"likes"`
	Views       int64             `json:"views"`
	Tags        []TagResponse     `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func FromTag(t models.ComicTag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func FromComic(c models.Comic, origin string) ComicResponse {
	resp := ComicResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Author:      c.Author,
		Category:    c.Category,
		PostedBy:    c.PostedBy,
		Likes:       c.Likes,
		Views:       c.Views,
		Tags:        make([]TagResponse, 0, len(c.Tags)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Thumbnail != nil {
		thumb := FromResource(*c.Thumbnail, origin)
		resp.Thumbnail = &thumb
	}
	for _, t := range c.Tags {
		resp.Tags = append(resp.Tags, FromTag(t))
	}
	return resp
}
