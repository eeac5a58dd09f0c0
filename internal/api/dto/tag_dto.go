package dto

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}
