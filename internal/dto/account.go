package dto

import "github.com/BruksfildServices01/ink-agenda/internal/models"

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ImageResponse struct {
	ID    uint   `json:"image_id,omitempty"`
	Image string `json:"image"`
}
