package handler

import "github.com/reflectify/reflectify-api/internal/core/domain"

// errorResponse is the error envelope returned on all 4xx/5xx responses.
// Both keys carry the same text.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Analysis ---

type promptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type emotionResponse struct {
	Mood        *string       `json:"mood"`
	Score       *domain.Score `json:"score"`
	Analysis    *string       `json:"analysis"`
	MoodChanger *string       `json:"moodchanger"`
	Message     string        `json:"message"`
}

type historyResponse struct {
	Items []*domain.EmotionRecord `json:"items"`
	Count int                     `json:"count"`
}
