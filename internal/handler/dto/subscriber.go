// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gtmountains/newsletter/internal/model"
)

// SubscribeRequest represents the request body for POST /api/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// SubscriberResponse represents a subscriber in API responses.
type SubscriberResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RootResponse describes the service at GET /.
type RootResponse struct {
	Message       string `json:"message"`
	Documentation string `json:"documentation"`
	Status        string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// ToSubscriberResponse converts a Subscriber model to its response DTO.
func ToSubscriberResponse(sub *model.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:        sub.ID,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt,
	}
}

// ToSubscriberListResponse converts subscribers to a response slice.
// The result is never nil so it always encodes as a JSON array.
func ToSubscriberListResponse(subs []*model.Subscriber) []SubscriberResponse {
	responses := make([]SubscriberResponse, len(subs))
	for i, sub := range subs {
		responses[i] = ToSubscriberResponse(sub)
	}
	return responses
}
