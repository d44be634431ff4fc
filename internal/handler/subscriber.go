package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gtmountains/newsletter/internal/handler/dto"
	"github.com/gtmountains/newsletter/internal/middleware"
	"github.com/gtmountains/newsletter/internal/service"
)

// SubscribedMessage is returned after a successful subscription.
const SubscribedMessage = "Successfully subscribed to the newsletter!"

// SubscriberHandler handles HTTP requests for newsletter subscriptions.
type SubscriberHandler struct {
	svc    *service.SubscriberService
	logger *slog.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(svc *service.SubscriberService, logger *slog.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		svc:    svc,
		logger: logger,
	}
}

// Subscribe handles POST /api/subscribe.
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "subscriber_created",
		"subscriber_id", sub.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: SubscribedMessage})
}

// List handles GET /api/subscribers?skip=&limit=.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	skip, ok := intParam(query.Get("skip"), service.DefaultSkip)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "INVALID_PAGINATION", "skip must be an integer")
		return
	}

	limit, ok := intParam(query.Get("limit"), service.DefaultLimit)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be an integer")
		return
	}

	subs, err := h.svc.ListSubscribers(r.Context(), service.ListSubscribersInput{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToSubscriberListResponse(subs))
}

// handleServiceError maps service errors to HTTP responses.
func (h *SubscriberHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, r, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrAlreadySubscribed):
		writeError(w, r, http.StatusBadRequest, "ALREADY_SUBSCRIBED", "Email already subscribed")
	case errors.Is(err, service.ErrInvalidPagination):
		writeError(w, r, http.StatusBadRequest, "INVALID_PAGINATION", "skip and limit must be non-negative")
	default:
		h.logger.ErrorContext(r.Context(), "internal_error",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// intParam parses an optional integer query value.
func intParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
