// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/gtmountains/newsletter/internal/metrics"
	"github.com/gtmountains/newsletter/internal/model"
	"github.com/gtmountains/newsletter/internal/repository"
)

// Service errors.
var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrInvalidPagination = errors.New("skip and limit must be non-negative")
)

// Listing defaults.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// SubscriberStore is the data-access contract the service needs.
// *repository.Repository satisfies it.
type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, sub *model.Subscriber) error
	ListSubscribers(ctx context.Context, skip, limit int) ([]*model.Subscriber, error)
}

// SubscriberService handles newsletter subscription logic.
type SubscriberService struct {
	store   SubscriberStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewSubscriberService creates a new SubscriberService.
func NewSubscriberService(store SubscriberStore, logger *slog.Logger, recorder metrics.Recorder) *SubscriberService {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SubscriberService{
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

type subscribeInput struct {
	Email string `valid:"required,email,length(3|254)"`
}

// ValidateEmail normalizes email and checks its syntax.
func ValidateEmail(email string) (string, error) {
	input := subscribeInput{Email: model.NormalizeEmail(email)}
	if _, err := govalidator.ValidateStruct(input); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, govalidator.ErrorByField(err, "Email"))
	}
	return input.Email, nil
}

// Subscribe registers email for the newsletter.
//
// Invalid syntax is rejected before the store is touched. Any rejected write,
// whatever its cause, surfaces as ErrAlreadySubscribed.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	normalized, err := ValidateEmail(email)
	if err != nil {
		s.metrics.IncSubscribeRejected(metrics.ReasonInvalidEmail)
		return nil, err
	}

	sub := &model.Subscriber{Email: normalized}
	if err := s.store.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			s.logger.WarnContext(ctx, "subscribe_rejected",
				slog.Bool("unique_violation", repository.IsUniqueViolation(err)),
				slog.String("error", err.Error()),
			)
			s.metrics.IncSubscribeRejected(metrics.ReasonAlreadySubscribed)
			return nil, ErrAlreadySubscribed
		}

		s.metrics.IncStoreError()
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	s.metrics.IncSubscribed()

	return sub, nil
}

// ListSubscribersInput defines offset pagination for listing subscribers.
type ListSubscribersInput struct {
	Skip  int
	Limit int
}

// ListSubscribers returns up to input.Limit subscribers after the first input.Skip.
func (s *SubscriberService) ListSubscribers(ctx context.Context, input ListSubscribersInput) ([]*model.Subscriber, error) {
	if input.Skip < 0 || input.Limit < 0 {
		return nil, ErrInvalidPagination
	}

	start := time.Now()
	subscribers, err := s.store.ListSubscribers(ctx, input.Skip, input.Limit)
	s.metrics.ObserveListDuration(time.Since(start))
	if err != nil {
		s.metrics.IncStoreError()
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	if subscribers == nil {
		subscribers = []*model.Subscriber{}
	}

	return subscribers, nil
}
