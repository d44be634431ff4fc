// Package memstore provides an in-memory subscriber store for tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/gtmountains/newsletter/internal/model"
	"github.com/gtmountains/newsletter/internal/repository"
)

// Store mimics the subscribers table: serial ids, unique emails, insertion order.
type Store struct {
	mu     sync.Mutex
	rows   []model.Subscriber
	nextID int64

	// CreateErr, when set, is returned by CreateSubscriber without inserting.
	CreateErr error
	// ListErr, when set, is returned by ListSubscribers.
	ListErr error
	// Creates counts CreateSubscriber calls that reached the store.
	Creates int
}

// New returns an empty Store.
func New() *Store {
	return &Store{nextID: 1}
}

// CreateSubscriber inserts sub or rejects it with repository.ErrEmailExists.
func (s *Store) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Creates++

	if s.CreateErr != nil {
		return s.CreateErr
	}

	for _, row := range s.rows {
		if row.Email == sub.Email {
			return repository.ErrEmailExists
		}
	}

	sub.ID = s.nextID
	sub.CreatedAt = time.Now().UTC()
	s.nextID++
	s.rows = append(s.rows, *sub)

	return nil
}

// ListSubscribers returns copies of the stored rows in insertion order.
func (s *Store) ListSubscribers(ctx context.Context, skip, limit int) ([]*model.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}

	out := make([]*model.Subscriber, 0)
	if skip >= len(s.rows) {
		return out, nil
	}

	end := len(s.rows)
	if limit < end-skip {
		end = skip + limit
	}

	for i := skip; i < end; i++ {
		row := s.rows[i]
		out = append(out, &row)
	}

	return out, nil
}

// Len returns the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
