// Package contact simulates the contact form: submissions are accepted,
// held pending for a short delay and then reported as sent. No message
// leaves the process.
package contact

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sipkagroup/server/internal/models"
	"sipkagroup/server/internal/queue"
)

var ErrNotFound = errors.New("submission not found")

// Store keeps submissions in memory for status polling
type Store struct {
	mu          sync.RWMutex
	submissions map[string]*models.Submission
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		submissions: make(map[string]*models.Submission),
		now:         time.Now,
	}
}

func (s *Store) Add(sub *models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = sub
}

// Get returns a copy of the submission
func (s *Store) Get(id string) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return models.Submission{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *sub, nil
}

func (s *Store) MarkSuccess(id string) error {
	return s.complete(id, models.SubmissionSuccess, "")
}

func (s *Store) MarkError(id string, reason string) error {
	return s.complete(id, models.SubmissionError, reason)
}

func (s *Store) complete(id string, state models.SubmissionState, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	now := s.now()
	sub.State = state
	sub.Error = reason
	sub.CompletedAt = &now
	return nil
}

// Prune removes submissions that finished before the cutoff. Pending
// submissions are always kept.
func (s *Store) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sub := range s.submissions {
		if sub.CompletedAt != nil && sub.CompletedAt.Before(before) {
			delete(s.submissions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored submissions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions)
}

// Service accepts contact form submissions
type Service struct {
	store  *Store
	queue  *queue.SubmissionQueue
	logger *logrus.Logger
}

func NewService(store *Store, q *queue.SubmissionQueue, logger *logrus.Logger) *Service {
	return &Service{store: store, queue: q, logger: logger}
}

// Submit records a pending submission and queues it for completion. If the
// queue cannot take it the submission is stored as failed and the queue error
// is returned alongside it.
func (s *Service) Submit(form models.ContactForm) (models.Submission, error) {
	sub := &models.Submission{
		ID:        uuid.New().String(),
		State:     models.SubmissionPending,
		Form:      form,
		CreatedAt: s.store.now(),
	}
	s.store.Add(sub)

	if err := s.queue.Push(sub); err != nil {
		s.logger.WithError(err).WithField("submission_id", sub.ID).Warn("Failed to queue contact submission")
		if markErr := s.store.MarkError(sub.ID, err.Error()); markErr != nil {
			s.logger.WithError(markErr).Error("Failed to mark contact submission as failed")
		}
		failed, _ := s.store.Get(sub.ID)
		return failed, fmt.Errorf("failed to queue submission: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"submission_id":     sub.ID,
		"property_interest": form.PropertyInterest,
	}).Info("Accepted contact submission")
	return s.store.Get(sub.ID)
}

// Status returns the current state of a submission
func (s *Service) Status(id string) (models.Submission, error) {
	return s.store.Get(id)
}
