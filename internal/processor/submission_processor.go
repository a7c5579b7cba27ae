package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"sipkagroup/server/internal/models"
	"sipkagroup/server/internal/queue"
)

// SubmissionStore is the part of the contact store the processor updates
type SubmissionStore interface {
	MarkSuccess(id string) error
	MarkError(id string, reason string) error
}

// SubmissionProcessor completes queued contact submissions after the
// simulated delay
type SubmissionProcessor struct {
	store   SubmissionStore
	logger  *logrus.Logger
	queue   *queue.SubmissionQueue
	delay   time.Duration
	workers int
	once    sync.Once
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewSubmissionProcessor creates a new processor instance
func NewSubmissionProcessor(store SubmissionStore, q *queue.SubmissionQueue, delay time.Duration, workers int, logger *logrus.Logger) *SubmissionProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &SubmissionProcessor{
		store:   store,
		queue:   q,
		delay:   delay,
		workers: workers,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start subscribes to the queue and starts its workers
func (p *SubmissionProcessor) Start() {
	p.once.Do(func() {
		p.queue.Subscribe(p.process)
		p.queue.Start(p.workers)
		p.logger.WithFields(logrus.Fields{
			"workers": p.workers,
			"delay":   p.delay.String(),
		}).Info("Contact submission processor started")
	})
}

// Stop cancels pending delays and shuts the queue down
func (p *SubmissionProcessor) Stop() {
	p.cancel()
	if err := p.queue.Close(); err != nil {
		p.logger.WithError(err).Error("Failed to close submission queue")
	}
}

// process waits out the simulated delay, then reports the submission as sent
func (p *SubmissionProcessor) process(s *models.Submission) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-p.ctx.Done():
		if err := p.store.MarkError(s.ID, "server shutting down"); err != nil {
			return fmt.Errorf("failed to mark submission %s as failed: %w", s.ID, err)
		}
		return p.ctx.Err()
	case <-timer.C:
	}

	if err := p.store.MarkSuccess(s.ID); err != nil {
		return fmt.Errorf("failed to complete submission %s: %w", s.ID, err)
	}
	p.logger.WithField("submission_id", s.ID).Info("Contact submission completed")
	return nil
}
