package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"sipkagroup/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// SubmissionQueue is an in-memory queue of contact submissions waiting to be processed
type SubmissionQueue struct {
	items    chan *models.Submission
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
	logger   *logrus.Logger
	handlers []func(*models.Submission) error
}

// NewSubmissionQueue creates a new submission queue with the specified buffer size
func NewSubmissionQueue(bufferSize int, logger *logrus.Logger) *SubmissionQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &SubmissionQueue{
		items:    make(chan *models.Submission, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(*models.Submission) error, 0),
	}
}

// Push adds a submission to the queue
func (q *SubmissionQueue) Push(s *models.Submission) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	// Non-blocking send so a full queue is reported to the caller
	select {
	case q.items <- s:
		q.logger.WithField("submission_id", s.ID).Debug("Pushed submission to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each submission
func (q *SubmissionQueue) Subscribe(handler func(*models.Submission) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items with the given number of workers
func (q *SubmissionQueue) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.process()
	}
}

// process handles the queue processing loop
func (q *SubmissionQueue) process() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case s, ok := <-q.items:
			if !ok {
				return
			}
			q.dispatch(s)
		}
	}
}

// dispatch sends the submission to all subscribed handlers
func (q *SubmissionQueue) dispatch(s *models.Submission) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(s); err != nil {
			q.logger.WithError(err).WithField("submission_id", s.ID).Error("Handler failed to process submission")
		}
	}
}

// Close stops the queue, prevents new items from being added and waits for
// the workers to return
func (q *SubmissionQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.done)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

// Len returns the current number of submissions in the queue
func (q *SubmissionQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *SubmissionQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
