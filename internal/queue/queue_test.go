package queue

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"sipkagroup/server/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewSubmissionQueue(t *testing.T) {
	q := NewSubmissionQueue(10, quietLogger())
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestSubmissionQueue_Push(t *testing.T) {
	q := NewSubmissionQueue(2, quietLogger())

	// Test successful push
	err := q.Push(&models.Submission{ID: "a"})
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	_ = q.Push(&models.Submission{ID: "b"})
	err = q.Push(&models.Submission{ID: "c"})
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(&models.Submission{ID: "d"})
	assert.Equal(t, ErrQueueClosed, err)
}

func TestSubmissionQueue_Subscribe(t *testing.T) {
	q := NewSubmissionQueue(10, quietLogger())

	var processed []string
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(2)

	q.Subscribe(func(s *models.Submission) error {
		mu.Lock()
		processed = append(processed, s.ID)
		mu.Unlock()
		wg.Done()
		return nil
	})

	q.Start(1)
	defer q.Close()

	assert.NoError(t, q.Push(&models.Submission{ID: "first"}))
	assert.NoError(t, q.Push(&models.Submission{ID: "second"}))

	wg.Wait()

	mu.Lock()
	assert.Equal(t, []string{"first", "second"}, processed)
	mu.Unlock()
}

func TestSubmissionQueue_Close(t *testing.T) {
	q := NewSubmissionQueue(10, quietLogger())
	q.Start(3)

	// Test first close
	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	// Test second close (should be no-op)
	err = q.Close()
	assert.NoError(t, err)
}

func TestSubmissionQueue_AllHandlersRun(t *testing.T) {
	q := NewSubmissionQueue(10, quietLogger())

	var wg sync.WaitGroup
	calls := 0
	var mu sync.Mutex

	// A failing handler does not stop the others
	for i := 0; i < 3; i++ {
		wg.Add(1)
		fail := i == 0
		q.Subscribe(func(s *models.Submission) error {
			defer wg.Done()
			mu.Lock()
			calls++
			mu.Unlock()
			if fail {
				return errors.New("boom")
			}
			return nil
		})
	}

	q.Start(2)
	defer q.Close()

	assert.NoError(t, q.Push(&models.Submission{ID: "x"}))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	assert.Equal(t, 3, calls)
	mu.Unlock()
}
