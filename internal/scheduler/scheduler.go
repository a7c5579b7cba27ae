package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pruner drops records completed before the cutoff and reports how many went
type Pruner interface {
	Prune(before time.Time) int
}

// Scheduler periodically sweeps finished contact submissions out of memory
type Scheduler struct {
	pruner    Pruner
	logger    *logrus.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	jobMutex  sync.Mutex
}

// NewScheduler creates a new scheduler
func NewScheduler(pruner Pruner, interval, retention time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		pruner:    pruner,
		logger:    logger,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the sweep loop. A non-positive interval disables it.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		s.logger.Info("Submission sweep disabled")
		return
	}
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce prunes submissions that finished more than the retention ago
func (s *Scheduler) RunOnce() int {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	cutoff := s.now().Add(-s.retention)
	removed := s.pruner.Prune(cutoff)
	entry := s.logger.WithFields(logrus.Fields{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	if removed > 0 {
		entry.Info("Pruned finished contact submissions")
	} else {
		entry.Debug("No contact submissions to prune")
	}
	return removed
}

// Stop ends the sweep loop and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}
