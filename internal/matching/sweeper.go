package matching

import (
	"context"
	"sync"
	"time"

	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/logger"
)

// Sweeper periodically completes expired matchings and purges stale
// queue entries. Failures are logged and retried on the next tick;
// the sweep never aborts partial progress.
type Sweeper struct {
	db       *database.Database
	interval time.Duration
	queueTTL time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewSweeper(db *database.Database, interval, queueTTL time.Duration) *Sweeper {
	return &Sweeper{
		db:       db,
		interval: interval,
		queueTTL: queueTTL,
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	logger.Info("starting matching sweeper", "interval", s.interval, "queue_ttl", s.queueTTL)

	s.wg.Add(1)
	go s.loop()
}

func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	logger.Info("matching sweeper stopped")
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run once at startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

// Sweep runs one pass. Idempotent: a second call right after the first
// finds nothing left to move.
func (s *Sweeper) Sweep(ctx context.Context) {
	completed, err := s.db.CompleteExpiredMatchings(ctx)
	if err != nil {
		logger.Error("failed to complete expired matchings", "err", err)
	} else if completed > 0 {
		logger.Info("expired matchings completed", "count", completed)
	}

	purged, err := s.db.PurgeStaleQueueEntries(ctx, s.queueTTL)
	if err != nil {
		logger.Error("failed to purge stale queue entries", "err", err)
	} else if purged > 0 {
		logger.Info("stale queue entries purged", "count", purged)
	}
}
