package service

import (
	"context"
	"sync"
	"time"

	"github.com/passnode/passnode/internal/logger"
)

type refreshJob struct {
	vaults map[string]VaultService
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a refreshJob that calls Refresh on every vault kind
// on a ticker. The job is idle until Start is called.
func NewRefreshJob(vaults map[string]VaultService, log *logger.Logger) RefreshJob {
	return &refreshJob{vaults: vaults, logger: log}
}

// Start implements [RefreshJob]. It stops any previously running job, then
// launches a background goroutine that refreshes every kind each interval.
// If interval is zero or negative it defaults to 5 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
//
// A refresh that races a local mutation is harmless: the engine discards
// stale pull results by mutation sequence number.
func (j *refreshJob) Start(ctx context.Context, sess *Session, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				for name, v := range j.vaults {
					if err := v.Refresh(jobCtx, sess); err != nil {
						j.logger.Warn().Err(err).
							Str("kind", name).
							Msg("background refresh failed")
					}
				}
			}
		}
	}()
}

// Stop implements [RefreshJob]. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
