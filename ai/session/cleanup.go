package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultIdleTimeout is how long a session may stay unused.
	DefaultIdleTimeout = 24 * time.Hour
	// DefaultCleanupInterval is how often idle sessions are looked for.
	DefaultCleanupInterval = 10 * time.Minute
)

// Expirer closes sessions idle since a point in time.
type Expirer interface {
	ExpireIdle(before time.Time) int
}

// CleanupConfig configures the cleanup job.
type CleanupConfig struct {
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
}

// CleanupJob periodically closes idle sessions.
type CleanupJob struct {
	expirer Expirer
	config  CleanupConfig
	now     func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewCleanupJob creates a job; zero config fields take the defaults.
func NewCleanupJob(e Expirer, cfg CleanupConfig) *CleanupJob {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	return &CleanupJob{expirer: e, config: cfg, now: time.Now}
}

// RunOnce closes the sessions idle for longer than the timeout.
func (j *CleanupJob) RunOnce(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := j.expirer.ExpireIdle(j.now().Add(-j.config.IdleTimeout))
	if n > 0 {
		slog.Info("session cleanup: expired idle sessions", "count", n)
	}
	return n, nil
}

// Start runs the job in the background until Stop or ctx is done.
// Calling Start on a running job does nothing.
func (j *CleanupJob) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return nil
	}
	j.running = true
	j.stop = make(chan struct{})
	j.done = make(chan struct{})

	go j.loop(ctx, j.stop, j.done)
	return nil
}

func (j *CleanupJob) loop(ctx context.Context, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(j.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.mu.Lock()
			j.running = false
			j.mu.Unlock()
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := j.RunOnce(ctx); err != nil {
				slog.Warn("session cleanup: run failed", "error", err)
			}
		}
	}
}

// Stop halts the job and waits for it to exit.
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	if !j.running {
		done := j.done
		j.mu.Unlock()
		if done != nil {
			<-done
		}
		return
	}
	j.running = false
	close(j.stop)
	done := j.done
	j.mu.Unlock()
	<-done
}

// IsRunning reports whether the job loop is active.
func (j *CleanupJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}
