package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingExpirer struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int
}

func (r *recordingExpirer) ExpireIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, before)
	return r.n
}

func (r *recordingExpirer) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cutoffs)
}

func TestSessionCleanupJob(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	t.Run("NewCleanupJob_DefaultConfig", func(t *testing.T) {
		job := NewCleanupJob(&recordingExpirer{}, CleanupConfig{})

		assert.Equal(t, DefaultIdleTimeout, job.config.IdleTimeout)
		assert.Equal(t, DefaultCleanupInterval, job.config.CleanupInterval)
	})

	t.Run("NewCleanupJob_CustomConfig", func(t *testing.T) {
		job := NewCleanupJob(&recordingExpirer{}, CleanupConfig{IdleTimeout: time.Hour, CleanupInterval: time.Minute})

		assert.Equal(t, time.Hour, job.config.IdleTimeout)
		assert.Equal(t, time.Minute, job.config.CleanupInterval)
	})

	t.Run("RunOnce_UsesIdleCutoff", func(t *testing.T) {
		exp := &recordingExpirer{n: 3}
		job := NewCleanupJob(exp, CleanupConfig{IdleTimeout: time.Hour})
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		job.now = func() time.Time { return now }

		deleted, err := job.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, deleted)
		assert.Equal(t, []time.Time{now.Add(-time.Hour)}, exp.cutoffs)
	})

	t.Run("RunOnce_CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewCleanupJob(&recordingExpirer{}, CleanupConfig{}).RunOnce(canceled)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("StartStop_ManagesRunningState", func(t *testing.T) {
		exp := &recordingExpirer{}
		job := NewCleanupJob(exp, CleanupConfig{CleanupInterval: 5 * time.Millisecond})

		assert.False(t, job.IsRunning())
		require.NoError(t, job.Start(ctx))
		assert.True(t, job.IsRunning())

		// Start again is a no-op.
		require.NoError(t, job.Start(ctx))

		assert.Eventually(t, func() bool { return exp.calls() > 0 }, time.Second, 5*time.Millisecond)

		job.Stop()
		assert.False(t, job.IsRunning())
		job.Stop()
	})

	t.Run("ContextCancelStopsLoop", func(t *testing.T) {
		runCtx, cancel := context.WithCancel(ctx)
		job := NewCleanupJob(&recordingExpirer{}, CleanupConfig{CleanupInterval: time.Hour})
		require.NoError(t, job.Start(runCtx))

		cancel()
		assert.Eventually(t, func() bool { return !job.IsRunning() }, time.Second, 5*time.Millisecond)
		job.Stop()
	})

	t.Run("ExpiresManagerSessions", func(t *testing.T) {
		m := NewManager(nil, stubProvider)
		s, err := m.Create("events")
		require.NoError(t, err)

		job := NewCleanupJob(m, CleanupConfig{IdleTimeout: time.Minute})
		job.now = func() time.Time { return s.LastActive().Add(2 * time.Minute) }

		deleted, err := job.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		assert.Zero(t, m.Len())
	})
}
