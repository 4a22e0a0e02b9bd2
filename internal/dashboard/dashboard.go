// Package dashboard owns the current snapshot and keeps it fresh.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"execdash/internal/domain"
	"execdash/internal/insight"
)

const DefaultInterval = 5 * time.Minute

var (
	// ErrNotReady is returned while no snapshot is published.
	ErrNotReady = errors.New("dashboard not loaded yet")
	// ErrStale marks a load whose result was dropped because a newer load
	// had already started.
	ErrStale = errors.New("stale snapshot discarded")
)

// Fetcher retrieves one snapshot from the upstream.
type Fetcher interface {
	Snapshot(ctx context.Context, force bool) (*domain.Snapshot, error)
}

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// View is a consistent read of the dashboard. Snapshot is shared and must
// not be modified.
type View struct {
	State    State            `json:"state" enum:"loading,error,ready"`
	Snapshot *domain.Snapshot `json:"-"`
	Error    string           `json:"error,omitempty"`
	Loading  bool             `json:"loading"`
	LoadedAt time.Time        `json:"loadedAt,omitempty"`
	LoadID   string           `json:"loadId,omitempty"`
}

type Dashboard struct {
	Fetcher    Fetcher
	Milestones insight.MilestoneTable
	Log        *zap.Logger
	Now        func() time.Time

	mu      sync.Mutex
	view    View
	err     error
	applied uint64

	loading atomic.Int32
	started atomic.Uint64
}

func New(f Fetcher, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{
		Fetcher:    f,
		Milestones: insight.DefaultMilestones,
		Log:        log,
		Now:        time.Now,
		view:       View{State: StateLoading},
	}
}

func (d *Dashboard) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dashboard) logger() *zap.Logger {
	if d.Log != nil {
		return d.Log
	}
	return zap.NewNop()
}

// Load fetches a snapshot and publishes it, or publishes the error in place
// of the previous snapshot. Results of loads overtaken by a newer one are
// dropped and reported as ErrStale. A fetch that fails after ctx is done
// leaves the view untouched.
func (d *Dashboard) Load(ctx context.Context, force bool) error {
	seq := d.started.Add(1)
	d.loading.Add(1)
	defer d.loading.Add(-1)

	id := uuid.NewString()
	log := d.logger().With(zap.String("load_id", id), zap.Uint64("seq", seq), zap.Bool("force", force))
	start := d.now()

	snap, err := d.Fetcher.Snapshot(ctx, force)
	if err != nil && ctx.Err() != nil {
		// The caller gave up; that says nothing about the upstream.
		log.Info("load cancelled, keeping current view", zap.Error(err))
		return fmt.Errorf("load snapshot: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq < d.started.Load() || seq <= d.applied {
		log.Info("discarding stale load", zap.Error(err))
		return ErrStale
	}
	d.applied = seq
	at := d.now()
	if err != nil {
		d.view = View{State: StateError, Error: err.Error(), LoadedAt: at, LoadID: id}
		d.err = err
		log.Warn("load failed", zap.Error(err), zap.Duration("took", at.Sub(start)))
		return fmt.Errorf("load snapshot: %w", err)
	}
	d.view = View{State: StateReady, Snapshot: snap, LoadedAt: at, LoadID: id}
	d.err = nil
	log.Info("snapshot loaded",
		zap.Int("tasks", snap.KPI.TotalTasks),
		zap.Int("phases", len(snap.Phases)),
		zap.Duration("took", at.Sub(start)))
	return nil
}

func (d *Dashboard) View() View {
	d.mu.Lock()
	v := d.view
	d.mu.Unlock()
	v.Loading = d.Loading()
	return v
}

// Loading reports whether any load is in flight.
func (d *Dashboard) Loading() bool {
	return d.loading.Load() > 0
}

// Current returns the published snapshot. Without one it returns ErrNotReady,
// wrapping the last load's error when that load failed.
func (d *Dashboard) Current() (*domain.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.view.State {
	case StateReady:
		return d.view.Snapshot, nil
	case StateError:
		return nil, fmt.Errorf("%w: %w", ErrNotReady, d.err)
	default:
		return nil, ErrNotReady
	}
}

// Run loads once and then on every tick of interval until ctx is done.
// Failures are logged and the loop keeps going.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := d.logger()
	log.Info("refresher started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := d.Load(ctx, false); err != nil && !errors.Is(err, ErrStale) && ctx.Err() == nil {
			log.Error("scheduled refresh failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			log.Info("refresher stopped")
			return
		case <-ticker.C:
		}
	}
}
