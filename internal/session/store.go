package session

import (
	"context"
	"sync"
	"time"

	"waterdash/domain/core"
	"waterdash/domain/dataset"
	"waterdash/internal"
	"waterdash/internal/observability"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/semaphore"
)

// Loader produces the current table content. A (nil, nil) return means the
// workbook is not on disk.
type Loader interface {
	Load() (*dataset.Table, error)
}

// Snapshot is one load of the workbook: the normalized table plus identity.
// Every load mints a new ID even when the content is unchanged; Fingerprint
// is what ties unchanged content together.
type Snapshot struct {
	ID          core.SnapshotID
	Table       *dataset.Table
	Fingerprint core.Hash
	LoadedAt    time.Time
}

// Absent reports whether this snapshot found no workbook on disk.
func (s Snapshot) Absent() bool {
	return s.Table == nil
}

// Store holds the process-wide current snapshot. Refresh is the single
// writer; page handlers call it on every interaction, so the slot always
// reflects the file as of the request being served. Reads never block loads.
type Store struct {
	loader  Loader
	clock   clockwork.Clock
	logger  *internal.Logger
	metrics *observability.Metrics

	// writeGate serializes loads so overlapping browser requests cannot
	// interleave two parses of the same file.
	writeGate *semaphore.Weighted

	mu      sync.RWMutex
	current Snapshot
}

// NewStore creates a snapshot store around a loader.
func NewStore(loader Loader, clock clockwork.Clock, logger *internal.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		loader:    loader,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		writeGate: semaphore.NewWeighted(1),
	}
}

// Refresh re-reads the workbook and overwrites the current snapshot
// wholesale; last write wins. On a read error the previous snapshot stays in
// place and is returned alongside the error, so one bad cycle never blanks
// out the dashboard state.
func (s *Store) Refresh(ctx context.Context) (Snapshot, error) {
	if err := s.writeGate.Acquire(ctx, 1); err != nil {
		return s.Current(), err
	}
	defer s.writeGate.Release(1)

	start := s.clock.Now()
	table, err := s.loader.Load()
	s.metrics.LoadDuration.Observe(s.clock.Since(start).Seconds())

	if err != nil {
		s.metrics.LoadOutcomes.WithLabelValues(observability.OutcomeError).Inc()
		s.logger.Error("[Session] refresh failed, keeping previous snapshot: %v", err)
		return s.Current(), err
	}

	snap := Snapshot{
		ID:          core.NewSnapshotID(),
		Table:       table,
		Fingerprint: table.Fingerprint(),
		LoadedAt:    s.clock.Now(),
	}

	if snap.Absent() {
		s.metrics.LoadOutcomes.WithLabelValues(observability.OutcomeAbsent).Inc()
	} else {
		s.metrics.LoadOutcomes.WithLabelValues(observability.OutcomeLoaded).Inc()
	}
	s.metrics.RowsLoaded.Set(float64(table.Len()))

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Debug("[Session] snapshot %s holds %d rows", snap.ID, table.Len())
	return snap, nil
}

// Current returns the snapshot from the most recent successful refresh.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
