package persistence

import (
	"context"
	"sync"

	"proflow/models"
)

// MemorySnapshotRepository keeps the snapshot in memory. Used by tests and
// when the process runs without a database.
type MemorySnapshotRepository struct {
	mu       sync.Mutex
	snapshot *models.Snapshot
	saves    int
	failWith error
}

var _ SnapshotRepository = (*MemorySnapshotRepository)(nil)

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

func (r *MemorySnapshotRepository) Save(_ context.Context, snapshot *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.failWith != nil {
		return r.failWith
	}
	copied := *snapshot
	r.snapshot = &copied
	return nil
}

func (r *MemorySnapshotRepository) Load(_ context.Context) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return nil, nil
	}
	copied := *r.snapshot
	return &copied, nil
}

// FailSavesWith makes every subsequent Save return err. Test hook for the
// best-effort persistence path.
func (r *MemorySnapshotRepository) FailSavesWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// SaveCount reports how many saves were attempted, including failed ones.
func (r *MemorySnapshotRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
