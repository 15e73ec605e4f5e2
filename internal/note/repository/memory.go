package repository

import (
	"context"
	"sync"

	"notesapp/internal/note/model"
)

// MemoryRepository keeps notes in insertion order for the lifetime of the
// process.
type MemoryRepository struct {
	mu    sync.RWMutex
	notes []model.Note
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, note model.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.notes = append(r.notes, note)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Note, len(r.notes))
	copy(out, r.notes)
	return out, nil
}
