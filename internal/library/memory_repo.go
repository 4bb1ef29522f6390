package library

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo keeps library records in a mutex-guarded map. It satisfies
// the same contract as PostgresRepo, including the per-user uniqueness
// and ownership rules, so the service and handlers behave identically on
// either backend. It backs the unit tests and is usable as a throwaway
// store when no database is around.
type MemoryRepo struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (r *MemoryRepo) Insert(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.UserID == rec.UserID && existing.GoogleBooksID == rec.GoogleBooksID {
			return ErrDuplicate
		}
	}

	now := r.now()
	rec.ID = uuid.New().String()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = *rec
	return nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID, statusFilter string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if statusFilter != "" && rec.Status != statusFilter {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetOne(_ context.Context, id, userID string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) UpdateFields(_ context.Context, id, userID string, upd Update) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return Record{}, ErrNotFound
	}

	if upd.Status != nil {
		rec.Status = *upd.Status
	}
	if upd.Rating != nil {
		rec.Rating = *upd.Rating
	}
	if upd.Review != nil {
		rec.Review = *upd.Review
	}
	if upd.Notes != nil {
		rec.Notes = *upd.Notes
	}
	rec.UpdatedAt = r.now()

	r.records[id] = rec
	return rec, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryRepo) CountByStatus(_ context.Context, userID string) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats Stats
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		stats.Total++
		switch rec.Status {
		case StatusWantToRead:
			stats.WantToRead++
		case StatusReading:
			stats.Reading++
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}
