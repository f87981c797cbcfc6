package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lojf/regform/internal/apperrors"
	"github.com/lojf/regform/internal/models"
)

// MemoryStore is an in-process record store for tests and throwaway runs.
// Set CountErr or InsertErr to simulate an unavailable store.
type MemoryStore struct {
	mu    sync.Mutex
	rows  []models.Student
	byID  map[string]int
	clock func() time.Time

	CountErr  error
	InsertErr error

	Counts  int
	Inserts []models.StudentRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[string]int{}, clock: time.Now}
}

func (m *MemoryStore) CountWithPrefix(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts++
	if m.CountErr != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, m.CountErr)
	}
	var n int64
	for _, r := range m.rows {
		if strings.HasPrefix(r.ID, prefix) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Insert(_ context.Context, rec models.StudentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserts = append(m.Inserts, rec)
	if m.InsertErr != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, m.InsertErr)
	}
	if _, dup := m.byID[rec.ID]; dup {
		return fmt.Errorf("%w: duplicate id %s", apperrors.ErrConstraintViolation, rec.ID)
	}
	row := rec.ToRow()
	row.CreatedAt = m.clock()
	m.byID[rec.ID] = len(m.rows)
	m.rows = append(m.rows, row)
	return nil
}

// List returns the stored rows, newest first.
func (m *MemoryStore) List(_ context.Context) ([]models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Student, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.byID[id]
	if !ok {
		return models.Student{}, apperrors.ErrStudentNotFound
	}
	return m.rows[i], nil
}

// Seed stores rows directly, bypassing the failure switches.
func (m *MemoryStore) Seed(recs ...models.StudentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		row := rec.ToRow()
		row.CreatedAt = m.clock()
		m.byID[rec.ID] = len(m.rows)
		m.rows = append(m.rows, row)
	}
}
