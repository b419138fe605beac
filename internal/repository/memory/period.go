package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// PeriodStore manages the bell schedule in memory.
type PeriodStore struct {
	st *state
}

// List returns all periods ordered by number.
func (s *PeriodStore) List(ctx context.Context) ([]models.Period, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	periods := make([]models.Period, 0, len(s.st.periods))
	for _, p := range s.st.periods {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Number < periods[j].Number })
	return periods, nil
}

// FindByID loads a period by id.
func (s *PeriodStore) FindByID(ctx context.Context, id string) (*models.Period, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	p, ok := s.st.periods[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

// Count reports how many periods exist.
func (s *PeriodStore) Count(ctx context.Context) (int, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	return len(s.st.periods), nil
}

// Create inserts a period, assigning the id when empty.
func (s *PeriodStore) Create(ctx context.Context, period *models.Period) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	if period.CreatedAt.IsZero() {
		period.CreatedAt = time.Now().UTC()
	}
	s.st.periods[period.ID] = *period
	return nil
}

// Update rewrites a period.
func (s *PeriodStore) Update(ctx context.Context, period *models.Period) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.periods[period.ID]; ok {
		period.CreatedAt = existing.CreatedAt
		s.st.periods[period.ID] = *period
	}
	return nil
}

// Delete removes a period.
func (s *PeriodStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.periods, id)
	return nil
}
