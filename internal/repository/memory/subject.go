package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// SubjectStore manages subjects in memory.
type SubjectStore struct {
	st *state
}

// List returns all subjects ordered by name.
func (s *SubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	subjects := make([]models.Subject, 0, len(s.st.subjects))
	for _, sub := range s.st.subjects {
		subjects = append(subjects, sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

// FindByID loads a subject by id.
func (s *SubjectStore) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	sub, ok := s.st.subjects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &sub, nil
}

// Create inserts a subject, assigning the id when empty.
func (s *SubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	s.st.subjects[subject.ID] = *subject
	return nil
}

// Update rewrites a subject.
func (s *SubjectStore) Update(ctx context.Context, subject *models.Subject) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.subjects[subject.ID]; ok {
		subject.CreatedAt = existing.CreatedAt
		s.st.subjects[subject.ID] = *subject
	}
	return nil
}

// Delete removes a subject.
func (s *SubjectStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.subjects, id)
	return nil
}
