package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// ClassStore manages classes in memory.
type ClassStore struct {
	st *state
}

// List returns all classes ordered by grade and section.
func (s *ClassStore) List(ctx context.Context) ([]models.Class, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	classes := make([]models.Class, 0, len(s.st.classes))
	for _, c := range s.st.classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Grade != classes[j].Grade {
			return classes[i].Grade < classes[j].Grade
		}
		return classes[i].Section < classes[j].Section
	})
	return classes, nil
}

// FindByID loads a class by id.
func (s *ClassStore) FindByID(ctx context.Context, id string) (*models.Class, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	c, ok := s.st.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

// Create inserts a class, assigning the id when empty.
func (s *ClassStore) Create(ctx context.Context, class *models.Class) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now().UTC()
	}
	s.st.classes[class.ID] = *class
	return nil
}

// Update rewrites a class.
func (s *ClassStore) Update(ctx context.Context, class *models.Class) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.classes[class.ID]; ok {
		class.CreatedAt = existing.CreatedAt
		s.st.classes[class.ID] = *class
	}
	return nil
}

// Delete removes a class.
func (s *ClassStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.classes, id)
	return nil
}
