package memory

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// TeacherStore manages teachers in memory.
type TeacherStore struct {
	st *state
}

// List returns all teachers ordered by name.
func (s *TeacherStore) List(ctx context.Context) ([]models.Teacher, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	teachers := make([]models.Teacher, 0, len(s.st.teachers))
	for _, t := range s.st.teachers {
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
	return teachers, nil
}

// FindByID loads a teacher by id.
func (s *TeacherStore) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	t, ok := s.st.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

// FindByLDAPUsername looks a teacher up by directory account, ignoring case.
func (s *TeacherStore) FindByLDAPUsername(ctx context.Context, username string) (*models.Teacher, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	for _, t := range s.st.teachers {
		if t.LDAPUsername != nil && strings.EqualFold(*t.LDAPUsername, username) {
			t := t
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

// FindByName looks a teacher up by exact display name, ignoring case. Ties
// break on creation time so repeated lookups stay deterministic.
func (s *TeacherStore) FindByName(ctx context.Context, name string) (*models.Teacher, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	var match *models.Teacher
	for _, t := range s.st.teachers {
		if !strings.EqualFold(t.Name, name) {
			continue
		}
		t := t
		if match == nil || t.CreatedAt.Before(match.CreatedAt) {
			match = &t
		}
	}
	if match == nil {
		return nil, sql.ErrNoRows
	}
	return match, nil
}

// Create inserts a teacher, assigning the id when empty.
func (s *TeacherStore) Create(ctx context.Context, teacher *models.Teacher) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = time.Now().UTC()
	}
	s.st.teachers[teacher.ID] = *teacher
	return nil
}

// Update rewrites a teacher.
func (s *TeacherStore) Update(ctx context.Context, teacher *models.Teacher) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.teachers[teacher.ID]; ok {
		teacher.CreatedAt = existing.CreatedAt
		s.st.teachers[teacher.ID] = *teacher
	}
	return nil
}

// Delete removes a teacher.
func (s *TeacherStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.teachers, id)
	return nil
}
