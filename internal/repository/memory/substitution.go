package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// SubstitutionStore manages date-scoped substitutions in memory.
type SubstitutionStore struct {
	st *state
}

// detail resolves display data. Callers hold at least a read lock. Joined
// fields stay nil when the referenced row is gone, matching the LEFT JOINs of
// the SQL backend.
func (s *SubstitutionStore) detail(sub models.Substitution) models.SubstitutionDetail {
	d := models.SubstitutionDetail{Substitution: sub}
	if sub.OriginalTeacherID != nil {
		if t, ok := s.st.teachers[*sub.OriginalTeacherID]; ok {
			d.OriginalTeacherName = &t.Name
			d.OriginalTeacherShortName = &t.ShortName
		}
	}
	if sub.SubstituteTeacherID != nil {
		if t, ok := s.st.teachers[*sub.SubstituteTeacherID]; ok {
			d.SubstituteTeacherName = &t.Name
			d.SubstituteTeacherShortName = &t.ShortName
		}
	}
	if sub.SubjectID != nil {
		if sj, ok := s.st.subjects[*sub.SubjectID]; ok {
			d.SubjectName = &sj.Name
			d.SubjectShortName = &sj.ShortName
			d.SubjectColor = &sj.Color
		}
	}
	if c, ok := s.st.classes[sub.ClassID]; ok {
		d.ClassName = &c.Name
	}
	if sub.RoomID != nil {
		if r, ok := s.st.rooms[*sub.RoomID]; ok {
			d.RoomName = &r.Name
		}
	}
	if p, ok := s.st.periods[sub.PeriodID]; ok {
		d.PeriodNumber = &p.Number
		d.StartTime = &p.StartTime
		d.EndTime = &p.EndTime
	}
	return d
}

func sortByDatePeriod(subs []models.SubstitutionDetail, newestFirst bool) {
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Date != subs[j].Date {
			if newestFirst {
				return subs[i].Date > subs[j].Date
			}
			return subs[i].Date < subs[j].Date
		}
		pi, pj := 0, 0
		if subs[i].PeriodNumber != nil {
			pi = *subs[i].PeriodNumber
		}
		if subs[j].PeriodNumber != nil {
			pj = *subs[j].PeriodNumber
		}
		return pi < pj
	})
}

// List returns substitutions narrowed by the filter. An exact date wins over
// the range pair; with no filter every substitution comes back newest first.
func (s *SubstitutionStore) List(ctx context.Context, filter models.SubstitutionFilter) ([]models.SubstitutionDetail, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	subs := []models.SubstitutionDetail{}
	for _, sub := range s.st.substitutions {
		switch {
		case filter.Date != "":
			if sub.Date != filter.Date {
				continue
			}
		case filter.StartDate != "" && filter.EndDate != "":
			if sub.Date < filter.StartDate || sub.Date > filter.EndDate {
				continue
			}
		}
		subs = append(subs, s.detail(sub))
	}
	sortByDatePeriod(subs, filter.Date == "" && filter.StartDate == "")
	return subs, nil
}

// ListByClass returns the substitutions of one class on one date.
func (s *SubstitutionStore) ListByClass(ctx context.Context, classID, date string) ([]models.SubstitutionDetail, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	subs := []models.SubstitutionDetail{}
	for _, sub := range s.st.substitutions {
		if sub.ClassID == classID && sub.Date == date {
			subs = append(subs, s.detail(sub))
		}
	}
	sortByDatePeriod(subs, false)
	return subs, nil
}

// ListByTeacher returns substitutions where the teacher is either side of the
// swap, optionally narrowed to a date range.
func (s *SubstitutionStore) ListByTeacher(ctx context.Context, teacherID, startDate, endDate string) ([]models.SubstitutionDetail, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	subs := []models.SubstitutionDetail{}
	for _, sub := range s.st.substitutions {
		involved := (sub.SubstituteTeacherID != nil && *sub.SubstituteTeacherID == teacherID) ||
			(sub.OriginalTeacherID != nil && *sub.OriginalTeacherID == teacherID)
		if !involved {
			continue
		}
		if startDate != "" && endDate != "" && (sub.Date < startDate || sub.Date > endDate) {
			continue
		}
		subs = append(subs, s.detail(sub))
	}
	sortByDatePeriod(subs, false)
	return subs, nil
}

// FindByID loads a substitution by id.
func (s *SubstitutionStore) FindByID(ctx context.Context, id string) (*models.Substitution, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	sub, ok := s.st.substitutions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &sub, nil
}

// Create inserts a substitution, assigning the id when empty.
func (s *SubstitutionStore) Create(ctx context.Context, sub *models.Substitution) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	s.st.substitutions[sub.ID] = *sub
	return nil
}

// Update rewrites a substitution. created_by and creation time are immutable.
func (s *SubstitutionStore) Update(ctx context.Context, sub *models.Substitution) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.substitutions[sub.ID]; ok {
		sub.CreatedAt = existing.CreatedAt
		sub.CreatedBy = existing.CreatedBy
		s.st.substitutions[sub.ID] = *sub
	}
	return nil
}

// Delete removes a substitution.
func (s *SubstitutionStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.substitutions, id)
	return nil
}
