package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// TimetableStore manages weekly timetable entries in memory.
type TimetableStore struct {
	st *state
}

// detail resolves display data from the other entity maps. Callers hold at
// least a read lock. Missing references render as zero values, matching what
// an inner join simply drops in the SQL backend after a referenced row is
// gone mid-request.
func (s *TimetableStore) detail(entry models.TimetableEntry) models.TimetableEntryDetail {
	d := models.TimetableEntryDetail{TimetableEntry: entry}
	if c, ok := s.st.classes[entry.ClassID]; ok {
		d.ClassName = c.Name
		d.Grade = c.Grade
		d.Section = c.Section
	}
	if sub, ok := s.st.subjects[entry.SubjectID]; ok {
		d.SubjectName = sub.Name
		d.SubjectShortName = sub.ShortName
		d.SubjectColor = sub.Color
	}
	if t, ok := s.st.teachers[entry.TeacherID]; ok {
		d.TeacherName = t.Name
		d.TeacherShortName = t.ShortName
	}
	if r, ok := s.st.rooms[entry.RoomID]; ok {
		d.RoomName = r.Name
		d.Building = r.Building
	}
	if p, ok := s.st.periods[entry.PeriodID]; ok {
		d.PeriodNumber = p.Number
		d.StartTime = p.StartTime
		d.EndTime = p.EndTime
	}
	return d
}

func (s *TimetableStore) listWhere(match func(models.TimetableEntry) bool) []models.TimetableEntryDetail {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	entries := []models.TimetableEntryDetail{}
	for _, e := range s.st.timetable {
		if match(e) {
			entries = append(entries, s.detail(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DayOfWeek != entries[j].DayOfWeek {
			return entries[i].DayOfWeek < entries[j].DayOfWeek
		}
		return entries[i].PeriodNumber < entries[j].PeriodNumber
	})
	return entries
}

// ListByClass returns the resolved weekly schedule of a class.
func (s *TimetableStore) ListByClass(ctx context.Context, classID string) ([]models.TimetableEntryDetail, error) {
	return s.listWhere(func(e models.TimetableEntry) bool { return e.ClassID == classID }), nil
}

// ListByTeacher returns the resolved weekly schedule of a teacher.
func (s *TimetableStore) ListByTeacher(ctx context.Context, teacherID string) ([]models.TimetableEntryDetail, error) {
	return s.listWhere(func(e models.TimetableEntry) bool { return e.TeacherID == teacherID }), nil
}

// ListByRoom returns the resolved weekly schedule of a room.
func (s *TimetableStore) ListByRoom(ctx context.Context, roomID string) ([]models.TimetableEntryDetail, error) {
	return s.listWhere(func(e models.TimetableEntry) bool { return e.RoomID == roomID }), nil
}

// FindByID loads a timetable entry by id.
func (s *TimetableStore) FindByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	e, ok := s.st.timetable[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

// FindSlot returns the entries occupying a day/period slot, leaving out
// excludeID when non-empty.
func (s *TimetableStore) FindSlot(ctx context.Context, dayOfWeek int, periodID, excludeID string) ([]models.TimetableEntry, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	return s.slotLocked(dayOfWeek, periodID, excludeID), nil
}

func (s *TimetableStore) slotLocked(dayOfWeek int, periodID, excludeID string) []models.TimetableEntry {
	entries := []models.TimetableEntry{}
	for _, e := range s.st.timetable {
		if e.DayOfWeek == dayOfWeek && e.PeriodID == periodID && e.ID != excludeID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// slotTakenLocked re-runs the axis check under the write lock, the same
// last-line guard the SQL backend gets from its unique slot indexes.
func (s *TimetableStore) slotTakenLocked(entry models.TimetableEntry) *models.SlotConflictError {
	for _, e := range s.slotLocked(entry.DayOfWeek, entry.PeriodID, entry.ID) {
		var dimension string
		switch {
		case e.ClassID == entry.ClassID:
			dimension = "class"
		case e.TeacherID == entry.TeacherID:
			dimension = "teacher"
		case e.RoomID == entry.RoomID:
			dimension = "room"
		default:
			continue
		}
		return &models.SlotConflictError{
			Dimension: dimension,
			Message:   "slot already taken",
			Conflict: models.SlotConflict{
				EntryID:   e.ID,
				DayOfWeek: e.DayOfWeek,
				PeriodID:  e.PeriodID,
				ClassID:   e.ClassID,
				TeacherID: e.TeacherID,
				RoomID:    e.RoomID,
				Dimension: dimension,
			},
		}
	}
	return nil
}

// Create inserts a timetable entry, assigning the id when empty.
func (s *TimetableStore) Create(ctx context.Context, entry *models.TimetableEntry) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.slotTakenLocked(*entry); err != nil {
		return err
	}
	s.st.timetable[entry.ID] = *entry
	return nil
}

// Update rewrites a timetable entry.
func (s *TimetableStore) Update(ctx context.Context, entry *models.TimetableEntry) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	existing, ok := s.st.timetable[entry.ID]
	if !ok {
		return nil
	}
	if err := s.slotTakenLocked(*entry); err != nil {
		return err
	}
	entry.CreatedAt = existing.CreatedAt
	s.st.timetable[entry.ID] = *entry
	return nil
}

// Delete removes a timetable entry.
func (s *TimetableStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.timetable, id)
	return nil
}
