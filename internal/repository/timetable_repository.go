package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skolar/timetable-api/internal/models"
)

// TimetableRepository manages persistence for weekly timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const timetableDetailSelect = `SELECT t.id, t.day_of_week, t.period_id, t.class_id, t.subject_id, t.teacher_id, t.room_id, t.note, t.created_at,
	c.name AS class_name, c.grade, c.section,
	s.name AS subject_name, s.short_name AS subject_short_name, s.color AS subject_color,
	te.name AS teacher_name, te.short_name AS teacher_short_name,
	r.name AS room_name, r.building,
	p.number AS period_number, p.start_time, p.end_time
	FROM timetable t
	JOIN classes c ON t.class_id = c.id
	JOIN subjects s ON t.subject_id = s.id
	JOIN teachers te ON t.teacher_id = te.id
	JOIN rooms r ON t.room_id = r.id
	JOIN periods p ON t.period_id = p.id`

// ListByClass returns the resolved weekly schedule of a class.
func (r *TimetableRepository) ListByClass(ctx context.Context, classID string) ([]models.TimetableEntryDetail, error) {
	query := timetableDetailSelect + ` WHERE t.class_id = $1 ORDER BY t.day_of_week, p.number`
	entries := []models.TimetableEntryDetail{}
	if err := r.db.SelectContext(ctx, &entries, query, classID); err != nil {
		return nil, fmt.Errorf("list timetable by class: %w", err)
	}
	return entries, nil
}

// ListByTeacher returns the resolved weekly schedule of a teacher.
func (r *TimetableRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TimetableEntryDetail, error) {
	query := timetableDetailSelect + ` WHERE t.teacher_id = $1 ORDER BY t.day_of_week, p.number`
	entries := []models.TimetableEntryDetail{}
	if err := r.db.SelectContext(ctx, &entries, query, teacherID); err != nil {
		return nil, fmt.Errorf("list timetable by teacher: %w", err)
	}
	return entries, nil
}

// ListByRoom returns the resolved weekly schedule of a room.
func (r *TimetableRepository) ListByRoom(ctx context.Context, roomID string) ([]models.TimetableEntryDetail, error) {
	query := timetableDetailSelect + ` WHERE t.room_id = $1 ORDER BY t.day_of_week, p.number`
	entries := []models.TimetableEntryDetail{}
	if err := r.db.SelectContext(ctx, &entries, query, roomID); err != nil {
		return nil, fmt.Errorf("list timetable by room: %w", err)
	}
	return entries, nil
}

// FindByID loads a timetable entry by id.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	const query = `SELECT id, day_of_week, period_id, class_id, subject_id, teacher_id, room_id, note, created_at FROM timetable WHERE id = $1`
	var entry models.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindSlot returns the entries occupying a day/period slot. A non-empty
// excludeID leaves that entry out, so an update does not collide with itself.
func (r *TimetableRepository) FindSlot(ctx context.Context, dayOfWeek int, periodID, excludeID string) ([]models.TimetableEntry, error) {
	query := `SELECT id, day_of_week, period_id, class_id, subject_id, teacher_id, room_id, note, created_at
		FROM timetable WHERE day_of_week = $1 AND period_id = $2`
	args := []interface{}{dayOfWeek, periodID}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}
	entries := []models.TimetableEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("find timetable slot: %w", err)
	}
	return entries, nil
}

// Create inserts a timetable entry, assigning the id when empty.
func (r *TimetableRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `INSERT INTO timetable (id, day_of_week, period_id, class_id, subject_id, teacher_id, room_id, note)
		VALUES (:id, :day_of_week, :period_id, :class_id, :subject_id, :teacher_id, :room_id, :note)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}
	return nil
}

// Update rewrites a timetable entry row.
func (r *TimetableRepository) Update(ctx context.Context, entry *models.TimetableEntry) error {
	const query = `UPDATE timetable SET day_of_week = :day_of_week, period_id = :period_id, class_id = :class_id,
		subject_id = :subject_id, teacher_id = :teacher_id, room_id = :room_id, note = :note WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update timetable entry: %w", err)
	}
	return nil
}

// Delete removes a timetable entry row.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timetable WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete timetable entry: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique index violation.
// The slot indexes fire when two writers race past the application check.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
