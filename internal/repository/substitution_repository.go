package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skolar/timetable-api/internal/models"
)

// SubstitutionRepository manages persistence for date-scoped substitutions.
type SubstitutionRepository struct {
	db *sqlx.DB
}

// NewSubstitutionRepository constructs a SubstitutionRepository.
func NewSubstitutionRepository(db *sqlx.DB) *SubstitutionRepository {
	return &SubstitutionRepository{db: db}
}

// LEFT JOINs keep substitutions readable after a referenced teacher, subject
// or room has been deleted.
const substitutionDetailSelect = `SELECT s.id, s.date, s.period_id, s.class_id, s.original_teacher_id, s.substitute_teacher_id,
	s.subject_id, s.room_id, s.reason, s.note, s.cancelled, s.created_by, s.created_at,
	ot.name AS original_teacher_name, ot.short_name AS original_teacher_short_name,
	st.name AS substitute_teacher_name, st.short_name AS substitute_teacher_short_name,
	sub.name AS subject_name, sub.short_name AS subject_short_name, sub.color AS subject_color,
	c.name AS class_name,
	r.name AS room_name,
	p.number AS period_number, p.start_time, p.end_time
	FROM substitutions s
	LEFT JOIN teachers ot ON s.original_teacher_id = ot.id
	LEFT JOIN teachers st ON s.substitute_teacher_id = st.id
	LEFT JOIN subjects sub ON s.subject_id = sub.id
	LEFT JOIN classes c ON s.class_id = c.id
	LEFT JOIN rooms r ON s.room_id = r.id
	LEFT JOIN periods p ON s.period_id = p.id`

// List returns substitutions narrowed by the filter. An exact date wins over
// the range pair; with no filter every substitution comes back newest first.
func (r *SubstitutionRepository) List(ctx context.Context, filter models.SubstitutionFilter) ([]models.SubstitutionDetail, error) {
	query := substitutionDetailSelect
	var args []interface{}

	switch {
	case filter.Date != "":
		query += ` WHERE s.date = $1 ORDER BY p.number`
		args = append(args, filter.Date)
	case filter.StartDate != "" && filter.EndDate != "":
		query += ` WHERE s.date >= $1 AND s.date <= $2 ORDER BY s.date, p.number`
		args = append(args, filter.StartDate, filter.EndDate)
	default:
		query += ` ORDER BY s.date DESC, p.number`
	}

	subs := []models.SubstitutionDetail{}
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, fmt.Errorf("list substitutions: %w", err)
	}
	return subs, nil
}

// ListByClass returns the substitutions of one class on one date.
func (r *SubstitutionRepository) ListByClass(ctx context.Context, classID, date string) ([]models.SubstitutionDetail, error) {
	query := substitutionDetailSelect + ` WHERE s.class_id = $1 AND s.date = $2 ORDER BY p.number`
	subs := []models.SubstitutionDetail{}
	if err := r.db.SelectContext(ctx, &subs, query, classID, date); err != nil {
		return nil, fmt.Errorf("list substitutions by class: %w", err)
	}
	return subs, nil
}

// ListByTeacher returns substitutions where the teacher is either side of the
// swap, optionally narrowed to a date range.
func (r *SubstitutionRepository) ListByTeacher(ctx context.Context, teacherID, startDate, endDate string) ([]models.SubstitutionDetail, error) {
	query := substitutionDetailSelect + ` WHERE (s.substitute_teacher_id = $1 OR s.original_teacher_id = $1)`
	args := []interface{}{teacherID}
	if startDate != "" && endDate != "" {
		query += ` AND s.date >= $2 AND s.date <= $3`
		args = append(args, startDate, endDate)
	}
	query += ` ORDER BY s.date, p.number`

	subs := []models.SubstitutionDetail{}
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, fmt.Errorf("list substitutions by teacher: %w", err)
	}
	return subs, nil
}

// FindByID loads a substitution by id.
func (r *SubstitutionRepository) FindByID(ctx context.Context, id string) (*models.Substitution, error) {
	const query = `SELECT id, date, period_id, class_id, original_teacher_id, substitute_teacher_id,
		subject_id, room_id, reason, note, cancelled, created_by, created_at
		FROM substitutions WHERE id = $1`
	var sub models.Substitution
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a substitution, assigning the id when empty.
func (r *SubstitutionRepository) Create(ctx context.Context, sub *models.Substitution) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	const query = `INSERT INTO substitutions (id, date, period_id, class_id, original_teacher_id,
		substitute_teacher_id, subject_id, room_id, reason, note, cancelled, created_by)
		VALUES (:id, :date, :period_id, :class_id, :original_teacher_id,
		:substitute_teacher_id, :subject_id, :room_id, :reason, :note, :cancelled, :created_by)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create substitution: %w", err)
	}
	return nil
}

// Update rewrites a substitution row. created_by is immutable.
func (r *SubstitutionRepository) Update(ctx context.Context, sub *models.Substitution) error {
	const query = `UPDATE substitutions SET date = :date, period_id = :period_id, class_id = :class_id,
		original_teacher_id = :original_teacher_id, substitute_teacher_id = :substitute_teacher_id,
		subject_id = :subject_id, room_id = :room_id, reason = :reason, note = :note, cancelled = :cancelled
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("update substitution: %w", err)
	}
	return nil
}

// Delete removes a substitution row.
func (r *SubstitutionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM substitutions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete substitution: %w", err)
	}
	return nil
}
