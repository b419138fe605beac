package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the tables and indexes on first boot. The three
// partial unique indexes on timetable back up the application-level slot
// check: two concurrent writers cannot both commit the same class, teacher or
// room into one slot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS classes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		grade INTEGER NOT NULL DEFAULT 0,
		section TEXT NOT NULL DEFAULT '',
		head_teacher TEXT,
		student_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS teachers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		subjects TEXT NOT NULL DEFAULT '',
		classes TEXT,
		color TEXT NOT NULL DEFAULT '#3498db',
		ldap_username TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		building TEXT NOT NULL DEFAULT '',
		floor INTEGER NOT NULL DEFAULT 0,
		capacity INTEGER NOT NULL DEFAULT 30,
		type TEXT NOT NULL DEFAULT 'classroom',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS subjects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#2ecc71',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS periods (
		id TEXT PRIMARY KEY,
		number INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_break BOOLEAN NOT NULL DEFAULT FALSE,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS timetable (
		id TEXT PRIMARY KEY,
		day_of_week INTEGER NOT NULL,
		period_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		teacher_id TEXT NOT NULL,
		room_id TEXT NOT NULL,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_class ON timetable (class_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_teacher ON timetable (teacher_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_room ON timetable (room_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_day ON timetable (day_of_week)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timetable_slot_class ON timetable (day_of_week, period_id, class_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timetable_slot_teacher ON timetable (day_of_week, period_id, teacher_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timetable_slot_room ON timetable (day_of_week, period_id, room_id)`,
	`CREATE TABLE IF NOT EXISTS substitutions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		period_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		original_teacher_id TEXT,
		substitute_teacher_id TEXT,
		subject_id TEXT,
		room_id TEXT,
		reason TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		cancelled BOOLEAN NOT NULL DEFAULT FALSE,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_substitutions_date ON substitutions (date)`,
	`CREATE INDEX IF NOT EXISTS idx_substitutions_class ON substitutions (class_id)`,
	`CREATE INDEX IF NOT EXISTS idx_substitutions_teacher ON substitutions (substitute_teacher_id)`,
}

// EnsureSchema creates missing tables and indexes. Statements are idempotent
// so it runs on every boot.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
