package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/skolar/timetable-api/internal/seed"
)

// SeedBaseData loads the base fixtures into an empty database. A non-empty
// periods table means the store has been seeded before, so nothing happens.
func SeedBaseData(ctx context.Context, db *sqlx.DB) error {
	periods := NewPeriodRepository(db)
	count, err := periods.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range seed.Periods() {
		p := p
		if err := periods.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed periods: %w", err)
		}
	}

	subjects := NewSubjectRepository(db)
	for _, s := range seed.Subjects() {
		s := s
		if err := subjects.Create(ctx, &s); err != nil {
			return fmt.Errorf("seed subjects: %w", err)
		}
	}

	classes := NewClassRepository(db)
	for _, c := range seed.Classes() {
		c := c
		if err := classes.Create(ctx, &c); err != nil {
			return fmt.Errorf("seed classes: %w", err)
		}
	}

	rooms := NewRoomRepository(db)
	for _, r := range seed.Rooms() {
		r := r
		if err := rooms.Create(ctx, &r); err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
	}

	teachers := NewTeacherRepository(db)
	for _, t := range seed.Teachers() {
		t := t
		if err := teachers.Create(ctx, &t); err != nil {
			return fmt.Errorf("seed teachers: %w", err)
		}
	}

	return nil
}
