// Package memory is the embedded store backend. It mirrors the SQL
// repositories method for method so services never branch on the backend,
// and is meant for development and single-node deployments without Postgres.
package memory

import (
	"context"
	"sync"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/seed"
)

// state is the shared mutable heart of the backend. One lock guards all
// entity maps so cross-entity reads (joined views) see a consistent snapshot.
type state struct {
	mu            sync.RWMutex
	classes       map[string]models.Class
	teachers      map[string]models.Teacher
	rooms         map[string]models.Room
	subjects      map[string]models.Subject
	periods       map[string]models.Period
	timetable     map[string]models.TimetableEntry
	substitutions map[string]models.Substitution
}

// Store bundles the per-entity stores over one shared state.
type Store struct {
	Classes       *ClassStore
	Teachers      *TeacherStore
	Rooms         *RoomStore
	Subjects      *SubjectStore
	Periods       *PeriodStore
	Timetable     *TimetableStore
	Substitutions *SubstitutionStore
}

// New constructs an empty store, optionally loaded with the base fixtures.
func New(withSeed bool) *Store {
	st := &state{
		classes:       make(map[string]models.Class),
		teachers:      make(map[string]models.Teacher),
		rooms:         make(map[string]models.Room),
		subjects:      make(map[string]models.Subject),
		periods:       make(map[string]models.Period),
		timetable:     make(map[string]models.TimetableEntry),
		substitutions: make(map[string]models.Substitution),
	}
	store := &Store{
		Classes:       &ClassStore{st: st},
		Teachers:      &TeacherStore{st: st},
		Rooms:         &RoomStore{st: st},
		Subjects:      &SubjectStore{st: st},
		Periods:       &PeriodStore{st: st},
		Timetable:     &TimetableStore{st: st},
		Substitutions: &SubstitutionStore{st: st},
	}
	if withSeed {
		store.loadSeed()
	}
	return store
}

func (s *Store) loadSeed() {
	ctx := context.Background()
	for _, p := range seed.Periods() {
		p := p
		_ = s.Periods.Create(ctx, &p)
	}
	for _, sub := range seed.Subjects() {
		sub := sub
		_ = s.Subjects.Create(ctx, &sub)
	}
	for _, c := range seed.Classes() {
		c := c
		_ = s.Classes.Create(ctx, &c)
	}
	for _, r := range seed.Rooms() {
		r := r
		_ = s.Rooms.Create(ctx, &r)
	}
	for _, t := range seed.Teachers() {
		t := t
		_ = s.Teachers.Create(ctx, &t)
	}
}
