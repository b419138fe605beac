package memory

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolar/timetable-api/internal/models"
)

func TestNewWithSeed(t *testing.T) {
	store := New(true)
	ctx := context.Background()

	periods, err := store.Periods.List(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 8)
	assert.Equal(t, 1, periods[0].Number)
	assert.Equal(t, "07:15", periods[0].StartTime)
	assert.Equal(t, "14:25", periods[7].EndTime)

	subjects, err := store.Subjects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 14)

	classes, err := store.Classes.List(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 10)
	assert.Equal(t, "9.A", classes[0].Name)
	assert.Equal(t, "12.B", classes[9].Name)

	teachers, err := store.Teachers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 12)

	rooms, err := store.Rooms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 12)
}

func TestNewWithoutSeed(t *testing.T) {
	store := New(false)
	periods, err := store.Periods.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestTeacherStoreLookups(t *testing.T) {
	store := New(false)
	ctx := context.Background()

	ldap := "nagy.istvan"
	teacher := &models.Teacher{Name: "Nagy István", ShortName: "NI", LDAPUsername: &ldap}
	require.NoError(t, store.Teachers.Create(ctx, teacher))

	byUser, err := store.Teachers.FindByLDAPUsername(ctx, "NAGY.ISTVAN")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, byUser.ID)

	byName, err := store.Teachers.FindByName(ctx, "nagy istván")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, byName.ID)

	_, err = store.Teachers.FindByName(ctx, "Ismeretlen Tanár")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTimetableStoreSlotGuard(t *testing.T) {
	store := New(false)
	ctx := context.Background()

	first := &models.TimetableEntry{DayOfWeek: 1, PeriodID: "p1", ClassID: "c1", SubjectID: "s1", TeacherID: "t1", RoomID: "r1"}
	require.NoError(t, store.Timetable.Create(ctx, first))

	dup := &models.TimetableEntry{DayOfWeek: 1, PeriodID: "p1", ClassID: "c1", SubjectID: "s2", TeacherID: "t2", RoomID: "r2"}
	err := store.Timetable.Create(ctx, dup)
	var conflict *models.SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "class", conflict.Dimension)
	assert.Equal(t, first.ID, conflict.Conflict.EntryID)

	// Same slot, different class/teacher/room passes.
	other := &models.TimetableEntry{DayOfWeek: 1, PeriodID: "p1", ClassID: "c2", SubjectID: "s2", TeacherID: "t2", RoomID: "r2"}
	require.NoError(t, store.Timetable.Create(ctx, other))

	// Moving an entry does not collide with itself.
	first.Note = nil
	require.NoError(t, store.Timetable.Update(ctx, first))
}

func TestTimetableStoreDetailViews(t *testing.T) {
	store := New(false)
	ctx := context.Background()

	period := &models.Period{Number: 3, StartTime: "09:05", EndTime: "09:50"}
	require.NoError(t, store.Periods.Create(ctx, period))
	class := &models.Class{Name: "10.B", Grade: 10, Section: "B"}
	require.NoError(t, store.Classes.Create(ctx, class))
	subject := &models.Subject{Name: "Fizika", ShortName: "Fizika", Color: "#2ecc71"}
	require.NoError(t, store.Subjects.Create(ctx, subject))
	teacher := &models.Teacher{Name: "Horváth János", ShortName: "HJ"}
	require.NoError(t, store.Teachers.Create(ctx, teacher))
	room := &models.Room{Name: "Fizika labor", Building: "B"}
	require.NoError(t, store.Rooms.Create(ctx, room))

	entry := &models.TimetableEntry{
		DayOfWeek: 2, PeriodID: period.ID, ClassID: class.ID,
		SubjectID: subject.ID, TeacherID: teacher.ID, RoomID: room.ID,
	}
	require.NoError(t, store.Timetable.Create(ctx, entry))

	byClass, err := store.Timetable.ListByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, byClass, 1)
	assert.Equal(t, "10.B", byClass[0].ClassName)
	assert.Equal(t, "Horváth János", byClass[0].TeacherName)
	assert.Equal(t, "Fizika labor", byClass[0].RoomName)
	assert.Equal(t, 3, byClass[0].PeriodNumber)

	byTeacher, err := store.Timetable.ListByTeacher(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, byTeacher, 1)

	byRoom, err := store.Timetable.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, byRoom, 1)
}

func TestSubstitutionStoreFilters(t *testing.T) {
	store := New(false)
	ctx := context.Background()

	t1, t2 := "t1", "t2"
	monday := &models.Substitution{Date: "2026-03-02", PeriodID: "p1", ClassID: "c1", OriginalTeacherID: &t1, SubstituteTeacherID: &t2}
	require.NoError(t, store.Substitutions.Create(ctx, monday))
	friday := &models.Substitution{Date: "2026-03-06", PeriodID: "p2", ClassID: "c2", SubstituteTeacherID: &t1}
	require.NoError(t, store.Substitutions.Create(ctx, friday))

	byDate, err := store.Substitutions.List(ctx, models.SubstitutionFilter{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, monday.ID, byDate[0].ID)

	inRange, err := store.Substitutions.List(ctx, models.SubstitutionFilter{StartDate: "2026-03-01", EndDate: "2026-03-07"})
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	// t1 shows up both as the original and as the substitute teacher.
	forTeacher, err := store.Substitutions.ListByTeacher(ctx, "t1", "", "")
	require.NoError(t, err)
	assert.Len(t, forTeacher, 2)

	byClass, err := store.Substitutions.ListByClass(ctx, "c2", "2026-03-06")
	require.NoError(t, err)
	require.Len(t, byClass, 1)
	assert.Equal(t, friday.ID, byClass[0].ID)
}
