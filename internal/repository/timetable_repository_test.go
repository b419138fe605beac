package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolar/timetable-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var timetableEntryColumns = []string{"id", "day_of_week", "period_id", "class_id", "subject_id", "teacher_id", "room_id", "note", "created_at"}

func TestTimetableRepositoryFindSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows(timetableEntryColumns).
		AddRow("e1", 1, "p1", "c1", "s1", "t1", "r1", nil, time.Now())
	mock.ExpectQuery(`FROM timetable WHERE day_of_week = \$1 AND period_id = \$2$`).
		WithArgs(1, "p1").
		WillReturnRows(rows)

	entries, err := repo.FindSlot(context.Background(), 1, "p1", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindSlotExcludesEntry(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(`FROM timetable WHERE day_of_week = \$1 AND period_id = \$2 AND id != \$3`).
		WithArgs(2, "p3", "e9").
		WillReturnRows(sqlmock.NewRows(timetableEntryColumns))

	entries, err := repo.FindSlot(context.Background(), 2, "p3", "e9")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	columns := append(append([]string{}, timetableEntryColumns...),
		"class_name", "grade", "section",
		"subject_name", "subject_short_name", "subject_color",
		"teacher_name", "teacher_short_name",
		"room_name", "building",
		"period_number", "start_time", "end_time")
	rows := sqlmock.NewRows(columns).
		AddRow("e1", 1, "p1", "c1", "s1", "t1", "r1", nil, time.Now(),
			"9.A", 9, "A", "Matematika", "Matek", "#3498db", "Nagy István", "NI", "101", "A", 1, "07:15", "08:00")
	mock.ExpectQuery(`WHERE t\.class_id = \$1 ORDER BY t\.day_of_week, p\.number`).
		WithArgs("c1").
		WillReturnRows(rows)

	entries, err := repo.ListByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "9.A", entries[0].ClassName)
	assert.Equal(t, 1, entries[0].PeriodNumber)
	assert.Equal(t, "Matek", entries[0].SubjectShortName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec("INSERT INTO timetable").
		WithArgs(sqlmock.AnyArg(), 1, "p1", "c1", "s1", "t1", "r1", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.TimetableEntry{DayOfWeek: 1, PeriodID: "p1", ClassID: "c1", SubjectID: "s1", TeacherID: "t1", RoomID: "r1"}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(context.Canceled))
	assert.False(t, IsUniqueViolation(nil))
}

func TestTeacherRepositoryFindByLDAPUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "short_name", "email", "subjects", "classes", "color", "ldap_username", "created_at"}).
		AddRow("t1", "Nagy István", "NI", "nagy.istvan@iskola.hu", "Matematika", nil, "#3498db", "nagy.istvan", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(ldap_username) = LOWER($1)")).
		WithArgs("Nagy.Istvan").
		WillReturnRows(rows)

	teacher, err := repo.FindByLDAPUsername(context.Background(), "Nagy.Istvan")
	require.NoError(t, err)
	assert.Equal(t, "t1", teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubstitutionRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubstitutionRepository(db)

	columns := []string{"id", "date", "period_id", "class_id", "original_teacher_id", "substitute_teacher_id",
		"subject_id", "room_id", "reason", "note", "cancelled", "created_by", "created_at",
		"original_teacher_name", "original_teacher_short_name",
		"substitute_teacher_name", "substitute_teacher_short_name",
		"subject_name", "subject_short_name", "subject_color",
		"class_name", "room_name", "period_number", "start_time", "end_time"}
	rows := sqlmock.NewRows(columns).
		AddRow("sub1", "2026-03-02", "p1", "c1", "t1", "t2", nil, nil, "betegség", "", false, "admin", time.Now(),
			"Nagy István", "NI", "Tóth Péter", "TP", nil, nil, nil, "9.A", nil, 1, "07:15", "08:00")
	mock.ExpectQuery(`WHERE s\.date = \$1 ORDER BY p\.number`).
		WithArgs("2026-03-02").
		WillReturnRows(rows)

	subs, err := repo.List(context.Background(), models.SubstitutionFilter{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub1", subs[0].ID)
	require.NotNil(t, subs[0].SubstituteTeacherName)
	assert.Equal(t, "Tóth Péter", *subs[0].SubstituteTeacherName)
	assert.Nil(t, subs[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubstitutionRepositoryListByTeacherRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubstitutionRepository(db)

	mock.ExpectQuery(`WHERE \(s\.substitute_teacher_id = \$1 OR s\.original_teacher_id = \$1\) AND s\.date >= \$2 AND s\.date <= \$3`).
		WithArgs("t1", "2026-03-01", "2026-03-07").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "period_id", "class_id", "original_teacher_id", "substitute_teacher_id",
			"subject_id", "room_id", "reason", "note", "cancelled", "created_by", "created_at",
			"original_teacher_name", "original_teacher_short_name",
			"substitute_teacher_name", "substitute_teacher_short_name",
			"subject_name", "subject_short_name", "subject_color",
			"class_name", "room_name", "period_number", "start_time", "end_time"}))

	subs, err := repo.ListByTeacher(context.Background(), "t1", "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
