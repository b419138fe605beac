package models

import "time"

// TimetableEntry is one recurring weekly lesson. DayOfWeek runs 1 (Monday)
// through 5 (Friday).
type TimetableEntry struct {
	ID        string    `db:"id" json:"id"`
	DayOfWeek int       `db:"day_of_week" json:"dayOfWeek"`
	PeriodID  string    `db:"period_id" json:"periodId"`
	ClassID   string    `db:"class_id" json:"classId"`
	SubjectID string    `db:"subject_id" json:"subjectId"`
	TeacherID string    `db:"teacher_id" json:"teacherId"`
	RoomID    string    `db:"room_id" json:"roomId"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntryDetail is a timetable entry joined with display data for the
// resolved weekly schedule views.
type TimetableEntryDetail struct {
	TimetableEntry
	ClassName        string `db:"class_name" json:"className"`
	Grade            int    `db:"grade" json:"grade"`
	Section          string `db:"section" json:"section"`
	SubjectName      string `db:"subject_name" json:"subjectName"`
	SubjectShortName string `db:"subject_short_name" json:"subjectShortName"`
	SubjectColor     string `db:"subject_color" json:"subjectColor"`
	TeacherName      string `db:"teacher_name" json:"teacherName"`
	TeacherShortName string `db:"teacher_short_name" json:"teacherShortName"`
	RoomName         string `db:"room_name" json:"roomName"`
	Building         string `db:"building" json:"building"`
	PeriodNumber     int    `db:"period_number" json:"periodNumber"`
	StartTime        string `db:"start_time" json:"startTime"`
	EndTime          string `db:"end_time" json:"endTime"`
}

// SlotConflict describes the existing entry that blocks a candidate.
type SlotConflict struct {
	EntryID   string `json:"entryId"`
	DayOfWeek int    `json:"dayOfWeek"`
	PeriodID  string `json:"periodId"`
	ClassID   string `json:"classId"`
	TeacherID string `json:"teacherId"`
	RoomID    string `json:"roomId"`
	Dimension string `json:"dimension"`
}

// SlotConflictError is returned when a candidate entry collides with an
// existing one on the class, teacher or room axis.
type SlotConflictError struct {
	Dimension string       `json:"dimension"`
	Message   string       `json:"message"`
	Conflict  SlotConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *SlotConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
