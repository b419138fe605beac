package models

import "time"

// Substitution is a date-scoped override of the weekly timetable. A nil
// SubstituteTeacherID means the lesson is cancelled; nil SubjectID/RoomID mean
// "same as the original lesson". Substitutions never mutate the underlying
// timetable entry and are deliberately not conflict-checked.
type Substitution struct {
	ID                  string    `db:"id" json:"id"`
	Date                string    `db:"date" json:"date"`
	PeriodID            string    `db:"period_id" json:"periodId"`
	ClassID             string    `db:"class_id" json:"classId"`
	OriginalTeacherID   *string   `db:"original_teacher_id" json:"originalTeacherId,omitempty"`
	SubstituteTeacherID *string   `db:"substitute_teacher_id" json:"substituteTeacherId,omitempty"`
	SubjectID           *string   `db:"subject_id" json:"subjectId,omitempty"`
	RoomID              *string   `db:"room_id" json:"roomId,omitempty"`
	Reason              string    `db:"reason" json:"reason"`
	Note                string    `db:"note" json:"note"`
	Cancelled           bool      `db:"cancelled" json:"cancelled"`
	CreatedBy           string    `db:"created_by" json:"created_by"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// SubstitutionDetail joins display data. Joined fields are pointers because the
// reads LEFT JOIN: a substitution referencing a deleted teacher or room still
// renders.
type SubstitutionDetail struct {
	Substitution
	OriginalTeacherName        *string `db:"original_teacher_name" json:"originalTeacherName,omitempty"`
	OriginalTeacherShortName   *string `db:"original_teacher_short_name" json:"originalTeacherShortName,omitempty"`
	SubstituteTeacherName      *string `db:"substitute_teacher_name" json:"substituteTeacherName,omitempty"`
	SubstituteTeacherShortName *string `db:"substitute_teacher_short_name" json:"substituteTeacherShortName,omitempty"`
	SubjectName                *string `db:"subject_name" json:"subjectName,omitempty"`
	SubjectShortName           *string `db:"subject_short_name" json:"subjectShortName,omitempty"`
	SubjectColor               *string `db:"subject_color" json:"subjectColor,omitempty"`
	ClassName                  *string `db:"class_name" json:"className,omitempty"`
	RoomName                   *string `db:"room_name" json:"roomName,omitempty"`
	PeriodNumber               *int    `db:"period_number" json:"periodNumber,omitempty"`
	StartTime                  *string `db:"start_time" json:"startTime,omitempty"`
	EndTime                    *string `db:"end_time" json:"endTime,omitempty"`
}

// SubstitutionFilter narrows substitution reads. Date wins over the range pair.
type SubstitutionFilter struct {
	Date      string
	StartDate string
	EndDate   string
}
