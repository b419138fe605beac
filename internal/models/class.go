package models

import "time"

// Class represents a school class (form), e.g. "9.A".
type Class struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Grade        int       `db:"grade" json:"grade"`
	Section      string    `db:"section" json:"section"`
	HeadTeacher  *string   `db:"head_teacher" json:"headTeacher,omitempty"`
	StudentCount int       `db:"student_count" json:"studentCount"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
