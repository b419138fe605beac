package models

import "time"

// Teacher represents a member of the teaching staff. Subjects and Classes are
// comma-joined display strings carried over from the legacy schema; the
// (de)serialization of those lists stays isolated here.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	ShortName    string    `db:"short_name" json:"shortName"`
	Email        string    `db:"email" json:"email"`
	Subjects     string    `db:"subjects" json:"subjects"`
	Classes      *string   `db:"classes" json:"classes,omitempty"`
	Color        string    `db:"color" json:"color"`
	LDAPUsername *string   `db:"ldap_username" json:"ldapUsername,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SubjectList splits the comma-joined subjects display string.
func (t Teacher) SubjectList() []string {
	return splitDisplayList(t.Subjects)
}

// ClassList splits the comma-joined classes display string.
func (t Teacher) ClassList() []string {
	if t.Classes == nil {
		return nil
	}
	return splitDisplayList(*t.Classes)
}
