// Package permission maps directory group memberships to capabilities. All
// functions are pure predicates; handlers re-evaluate them on every request
// from the session's stored group set, never from client-supplied data.
package permission

import "strings"

// Directory group names recognised by the evaluator. Matching is
// case-insensitive.
const (
	GroupLeadership    = "leadership"
	GroupSystemAdmin   = "system-admin"
	GroupTeachingStaff = "teaching-staff"
	GroupOfficeStaff   = "office-staff"
)

var adminGroups = map[string]struct{}{
	GroupLeadership:  {},
	GroupSystemAdmin: {},
}

var editGroups = map[string]struct{}{
	GroupLeadership:    {},
	GroupSystemAdmin:   {},
	GroupTeachingStaff: {},
	GroupOfficeStaff:   {},
}

// Capabilities is the capability set derived from a group set.
type Capabilities struct {
	IsAdmin        bool `json:"isAdmin"`
	CanEditGeneral bool `json:"canEditGeneral"`
	IsTeacherOnly  bool `json:"isTeacherOnly"`
	IsOffice       bool `json:"isOffice"`
}

// Evaluate derives capabilities from a group-name set.
func Evaluate(groups []string) Capabilities {
	var caps Capabilities
	teaching := false
	for _, raw := range groups {
		g := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := adminGroups[g]; ok {
			caps.IsAdmin = true
		}
		if _, ok := editGroups[g]; ok {
			caps.CanEditGeneral = true
		}
		if g == GroupTeachingStaff {
			teaching = true
		}
		if g == GroupOfficeStaff {
			caps.IsOffice = true
		}
	}
	caps.IsTeacherOnly = teaching && !caps.IsAdmin
	return caps
}

// IsTeachingStaff reports direct membership of the teaching-staff group,
// regardless of any admin role.
func IsTeachingStaff(groups []string) bool {
	for _, raw := range groups {
		if strings.EqualFold(strings.TrimSpace(raw), GroupTeachingStaff) {
			return true
		}
	}
	return false
}

// CanEditLesson decides whether the holder may edit a lesson taught by
// lessonTeacherID. Admins and office staff may edit anything; a teacher-only
// user with a linked teacher record may edit only their own lessons; everyone
// else falls back to the general edit capability.
func (c Capabilities) CanEditLesson(lessonTeacherID string, linkedTeacherID *string) bool {
	if c.IsAdmin || c.IsOffice {
		return true
	}
	if c.IsTeacherOnly && linkedTeacherID != nil && *linkedTeacherID != "" {
		return lessonTeacherID == *linkedTeacherID
	}
	return c.CanEditGeneral
}
