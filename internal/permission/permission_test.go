package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEvaluateAdminGroups(t *testing.T) {
	for _, group := range []string{"leadership", "system-admin", "Leadership", "SYSTEM-ADMIN"} {
		caps := Evaluate([]string{group})
		assert.True(t, caps.IsAdmin, "group %q should grant admin", group)
		assert.True(t, caps.CanEditGeneral, "admin groups are a subset of edit-capable groups")
		assert.False(t, caps.IsTeacherOnly)
	}
}

func TestEvaluateEditGroups(t *testing.T) {
	caps := Evaluate([]string{"office-staff"})
	assert.False(t, caps.IsAdmin)
	assert.True(t, caps.CanEditGeneral)
	assert.True(t, caps.IsOffice)
	assert.False(t, caps.IsTeacherOnly)
}

func TestEvaluateTeacherOnly(t *testing.T) {
	caps := Evaluate([]string{"teaching-staff"})
	assert.False(t, caps.IsAdmin)
	assert.True(t, caps.CanEditGeneral)
	assert.True(t, caps.IsTeacherOnly)

	// Teaching staff with an admin group is not teacher-only.
	caps = Evaluate([]string{"teaching-staff", "leadership"})
	assert.True(t, caps.IsAdmin)
	assert.False(t, caps.IsTeacherOnly)
}

func TestEvaluateUnknownGroups(t *testing.T) {
	caps := Evaluate([]string{"students", "parents"})
	assert.False(t, caps.IsAdmin)
	assert.False(t, caps.CanEditGeneral)
	assert.False(t, caps.IsTeacherOnly)
}

func TestEvaluateMonotonicity(t *testing.T) {
	// Every group set granting admin must also grant general edit.
	sets := [][]string{
		{"leadership"},
		{"system-admin"},
		{"leadership", "teaching-staff"},
		{"system-admin", "office-staff", "students"},
	}
	for _, groups := range sets {
		caps := Evaluate(groups)
		if caps.IsAdmin {
			assert.True(t, caps.CanEditGeneral, "admin implies canEditGeneral for %v", groups)
		}
	}
}

func TestCanEditLessonAdminAndOffice(t *testing.T) {
	admin := Evaluate([]string{"system-admin"})
	assert.True(t, admin.CanEditLesson("t-any", nil))

	office := Evaluate([]string{"office-staff"})
	assert.True(t, office.CanEditLesson("t-any", strPtr("t-other")))
}

func TestCanEditLessonTeacherOnlyLinked(t *testing.T) {
	caps := Evaluate([]string{"teaching-staff"})
	assert.True(t, caps.CanEditLesson("t1", strPtr("t1")))
	assert.False(t, caps.CanEditLesson("t2", strPtr("t1")))
}

func TestCanEditLessonTeacherOnlyUnlinkedFallsBack(t *testing.T) {
	caps := Evaluate([]string{"teaching-staff"})
	// No link set: falls back to the general edit capability.
	assert.True(t, caps.CanEditLesson("t2", nil))
	assert.True(t, caps.CanEditLesson("t2", strPtr("")))
}

func TestCanEditLessonViewer(t *testing.T) {
	caps := Evaluate([]string{"students"})
	assert.False(t, caps.CanEditLesson("t1", nil))
}
