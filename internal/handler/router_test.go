package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/directory"
	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/repository/memory"
	"github.com/skolar/timetable-api/internal/service"
	"github.com/skolar/timetable-api/internal/session"
	"github.com/skolar/timetable-api/pkg/config"
)

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api",
	}
	logr := zap.NewNop()
	validate := validator.New()

	mem := memory.New(true)
	sessions := session.NewMemoryStore(time.Hour, nil)
	authenticator := directory.NewTestAuthenticator()

	classSvc := service.NewClassService(mem.Classes, validate, logr)
	teacherSvc := service.NewTeacherService(mem.Teachers, validate, logr)
	roomSvc := service.NewRoomService(mem.Rooms, validate, logr)
	subjectSvc := service.NewSubjectService(mem.Subjects, validate, logr)
	periodSvc := service.NewPeriodService(mem.Periods, validate, logr)
	timetableSvc := service.NewTimetableService(mem.Timetable, validate, logr)
	substitutionSvc := service.NewSubstitutionService(mem.Substitutions, validate, logr)
	authSvc := service.NewAuthService(authenticator, sessions, mem.Teachers, validate, logr)
	metricsSvc := service.NewMetricsService()

	handlers := Handlers{
		Auth:         NewAuthHandler(authSvc),
		Class:        NewClassHandler(classSvc),
		Teacher:      NewTeacherHandler(teacherSvc),
		Room:         NewRoomHandler(roomSvc),
		Subject:      NewSubjectHandler(subjectSvc),
		Period:       NewPeriodHandler(periodSvc),
		Timetable:    NewTimetableHandler(timetableSvc, metricsSvc),
		Substitution: NewSubstitutionHandler(substitutionSvc),
		Metrics:      NewMetricsHandler(metricsSvc, nil),
	}

	return NewRouter(cfg, logr, handlers, sessions, metricsSvc), mem
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username string) (string, map[string]interface{}) {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/ldap/auth", "", gin.H{
		"username": username,
		"password": username,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token, resp
}

func seedTeacherIDs(t *testing.T, mem *memory.Store) []string {
	t.Helper()
	teachers, err := mem.Teachers.List(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(teachers))
	for _, teacher := range teachers {
		ids = append(ids, teacher.ID)
	}
	require.NotEmpty(t, ids)
	return ids
}

func TestRouterPublicReads(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/classes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var classes []models.Class
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &classes))
	assert.Len(t, classes, 10)
	assert.Equal(t, "9.A", classes[0].Name)

	w = doRequest(t, r, http.MethodGet, "/api/periods", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var periods []models.Period
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &periods))
	assert.Len(t, periods, 8)

	w = doRequest(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterReferenceWritesNeedAdmin(t *testing.T) {
	r, _ := newTestServer(t)

	payload := gin.H{"name": "13.A", "grade": 13, "section": "A"}

	w := doRequest(t, r, http.MethodPost, "/api/classes", "", payload)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	teacherToken, _ := login(t, r, "teacher")
	w = doRequest(t, r, http.MethodPost, "/api/classes", teacherToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	adminToken, _ := login(t, r, "admin")
	w = doRequest(t, r, http.MethodPost, "/api/classes", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, true, created["success"])
	assert.NotEmpty(t, created["id"])
}

func TestRouterLoginShape(t *testing.T) {
	r, _ := newTestServer(t)

	_, resp := login(t, r, "principal")
	assert.Equal(t, true, resp["success"])
	perms, ok := resp["permissions"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, perms["isAdmin"])

	w := doRequest(t, r, http.MethodPost, "/api/ldap/auth", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var errResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Contains(t, errResp, "error")
}

func TestRouterTimetableConflict(t *testing.T) {
	r, mem := newTestServer(t)
	adminToken, _ := login(t, r, "admin")

	classes, err := mem.Classes.List(context.Background())
	require.NoError(t, err)
	periods, err := mem.Periods.List(context.Background())
	require.NoError(t, err)
	subjects, err := mem.Subjects.List(context.Background())
	require.NoError(t, err)
	rooms, err := mem.Rooms.List(context.Background())
	require.NoError(t, err)
	teacherIDs := seedTeacherIDs(t, mem)

	entry := gin.H{
		"dayOfWeek": 1,
		"periodId":  periods[0].ID,
		"classId":   classes[0].ID,
		"subjectId": subjects[0].ID,
		"teacherId": teacherIDs[0],
		"roomId":    rooms[0].ID,
	}
	w := doRequest(t, r, http.MethodPost, "/api/timetable", adminToken, entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same class and slot with a different teacher and room still collides.
	entry["teacherId"] = teacherIDs[1]
	entry["roomId"] = rooms[1].ID
	w = doRequest(t, r, http.MethodPost, "/api/timetable", adminToken, entry)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	var errResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "class already scheduled for this slot", errResp["error"])

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/timetable/class/%s", classes[0].ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details []models.TimetableEntryDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details, 1)
	assert.Equal(t, classes[0].Name, details[0].ClassName)
}

func TestRouterTeacherLessonGate(t *testing.T) {
	r, mem := newTestServer(t)
	teacherIDs := seedTeacherIDs(t, mem)
	ownID, otherID := teacherIDs[0], teacherIDs[1]

	teacherToken, resp := login(t, r, "teacher")
	assert.Equal(t, true, resp["needsTeacherSelection"])

	w := doRequest(t, r, http.MethodPost, "/api/auth/link", teacherToken, gin.H{"teacherId": ownID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	classes, err := mem.Classes.List(context.Background())
	require.NoError(t, err)
	periods, err := mem.Periods.List(context.Background())
	require.NoError(t, err)
	subjects, err := mem.Subjects.List(context.Background())
	require.NoError(t, err)
	rooms, err := mem.Rooms.List(context.Background())
	require.NoError(t, err)

	entry := gin.H{
		"dayOfWeek": 2,
		"periodId":  periods[0].ID,
		"classId":   classes[0].ID,
		"subjectId": subjects[0].ID,
		"teacherId": ownID,
		"roomId":    rooms[0].ID,
	}
	w = doRequest(t, r, http.MethodPost, "/api/timetable", teacherToken, entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A linked teacher cannot schedule lessons for a colleague.
	entry["periodId"] = periods[1].ID
	entry["teacherId"] = otherID
	w = doRequest(t, r, http.MethodPost, "/api/timetable", teacherToken, entry)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// The roster read collapses to the linked record.
	w = doRequest(t, r, http.MethodGet, "/api/teachers", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roster []models.Teacher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster, 1)
	assert.Equal(t, ownID, roster[0].ID)

	// Without a token the full roster stays public.
	w = doRequest(t, r, http.MethodGet, "/api/teachers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	assert.Len(t, roster, 12)
}

func TestRouterSubstitutionFlow(t *testing.T) {
	r, mem := newTestServer(t)
	teacherIDs := seedTeacherIDs(t, mem)

	classes, err := mem.Classes.List(context.Background())
	require.NoError(t, err)
	periods, err := mem.Periods.List(context.Background())
	require.NoError(t, err)

	payload := gin.H{
		"date":                "2026-09-07",
		"periodId":            periods[0].ID,
		"classId":             classes[0].ID,
		"originalTeacherId":   teacherIDs[0],
		"substituteTeacherId": teacherIDs[1],
		"reason":              "sick leave",
	}

	studentToken, _ := login(t, r, "student")
	w := doRequest(t, r, http.MethodPost, "/api/substitutions", studentToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	clerkToken, _ := login(t, r, "clerk")
	w = doRequest(t, r, http.MethodPost, "/api/substitutions", clerkToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/api/substitutions?date=2026-09-07", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.SubstitutionDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "clerk", subs[0].CreatedBy)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/substitutions/teacher/%s", teacherIDs[0]), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	assert.Len(t, subs, 1)
}

func TestRouterSessionLifecycle(t *testing.T) {
	r, _ := newTestServer(t)
	token, _ := login(t, r, "admin")

	w := doRequest(t, r, http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/validate", "", gin.H{
		"token":    token,
		"username": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var validated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validated))
	assert.Equal(t, true, validated["valid"])

	w = doRequest(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
