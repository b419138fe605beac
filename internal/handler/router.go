package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/middleware"
	"github.com/skolar/timetable-api/internal/service"
	"github.com/skolar/timetable-api/internal/session"
	"github.com/skolar/timetable-api/pkg/config"
	"github.com/skolar/timetable-api/pkg/logger"
	corsmiddleware "github.com/skolar/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/skolar/timetable-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler wired into the router.
type Handlers struct {
	Auth         *AuthHandler
	Class        *ClassHandler
	Teacher      *TeacherHandler
	Room         *RoomHandler
	Subject      *SubjectHandler
	Period       *PeriodHandler
	Timetable    *TimetableHandler
	Substitution *SubstitutionHandler
	Metrics      *MetricsHandler
}

// NewRouter builds the gin engine with the full route table. Reads are
// public; reference-entity writes need admin, timetable writes go through
// the per-lesson check, substitution writes need editor rights.
func NewRouter(cfg *config.Config, logr *zap.Logger, h Handlers, sessions session.Store, metrics *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(cfg.APIPrefix)

	authed := middleware.Auth(sessions)
	admin := middleware.RequireAdmin()
	editor := middleware.RequireEditor()

	api.POST("/ldap/auth", h.Auth.Login)

	auth := api.Group("/auth")
	{
		auth.POST("/validate", h.Auth.Validate)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", authed, h.Auth.Session)
		auth.POST("/link", authed, h.Auth.Link)
		auth.DELETE("/link", authed, h.Auth.Unlink)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", h.Class.List)
		classes.POST("", authed, admin, h.Class.Create)
		classes.PUT("/:id", authed, admin, h.Class.Update)
		classes.DELETE("/:id", authed, admin, h.Class.Delete)
	}

	// The roster read carries OptionalAuth so teacher-only callers see
	// just their own record once linked.
	teachers := api.Group("/teachers")
	{
		teachers.GET("", middleware.OptionalAuth(sessions), h.Teacher.List)
		teachers.POST("", authed, admin, h.Teacher.Create)
		teachers.PUT("/:id", authed, admin, h.Teacher.Update)
		teachers.DELETE("/:id", authed, admin, h.Teacher.Delete)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("", h.Room.List)
		rooms.POST("", authed, admin, h.Room.Create)
		rooms.PUT("/:id", authed, admin, h.Room.Update)
		rooms.DELETE("/:id", authed, admin, h.Room.Delete)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", h.Subject.List)
		subjects.POST("", authed, admin, h.Subject.Create)
		subjects.PUT("/:id", authed, admin, h.Subject.Update)
		subjects.DELETE("/:id", authed, admin, h.Subject.Delete)
	}

	periods := api.Group("/periods")
	{
		periods.GET("", h.Period.List)
		periods.POST("", authed, admin, h.Period.Create)
		periods.PUT("/:id", authed, admin, h.Period.Update)
		periods.DELETE("/:id", authed, admin, h.Period.Delete)
	}

	timetable := api.Group("/timetable")
	{
		timetable.GET("/class/:classId", h.Timetable.ListByClass)
		timetable.GET("/teacher/:teacherId", h.Timetable.ListByTeacher)
		timetable.GET("/room/:roomId", h.Timetable.ListByRoom)
		timetable.POST("", authed, h.Timetable.Create)
		timetable.PUT("/:id", authed, h.Timetable.Update)
		timetable.DELETE("/:id", authed, h.Timetable.Delete)
	}

	substitutions := api.Group("/substitutions")
	{
		substitutions.GET("", h.Substitution.List)
		substitutions.GET("/class/:classId/:date", h.Substitution.ListByClass)
		substitutions.GET("/teacher/:teacherId", h.Substitution.ListByTeacher)
		substitutions.POST("", authed, editor, h.Substitution.Create)
		substitutions.PUT("/:id", authed, editor, h.Substitution.Update)
		substitutions.DELETE("/:id", authed, editor, h.Substitution.Delete)
	}

	return r
}
