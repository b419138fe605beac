package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/directory"
	"github.com/skolar/timetable-api/internal/handler"
	"github.com/skolar/timetable-api/internal/repository"
	"github.com/skolar/timetable-api/internal/repository/memory"
	"github.com/skolar/timetable-api/internal/service"
	"github.com/skolar/timetable-api/internal/session"
	"github.com/skolar/timetable-api/pkg/cache"
	"github.com/skolar/timetable-api/pkg/config"
	"github.com/skolar/timetable-api/pkg/database"
	"github.com/skolar/timetable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()

	var (
		db              *sqlx.DB
		classSvc        *service.ClassService
		teacherSvc      *service.TeacherService
		roomSvc         *service.RoomService
		subjectSvc      *service.SubjectService
		periodSvc       *service.PeriodService
		timetableSvc    *service.TimetableService
		substitutionSvc *service.SubstitutionService
		authSvc         *service.AuthService
	)

	sessions := newSessionStore(cfg, logr)
	authenticator := newAuthenticator(cfg, logr)

	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck

		if err := repository.EnsureSchema(ctx, db); err != nil {
			logr.Sugar().Fatalw("failed to ensure schema", "error", err)
		}
		if cfg.Store.Seed {
			if err := repository.SeedBaseData(ctx, db); err != nil {
				logr.Sugar().Fatalw("failed to seed base data", "error", err)
			}
		}

		teacherRepo := repository.NewTeacherRepository(db)
		classSvc = service.NewClassService(repository.NewClassRepository(db), validate, logr)
		teacherSvc = service.NewTeacherService(teacherRepo, validate, logr)
		roomSvc = service.NewRoomService(repository.NewRoomRepository(db), validate, logr)
		subjectSvc = service.NewSubjectService(repository.NewSubjectRepository(db), validate, logr)
		periodSvc = service.NewPeriodService(repository.NewPeriodRepository(db), validate, logr)
		timetableSvc = service.NewTimetableService(repository.NewTimetableRepository(db), validate, logr)
		substitutionSvc = service.NewSubstitutionService(repository.NewSubstitutionRepository(db), validate, logr)
		authSvc = service.NewAuthService(authenticator, sessions, teacherRepo, validate, logr)
	default:
		mem := memory.New(cfg.Store.Seed)
		classSvc = service.NewClassService(mem.Classes, validate, logr)
		teacherSvc = service.NewTeacherService(mem.Teachers, validate, logr)
		roomSvc = service.NewRoomService(mem.Rooms, validate, logr)
		subjectSvc = service.NewSubjectService(mem.Subjects, validate, logr)
		periodSvc = service.NewPeriodService(mem.Periods, validate, logr)
		timetableSvc = service.NewTimetableService(mem.Timetable, validate, logr)
		substitutionSvc = service.NewSubstitutionService(mem.Substitutions, validate, logr)
		authSvc = service.NewAuthService(authenticator, sessions, mem.Teachers, validate, logr)
	}

	metricsSvc := service.NewMetricsService()

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Class:        handler.NewClassHandler(classSvc),
		Teacher:      handler.NewTeacherHandler(teacherSvc),
		Room:         handler.NewRoomHandler(roomSvc),
		Subject:      handler.NewSubjectHandler(subjectSvc),
		Period:       handler.NewPeriodHandler(periodSvc),
		Timetable:    handler.NewTimetableHandler(timetableSvc, metricsSvc),
		Substitution: handler.NewSubstitutionHandler(substitutionSvc),
		Metrics:      handler.NewMetricsHandler(metricsSvc, db),
	}

	r := handler.NewRouter(cfg, logr, handlers, sessions, metricsSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting",
			"addr", srv.Addr,
			"env", cfg.Env,
			"store", cfg.Store.Backend,
			"sessions", cfg.Session.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func newSessionStore(cfg *config.Config, logr *zap.Logger) session.Store {
	if cfg.Session.Backend == "redis" {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		return session.NewRedisStore(client, cfg.Session.Lifetime, logr)
	}
	return session.NewMemoryStore(cfg.Session.Lifetime, logr)
}

func newAuthenticator(cfg *config.Config, logr *zap.Logger) directory.Authenticator {
	if cfg.LDAP.Enabled {
		return directory.NewLDAPAuthenticator(cfg.LDAP, logr)
	}
	logr.Sugar().Warnw("directory disabled, using built-in test users")
	return directory.NewTestAuthenticator()
}
