package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/calendar"
	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/dashboard"
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/grade"
	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/core/task"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		CourseSvc    *course.Service
		GradeSvc     *grade.Service
		GpaSvc       *gpa.Service
		ScheduleSvc  *schedule.Service
		TaskSvc      *task.Service
		DashboardSvc *dashboard.Service
		Indicator    *schedule.NowIndicator
		Layout       schedule.Layout
		Linker       *calendar.Linker
		Translator   ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerCourseAPI(v1, s.deps.CourseSvc, s.deps.GradeSvc)
	registerGpaAPI(v1, s.deps.GpaSvc)
	registerScheduleAPI(v1, scheduleApi{
		svc:       s.deps.ScheduleSvc,
		indicator: s.deps.Indicator,
		layout:    s.deps.Layout,
		linker:    s.deps.Linker,
		loc:       conf.Location,
		logger:    s.deps.Logger,
	})
	registerTaskAPI(v1, s.deps.TaskSvc)
	registerDashboardAPI(v1, s.deps.DashboardSvc, conf.Location)
}

// Start blocks serving requests; a failure other than a shutdown is sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
