package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/daftari/apps/api/echo"
	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/calendar"
	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/dashboard"
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/grade"
	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/core/task"
	logsvc "github.com/trezcool/daftari/services/logger"
	"github.com/trezcool/daftari/storage/kv"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	storeLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	storeLogger.Enable(!conf.Debug)

	// set up store
	store, err := kv.Open(conf, storeLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			storeLogger.Fatal("Failed to close", err)
		}
	}()
	gw := kv.NewGateway(store, storeLogger)

	validate := validator.New()
	translator := core.NewTranslator()

	// set up services
	envRepo := kv.NewEnvironmentRepository(gw)
	courseSvc := course.NewService(kv.NewCourseRepository(gw), envRepo)
	gradeSvc := grade.NewService(envRepo, validate)
	gpaSvc := gpa.NewService(kv.NewYearRepository(gw), validate)
	schedSvc := schedule.NewService(kv.NewTimetableRepository(gw), validate)
	taskSvc := task.NewService(kv.NewTaskRepository(gw), validate)
	dashSvc := dashboard.NewService(schedSvc, taskSvc)

	layout := schedule.NewLayout(conf.Schedule)
	indicator, err := schedule.NewNowIndicator(layout, conf.Location, conf.Schedule.RefreshSpec, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up now indicator: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators(validate, translator)
	gpa.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)

	indicator.Start()
	defer indicator.Stop()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("storage").Set(conf.Storage.Driver)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			CourseSvc:    courseSvc,
			GradeSvc:     gradeSvc,
			GpaSvc:       gpaSvc,
			ScheduleSvc:  schedSvc,
			TaskSvc:      taskSvc,
			DashboardSvc: dashSvc,
			Indicator:    indicator,
			Layout:       layout,
			Linker:       calendar.NewLinker(conf.Calendar, conf.Location),
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
