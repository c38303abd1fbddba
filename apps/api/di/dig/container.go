package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

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

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

type serverParams struct {
	dig.In
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

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStore(conf *core.Config, loggerParam StoreLoggerParam) core.KVStore {
	store, err := kv.Open(conf, loggerParam.Logger)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	return store
}

func newGateway(store core.KVStore, loggerParam StoreLoggerParam) *kv.Gateway {
	return kv.NewGateway(store, loggerParam.Logger)
}

func newLayout(conf *core.Config) schedule.Layout {
	return schedule.NewLayout(conf.Schedule)
}

func newIndicator(conf *core.Config, layout schedule.Layout, logger core.Logger) (*schedule.NowIndicator, error) {
	return schedule.NewNowIndicator(layout, conf.Location, conf.Schedule.RefreshSpec, logger)
}

func newLinker(conf *core.Config) *calendar.Linker {
	return calendar.NewLinker(conf.Calendar, conf.Location)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		CourseSvc:    p.CourseSvc,
		GradeSvc:     p.GradeSvc,
		GpaSvc:       p.GpaSvc,
		ScheduleSvc:  p.ScheduleSvc,
		TaskSvc:      p.TaskSvc,
		DashboardSvc: p.DashboardSvc,
		Indicator:    p.Indicator,
		Layout:       p.Layout,
		Linker:       p.Linker,
		Translator:   p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newStore))
	must(c.Provide(newGateway))
	must(c.Provide(kv.NewCourseRepository))
	must(c.Provide(kv.NewEnvironmentRepository))
	must(c.Provide(kv.NewYearRepository))
	must(c.Provide(kv.NewTimetableRepository))
	must(c.Provide(kv.NewTaskRepository))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(course.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(gpa.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(task.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(newLayout))
	must(c.Provide(newIndicator))
	must(c.Provide(newLinker))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
