package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/daftari/apps/api/echo"
	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/calendar"
	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/dashboard"
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/grade"
	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/core/task"
	"github.com/trezcool/daftari/storage/kv"
	"github.com/trezcool/daftari/tests"
)

// monday 9:30 UTC
var now = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

type testApp struct {
	*Server
	logger *testutil.Logger
}

func setup(t *testing.T) testApp {
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = time.Now })

	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Daftari",
		Location: time.UTC,
		Server:   core.ServerConfig{DisableReqLogs: true},
		Schedule: core.ScheduleConfig{OriginHour: 7, WindowMinutes: 660, GutterMinutes: 5, MinBlockMinutes: 1, RefreshSpec: "@every 1m"},
		Calendar: core.CalendarConfig{BaseURL: "https://www.google.com/calendar/render"},
	}

	// set up store & repos
	gw, _, logger := testutil.NewGateway(t)
	validate, translator := testutil.NewValidate()

	// set up services
	envRepo := kv.NewEnvironmentRepository(gw)
	courseSvc := course.NewService(kv.NewCourseRepository(gw), envRepo)
	gradeSvc := grade.NewService(envRepo, validate)
	gpaSvc := gpa.NewService(kv.NewYearRepository(gw), validate)
	schedSvc := schedule.NewService(kv.NewTimetableRepository(gw), validate)
	taskSvc := task.NewService(kv.NewTaskRepository(gw), validate)
	layout := schedule.NewLayout(conf.Schedule)
	indicator, err := schedule.NewNowIndicator(layout, conf.Location, conf.Schedule.RefreshSpec, logger)
	if err != nil {
		t.Fatalf("NewNowIndicator(): %v", err)
	}

	// set up server
	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		CourseSvc:    courseSvc,
		GradeSvc:     gradeSvc,
		GpaSvc:       gpaSvc,
		ScheduleSvc:  schedSvc,
		TaskSvc:      taskSvc,
		DashboardSvc: dashboard.NewService(schedSvc, taskSvc),
		Indicator:    indicator,
		Layout:       layout,
		Linker:       calendar.NewLinker(conf.Calendar, conf.Location),
		Translator:   translator,
	})
	return testApp{Server: server, logger: logger}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do sends a request and fails the test unless it answers wantCode.
func do(t *testing.T, app testApp, method, path string, body []byte, wantCode int) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newRequest(method, path, body)
	app.ServeHTTP(rec, req)
	if rec.Code != wantCode {
		t.Fatalf("%s %s: code = %v; wantCode %v; body %s", method, path, rec.Code, wantCode, rec.Body.String())
	}
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.Bytes())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
