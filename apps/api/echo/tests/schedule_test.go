package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/daftari/apps/api/echo"
	"github.com/trezcool/daftari/core/schedule"
)

func lessonPath(day, start string, extra ...string) string {
	p := "/v1/schedule/lessons/" + url.PathEscape(day) + "/" + url.PathEscape(start)
	for _, e := range extra {
		p += "/" + e
	}
	return p
}

func Test_scheduleApi_lessons(t *testing.T) {
	app := setup(t)

	calculus := schedule.Lesson{
		LessonName: "Calculus", LessonStartTime: "9:00", LessonEndTime: "10:30",
		Building: "72", Room: "123", Day: schedule.DayMonday,
	}
	movedCalculus := calculus
	movedCalculus.LessonStartTime, movedCalculus.LessonEndTime = "12:00", "13:30"
	physics := schedule.Lesson{
		LessonName: "Physics", LessonStartTime: "10:30", LessonEndTime: "11:30",
		Building: "10", Room: "2", Day: schedule.DayMonday,
	}
	// the test server runs on UTC
	calculusLink := "https://www.google.com/calendar/render?action=TEMPLATE&text=Calculus" +
		"&dates=20240304T090000Z/20240304T103000Z" +
		"&details=Building%3A%2072%2C%20Room%3A%20123&location=72%20123"
	physicsLink := "https://www.google.com/calendar/render?action=TEMPLATE&text=Physics" +
		"&dates=20240304T103000Z/20240304T113000Z" +
		"&details=Building%3A%2010%2C%20Room%3A%202&location=10%202"

	tests := []httpTest{
		{name: "empty timetable", path: "/v1/schedule", wantData: []byte(`{}`)},
		{
			name: "add: invalid", method: http.MethodPost, path: "/v1/schedule/lessons",
			body:     []byte(`{"lessonName":"Calculus","lessonStartTime":"9:60","lessonEndTime":"10:30","day":"שבת"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"lessonStartTime": "time must be of the form H:MM",
				"day":             "day must be one of ראשון, שני, שלישי, רביעי, חמישי or שישי",
			}),
		},
		{
			name: "add: ends before start", method: http.MethodPost, path: "/v1/schedule/lessons",
			body:     []byte(`{"lessonName":"Calculus","lessonStartTime":"10:30","lessonEndTime":"9:00","day":"שני"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"lessonEndTime":"lesson must end after it starts"}`),
		},
		{
			name: "add", method: http.MethodPost, path: "/v1/schedule/lessons", body: marchallObj(t, calculus),
			wantCode: http.StatusCreated, wantData: marchallObj(t, echoapi.LessonResponse{Lesson: calculus, CalendarLink: calculusLink}),
		},
		{
			name: "add: overlap", method: http.MethodPost, path: "/v1/schedule/lessons",
			body:     []byte(`{"lessonName":"Physics","lessonStartTime":"10:00","lessonEndTime":"11:00","day":"שני"}`),
			wantCode: http.StatusConflict,
			wantData: []byte(`{"error":"lesson 10:00-11:00 on שני overlaps the lesson at 9:00-10:30","conflict":{"day":"שני","start":"9:00","end":"10:30"}}`),
		},
		{
			name: "add: back to back", method: http.MethodPost, path: "/v1/schedule/lessons",
			body:     marchallObj(t, physics),
			wantCode: http.StatusCreated, wantData: marchallObj(t, echoapi.LessonResponse{Lesson: physics, CalendarLink: physicsLink}),
		},
		{name: "calendar link", path: lessonPath(schedule.DayMonday, "9:00", "calendar"), wantData: marchallObj(t, map[string]string{"url": calculusLink})},
		{
			name: "edit: unknown", method: http.MethodPut, path: lessonPath(schedule.DayMonday, "8:00"), body: marchallObj(t, movedCalculus),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: schedule.ErrLessonNotFound.Error()}),
		},
		{
			name: "edit: into overlap", method: http.MethodPut, path: lessonPath(schedule.DayMonday, "09:00"),
			body:     []byte(`{"lessonName":"Calculus","lessonStartTime":"11:00","lessonEndTime":"12:00","day":"שני"}`),
			wantCode: http.StatusConflict,
			wantData: []byte(`{"error":"lesson 11:00-12:00 on שני overlaps the lesson at 10:30-11:30","conflict":{"day":"שני","start":"10:30","end":"11:30"}}`),
		},
		{name: "delete back to back", method: http.MethodDelete, path: lessonPath(schedule.DayMonday, "10:30"), wantCode: http.StatusNoContent},
		{
			name: "delete: unknown", method: http.MethodDelete, path: lessonPath(schedule.DayMonday, "10:30"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: schedule.ErrLessonNotFound.Error()}),
		},
		{name: "day", path: "/v1/schedule/days/" + url.PathEscape(schedule.DayMonday), wantData: marchallObj(t, []schedule.Lesson{calculus})},
		{name: "empty day", path: "/v1/schedule/days/" + url.PathEscape(schedule.DayFriday), wantData: []byte(`[]`)},
		{
			name: "unknown day", path: "/v1/schedule/days/" + url.PathEscape("שבת"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"day": schedule.ErrInvalidDay.Error()}),
		},
	}
	runTests(t, app, tests)

	// editing onto its own slot succeeds and moves the key
	rec := do(t, app, http.MethodPut, lessonPath(schedule.DayMonday, "9:00"), marchallObj(t, movedCalculus), http.StatusOK)
	var got echoapi.LessonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, movedCalculus, got.Lesson)

	rec = do(t, app, http.MethodGet, "/v1/schedule", nil, http.StatusOK)
	var tt schedule.Timetable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tt))
	assert.Equal(t, schedule.Timetable{schedule.DayMonday: {"12:00": movedCalculus}}, tt)

	// removing the last lesson of a day drops the day
	do(t, app, http.MethodDelete, lessonPath(schedule.DayMonday, "12:00"), nil, http.StatusNoContent)
	rec = do(t, app, http.MethodGet, "/v1/schedule", nil, http.StatusOK)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func Test_scheduleApi_grid(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "offset", path: "/v1/schedule/offset?start=9:00&end=10:30", wantData: []byte(`{"top":120,"height":85}`)},
		{name: "offset: minimum height", path: "/v1/schedule/offset?start=9:00&end=9:03", wantData: []byte(`{"top":120,"height":1}`)},
		{
			name: "offset: bad clock", path: "/v1/schedule/offset?start=9&end=10:00",
			wantCode: http.StatusBadRequest, wantData: []byte(`{"start":"time must be of the form H:MM"}`),
		},
		{name: "slots", path: "/v1/schedule/slots?start=9:00&end=11:15", wantData: []byte(`[9,10,11]`)},
		{name: "slots: whole hours", path: "/v1/schedule/slots?start=9:00&end=11:00", wantData: []byte(`[9,10]`)},
		{name: "slots: empty", path: "/v1/schedule/slots?start=9:00&end=9:00", wantData: []byte(`[]`)},
		{name: "now", path: "/v1/schedule/now", wantData: []byte(`{"offset":150,"visible":true,"updated":"2024-03-04T09:30:00Z"}`)},
	}
	runTests(t, app, tests)
}
