package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/calendar"
	"github.com/trezcool/daftari/core/schedule"
)

type scheduleApi struct {
	svc       *schedule.Service
	indicator *schedule.NowIndicator
	layout    schedule.Layout
	linker    *calendar.Linker
	loc       *time.Location
	logger    core.Logger
}

func registerScheduleAPI(g *echo.Group, api scheduleApi) {
	sg := g.Group("/schedule")
	sg.GET("", api.timetable)
	sg.GET("/days/:weekday", api.day)
	sg.GET("/now", api.now)
	sg.GET("/offset", api.offset)
	sg.GET("/slots", api.slots)

	lg := sg.Group("/lessons")
	lg.POST("", api.addLesson)
	lg.GET("/:weekday/:start/calendar", api.calendarLink)
	lg.PUT("/:weekday/:start", api.editLesson)
	lg.DELETE("/:weekday/:start", api.deleteLesson)
}

// Handlers

func (api *scheduleApi) timetable(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Timetable())
}

func (api *scheduleApi) day(ctx echo.Context) error {
	lessons, err := api.svc.Day(ctx.Param("weekday"))
	if err != nil {
		return errors.Wrap(err, "listing lessons")
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *scheduleApi) addLesson(ctx echo.Context) error {
	var data schedule.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	l, err := api.svc.AddLesson(data)
	if err != nil {
		return errors.Wrap(err, "adding lesson")
	}
	return ctx.JSON(http.StatusCreated, LessonResponse{Lesson: l, CalendarLink: api.link(l)})
}

func (api *scheduleApi) editLesson(ctx echo.Context) error {
	var data schedule.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	l, err := api.svc.EditLesson(ctx.Param("weekday"), ctx.Param("start"), data)
	if err != nil {
		return errors.Wrap(err, "editing lesson")
	}
	return ctx.JSON(http.StatusOK, LessonResponse{Lesson: l, CalendarLink: api.link(l)})
}

func (api *scheduleApi) deleteLesson(ctx echo.Context) error {
	if err := api.svc.DeleteLesson(ctx.Param("weekday"), ctx.Param("start")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *scheduleApi) calendarLink(ctx echo.Context) error {
	l, err := api.svc.Lesson(ctx.Param("weekday"), ctx.Param("start"))
	if err != nil {
		return errors.Wrap(err, "finding lesson")
	}
	link, err := api.linker.Link(calendar.EventFromLesson(l), core.NowFunc())
	if err != nil {
		return errors.Wrap(err, "building calendar link")
	}
	return ctx.JSON(http.StatusOK, CalendarResponse{URL: link})
}

// link builds the calendar link of a saved lesson; a failure is logged and yields "".
func (api *scheduleApi) link(l schedule.Lesson) string {
	link, err := api.linker.Link(calendar.EventFromLesson(l), core.NowFunc())
	if err != nil {
		api.logger.Warn("calendar link failed", err, map[string]interface{}{"day": l.Day, "start": l.LessonStartTime})
		return ""
	}
	return link
}

func (api *scheduleApi) now(ctx echo.Context) error {
	if api.indicator.Updated().IsZero() {
		api.indicator.Refresh()
	}
	offset, visible := api.indicator.Offset()
	return ctx.JSON(http.StatusOK, NowResponse{
		Offset:  offset,
		Visible: visible,
		Updated: api.indicator.Updated(),
	})
}

func (api *scheduleApi) offset(ctx echo.Context) error {
	block, err := api.layout.LessonBlockOffset(ctx.QueryParam("start"), ctx.QueryParam("end"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, block)
}

func (api *scheduleApi) slots(ctx echo.Context) error {
	slots, err := schedule.TimeSlots(ctx.QueryParam("start"), ctx.QueryParam("end"))
	if err != nil {
		return err
	}
	if slots == nil {
		slots = []int{}
	}
	return ctx.JSON(http.StatusOK, slots)
}

type (
	LessonResponse struct {
		Lesson       schedule.Lesson `json:"lesson"`
		CalendarLink string          `json:"calendar_link"`
	}

	CalendarResponse struct {
		URL string `json:"url"`
	}

	NowResponse struct {
		Offset  int       `json:"offset"`
		Visible bool      `json:"visible"`
		Updated time.Time `json:"updated"`
	}
)
