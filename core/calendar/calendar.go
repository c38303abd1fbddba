// Package calendar builds "add to calendar" deep links for timetable lessons.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/schedule"
)

const stampLayout = "20060102T150405Z"

var ErrInvalidDay = errors.New("day must be one of ראשון, שני, שלישי, רביעי, חמישי or שישי")

type Event struct {
	Title    string
	Day      string
	Start    string // H:MM
	End      string // H:MM
	Building string
	Room     string
}

// EventFromLesson maps a timetable lesson to an Event.
func EventFromLesson(l schedule.Lesson) Event {
	return Event{
		Title:    l.LessonName,
		Day:      l.Day,
		Start:    l.LessonStartTime,
		End:      l.LessonEndTime,
		Building: l.Building,
		Room:     l.Room,
	}
}

// NextDate returns midnight of the nearest date falling on day, today included.
func NextDate(day string, today time.Time) (time.Time, error) {
	idx := schedule.DayIndex(day)
	if idx < 0 {
		return time.Time{}, core.NewValidationError(ErrInvalidDay, core.FieldError{Field: "day", Error: ErrInvalidDay.Error()})
	}
	diff := idx - int(today.Weekday())
	if diff < 0 {
		diff += 7
	}
	y, m, d := today.Date()
	return time.Date(y, m, d+diff, 0, 0, 0, 0, today.Location()), nil
}

// FormatUTC formats t as YYYYMMDDTHHMMSSZ in UTC.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

type Linker struct {
	baseURL string
	loc     *time.Location
}

func NewLinker(conf core.CalendarConfig, loc *time.Location) *Linker {
	if loc == nil {
		loc = time.Local
	}
	return &Linker{baseURL: conf.BaseURL, loc: loc}
}

// Dates resolves the event's start and end on its next occurrence after today, in the linker's location.
func (lk *Linker) Dates(ev Event, today time.Time) (time.Time, time.Time, error) {
	date, err := NextDate(ev.Day, today.In(lk.loc))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := core.ParseClock(ev.Start)
	if err != nil {
		return time.Time{}, time.Time{}, core.NewValidationError(err, core.FieldError{Field: "start", Error: err.Error()})
	}
	end, err := core.ParseClock(ev.End)
	if err != nil {
		return time.Time{}, time.Time{}, core.NewValidationError(err, core.FieldError{Field: "end", Error: err.Error()})
	}
	return at(date, start), at(date, end), nil
}

func at(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location())
}

// Link builds the template deep link of ev.
func (lk *Linker) Link(ev Event, today time.Time) (string, error) {
	start, end, err := lk.Dates(ev, today)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s?action=TEMPLATE&text=%s&dates=%s/%s&details=%s&location=%s",
		lk.baseURL,
		escape(ev.Title),
		FormatUTC(start), FormatUTC(end),
		escape(fmt.Sprintf("Building: %s, Room: %s", ev.Building, ev.Room)),
		escape(ev.Building+" "+ev.Room),
	), nil
}

// escape percent-encodes s for a query value, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
