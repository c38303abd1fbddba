package schedule

import (
	"time"

	"github.com/trezcool/daftari/core"
)

// Layout describes the visible day grid.
type Layout struct {
	OriginHour      int // first visible hour
	WindowMinutes   int // visible span after the origin
	GutterMinutes   int // subtracted from every block height
	MinBlockMinutes int // smallest rendered block height
}

var DefaultLayout = Layout{OriginHour: 7, WindowMinutes: 660, GutterMinutes: 5, MinBlockMinutes: 1}

// NewLayout builds a Layout from the schedule configuration.
func NewLayout(conf core.ScheduleConfig) Layout {
	return Layout{
		OriginHour:      conf.OriginHour,
		WindowMinutes:   conf.WindowMinutes,
		GutterMinutes:   conf.GutterMinutes,
		MinBlockMinutes: conf.MinBlockMinutes,
	}
}

// LessonBlockOffset places a lesson on the grid.
// Top is measured from the origin hour; Height is the duration minus the gutter, never below MinBlockMinutes.
func (lay Layout) LessonBlockOffset(start, end string) (Block, error) {
	s, err := core.ParseClock(start)
	if err != nil {
		return Block{}, core.NewValidationError(err, core.FieldError{Field: "start", Error: err.Error()})
	}
	e, err := core.ParseClock(end)
	if err != nil {
		return Block{}, core.NewValidationError(err, core.FieldError{Field: "end", Error: err.Error()})
	}
	height := (e - s) - lay.GutterMinutes
	if height < lay.MinBlockMinutes {
		height = lay.MinBlockMinutes
	}
	return Block{Top: s - lay.OriginHour*60, Height: height}, nil
}

// CurrentTimeOffset returns the minutes between the origin hour and now, or false when now is outside the window.
func (lay Layout) CurrentTimeOffset(now time.Time) (int, bool) {
	pos := now.Hour()*60 + now.Minute() - lay.OriginHour*60
	if pos < 0 || pos > lay.WindowMinutes {
		return 0, false
	}
	return pos, true
}

// TimeSlots lists the whole hours a lesson spans: every hour from start up to end,
// plus the end hour itself when the lesson ends past it.
func TimeSlots(start, end string) ([]int, error) {
	s, err := core.ParseClock(start)
	if err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "start", Error: err.Error()})
	}
	e, err := core.ParseClock(end)
	if err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "end", Error: err.Error()})
	}
	var slots []int
	for h := s / 60; h < e/60; h++ {
		slots = append(slots, h)
	}
	if e%60 > 0 {
		slots = append(slots, e/60)
	}
	return slots, nil
}

// Upcoming returns today's lessons starting within the next withinHours hours (by hour), ordered by start.
func Upcoming(tt Timetable, now time.Time, withinHours int) []Lesson {
	day, ok := DayOf(now)
	if !ok {
		return []Lesson{}
	}
	hour := now.Hour()
	out := make([]Lesson, 0)
	for _, l := range tt.Lessons(day) {
		s, _ := l.interval()
		if h := s / 60; h >= hour && h <= hour+withinHours {
			out = append(out, l)
		}
	}
	return out
}
