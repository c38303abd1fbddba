package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

// Days of the week, Sunday to Friday.
const (
	DaySunday    = "ראשון"
	DayMonday    = "שני"
	DayTuesday   = "שלישי"
	DayWednesday = "רביעי"
	DayThursday  = "חמישי"
	DayFriday    = "שישי"
)

// Days are ordered so that Days[i] is the name of time.Weekday(i).
var Days = []string{DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}

func IsDay(day string) bool {
	return DayIndex(day) >= 0
}

// DayIndex returns the time.Weekday number of day, or -1.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// DayOf returns the day name of t; false on Saturday.
func DayOf(t time.Time) (string, bool) {
	wd := int(t.Weekday())
	if wd >= len(Days) {
		return "", false
	}
	return Days[wd], true
}

type Lesson struct {
	LessonName      string `json:"lessonName"`
	LessonStartTime string `json:"lessonStartTime"`
	LessonEndTime   string `json:"lessonEndTime"`
	Building        string `json:"building"`
	Room            string `json:"room"`
	Day             string `json:"day"`
}

// interval returns the lesson's [start, end) in minutes since midnight.
func (l Lesson) interval() (int, int) {
	start, _ := core.ParseClock(l.LessonStartTime)
	end, _ := core.ParseClock(l.LessonEndTime)
	return start, end
}

// Timetable maps a day to its lessons keyed by "H:MM" start time.
type Timetable map[string]map[string]Lesson

// NewLesson contains information needed to add or replace a Lesson.
type NewLesson struct {
	LessonName      string `json:"lessonName" validate:"required,notblank"`
	LessonStartTime string `json:"lessonStartTime" validate:"required,clock"`
	LessonEndTime   string `json:"lessonEndTime" validate:"required,clock"`
	Building        string `json:"building"`
	Room            string `json:"room"`
	Day             string `json:"day" validate:"required,weekday"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.LessonName = core.CleanString(nl.LessonName)
	nl.Building = core.CleanString(nl.Building)
	nl.Room = core.CleanString(nl.Room)
	nl.Day = core.CleanString(nl.Day)
	nl.LessonStartTime = normalizeClock(nl.LessonStartTime)
	nl.LessonEndTime = normalizeClock(nl.LessonEndTime)
	return validate.Struct(nl)
}

func (nl NewLesson) lesson() Lesson {
	return Lesson{
		LessonName:      nl.LessonName,
		LessonStartTime: nl.LessonStartTime,
		LessonEndTime:   nl.LessonEndTime,
		Building:        nl.Building,
		Room:            nl.Room,
		Day:             nl.Day,
	}
}

// normalizeClock rewrites "09:05" as "9:05" so a start time maps to a single key.
func normalizeClock(s string) string {
	s = core.CleanString(s)
	if m, err := core.ParseClock(s); err == nil {
		return core.FormatClock(m)
	}
	return s
}

// Block is the vertical placement of a lesson, in minutes from the top of the day grid.
type Block struct {
	Top    int `json:"top"`
	Height int `json:"height"`
}
