package schedule

import (
	"sort"

	"github.com/trezcool/daftari/core"
)

// overlaps reports whether the half-open intervals [s1, e1) and [s2, e2) intersect.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// Clone returns a deep copy of tt.
func (tt Timetable) Clone() Timetable {
	out := make(Timetable, len(tt))
	for day, lessons := range tt {
		dl := make(map[string]Lesson, len(lessons))
		for k, l := range lessons {
			dl[k] = l
		}
		out[day] = dl
	}
	return out
}

// Conflict returns the lesson of the same day whose interval intersects l, if any.
func (tt Timetable) Conflict(l Lesson) (Lesson, bool) {
	start, end := l.interval()
	for _, ex := range tt.Lessons(l.Day) {
		exStart, exEnd := ex.interval()
		if overlaps(start, end, exStart, exEnd) {
			return ex, true
		}
	}
	return Lesson{}, false
}

// Insert stores l under its day and start time, unless it overlaps another lesson of that day.
func (tt Timetable) Insert(l Lesson) error {
	if ex, found := tt.Conflict(l); found {
		return &core.OverlapError{
			Day:           l.Day,
			Start:         l.LessonStartTime,
			End:           l.LessonEndTime,
			ConflictStart: ex.LessonStartTime,
			ConflictEnd:   ex.LessonEndTime,
		}
	}
	if tt[l.Day] == nil {
		tt[l.Day] = make(map[string]Lesson)
	}
	tt[l.Day][l.LessonStartTime] = l
	return nil
}

// Remove deletes the lesson at (day, start) and drops the day once it holds no lessons.
func (tt Timetable) Remove(day, start string) (Lesson, bool) {
	lessons, ok := tt[day]
	if !ok {
		return Lesson{}, false
	}
	l, ok := lessons[start]
	if !ok {
		return Lesson{}, false
	}
	delete(lessons, start)
	if len(lessons) == 0 {
		delete(tt, day)
	}
	return l, true
}

// Lessons returns the lessons of day ordered by start time.
// keyed fills the day and start a stored lesson may lack from its map keys.
func (l Lesson) keyed(day, start string) Lesson {
	if l.Day == "" {
		l.Day = day
	}
	if l.LessonStartTime == "" {
		l.LessonStartTime = start
	}
	return l
}

func (tt Timetable) Lessons(day string) []Lesson {
	lessons := make([]Lesson, 0, len(tt[day]))
	for k, l := range tt[day] {
		lessons = append(lessons, l.keyed(day, k))
	}
	sort.Slice(lessons, func(i, j int) bool {
		si, _ := lessons[i].interval()
		sj, _ := lessons[j].interval()
		return si < sj
	})
	return lessons
}
