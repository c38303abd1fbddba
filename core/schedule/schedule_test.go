package schedule

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/daftari/core"
)

type memRepo struct {
	sync.Mutex
	data  []byte
	saves int
}

var _ Repository = (*memRepo)(nil) // interface compliance check

// the timetable goes through JSON like it does in the KV store
func (r *memRepo) GetTimetable() Timetable {
	r.Lock()
	defer r.Unlock()
	tt := make(Timetable)
	if r.data != nil {
		_ = json.Unmarshal(r.data, &tt)
	}
	return tt
}

func (r *memRepo) SaveTimetable(tt Timetable) {
	r.Lock()
	defer r.Unlock()
	r.data, _ = json.Marshal(tt)
	r.saves++
}

func setup() (*Service, *memRepo) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	repo := &memRepo{}
	return NewService(repo, validate), repo
}

func newLesson(day, start, end string) NewLesson {
	return NewLesson{LessonName: "Calculus", LessonStartTime: start, LessonEndTime: end, Building: "72", Room: "123", Day: day}
}

func TestService_AddLesson_overlap(t *testing.T) {
	svc, repo := setup()

	_, err := svc.AddLesson(newLesson(DayMonday, "10:00", "11:00"))
	require.NoError(t, err)

	tests := []struct {
		name        string
		lesson      NewLesson
		wantOverlap bool
	}{
		{name: "starts inside", lesson: newLesson(DayMonday, "10:30", "11:30"), wantOverlap: true},
		{name: "ends inside", lesson: newLesson(DayMonday, "9:30", "10:01"), wantOverlap: true},
		{name: "encloses", lesson: newLesson(DayMonday, "9:00", "12:00"), wantOverlap: true},
		{name: "enclosed", lesson: newLesson(DayMonday, "10:15", "10:45"), wantOverlap: true},
		{name: "same interval", lesson: newLesson(DayMonday, "10:00", "11:00"), wantOverlap: true},
		{name: "padded start key", lesson: newLesson(DayMonday, "09:59", "10:30"), wantOverlap: true},
		{name: "other day", lesson: newLesson(DayTuesday, "10:30", "11:30")},
		{name: "touching after", lesson: newLesson(DayMonday, "11:00", "12:00")},
		{name: "touching before", lesson: newLesson(DayMonday, "9:00", "10:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := repo.saves
			_, err := svc.AddLesson(tt.lesson)
			if tt.wantOverlap {
				assert.True(t, core.IsOverlap(err), "AddLesson() error = %v, want overlap", err)
				assert.Equal(t, before, repo.saves, "nothing must be saved on overlap")
				return
			}
			assert.NoError(t, err)
		})
	}

	lessons, err := svc.Day(DayMonday)
	require.NoError(t, err)
	var starts []string
	for _, l := range lessons {
		starts = append(starts, l.LessonStartTime)
	}
	assert.Equal(t, []string{"9:00", "10:00", "11:00"}, starts)
}

func TestService_AddLesson_invalid(t *testing.T) {
	svc, _ := setup()

	tests := []struct {
		name   string
		lesson NewLesson
	}{
		{name: "missing name", lesson: NewLesson{LessonStartTime: "8:00", LessonEndTime: "9:00", Day: DaySunday}},
		{name: "missing start", lesson: NewLesson{LessonName: "x", LessonEndTime: "9:00", Day: DaySunday}},
		{name: "missing end", lesson: NewLesson{LessonName: "x", LessonStartTime: "8:00", Day: DaySunday}},
		{name: "missing day", lesson: NewLesson{LessonName: "x", LessonStartTime: "8:00", LessonEndTime: "9:00"}},
		{name: "saturday", lesson: newLesson("שבת", "8:00", "9:00")},
		{name: "bad clock", lesson: newLesson(DaySunday, "8h00", "9:00")},
		{name: "end before start", lesson: newLesson(DaySunday, "9:00", "8:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddLesson(tt.lesson)
			var vErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &vErrs), "AddLesson() error = %v, want validation errors", err)
		})
	}
}

func TestService_EditLesson(t *testing.T) {
	svc, repo := setup()
	_, err := svc.AddLesson(newLesson(DayMonday, "10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.AddLesson(newLesson(DayMonday, "12:00", "13:00"))
	require.NoError(t, err)

	// same start and end must not collide with itself
	l, err := svc.EditLesson(DayMonday, "10:00", newLesson(DayMonday, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, "10:00", l.LessonStartTime)

	// moving onto another lesson fails and leaves the timetable untouched
	before := repo.saves
	_, err = svc.EditLesson(DayMonday, "10:00", newLesson(DayMonday, "12:30", "13:30"))
	assert.True(t, core.IsOverlap(err))
	assert.Equal(t, before, repo.saves)
	assert.Contains(t, svc.Timetable()[DayMonday], "10:00")

	// moving to another day drops the emptied key
	_, err = svc.EditLesson(DayMonday, "12:00", newLesson(DayWednesday, "8:00", "9:30"))
	require.NoError(t, err)
	_, err = svc.EditLesson(DayMonday, "10:00", newLesson(DayWednesday, "10:00", "11:00"))
	require.NoError(t, err)
	tt := svc.Timetable()
	assert.NotContains(t, tt, DayMonday)
	assert.Len(t, tt[DayWednesday], 2)

	_, err = svc.EditLesson(DayMonday, "10:00", newLesson(DayMonday, "10:00", "11:00"))
	assert.Equal(t, ErrLessonNotFound, err)
}

func TestService_DeleteLesson(t *testing.T) {
	svc, repo := setup()
	_, err := svc.AddLesson(newLesson(DayThursday, "8:00", "9:00"))
	require.NoError(t, err)
	_, err = svc.AddLesson(newLesson(DayFriday, "8:00", "9:00"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(DayThursday, "08:00"))
	assert.Equal(t, ErrLessonNotFound, svc.DeleteLesson(DayThursday, "8:00"))

	// the day key must be absent after a serialize/deserialize round trip
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(repo.data, &raw))
	assert.NotContains(t, raw, DayThursday)
	assert.Contains(t, raw, DayFriday)
}

func TestService_Lesson(t *testing.T) {
	svc, _ := setup()
	_, err := svc.AddLesson(newLesson(DaySunday, "09:30", "11:00"))
	require.NoError(t, err)

	l, err := svc.Lesson(DaySunday, "9:30")
	require.NoError(t, err)
	assert.Equal(t, "11:00", l.LessonEndTime)

	_, err = svc.Lesson(DaySunday, "10:00")
	assert.Equal(t, ErrLessonNotFound, err)
}

func TestService_Lesson_keysFillMissingFields(t *testing.T) {
	svc, repo := setup()
	// documents saved without day or start
	repo.data = []byte(`{"שני":{"9:00":{"lessonName":"Calculus","lessonEndTime":"10:30"}}}`)

	l, err := svc.Lesson(DayMonday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, Lesson{LessonName: "Calculus", LessonStartTime: "9:00", LessonEndTime: "10:30", Day: DayMonday}, l)
	assert.Equal(t, []Lesson{l}, svc.Timetable().Lessons(DayMonday))
}

func TestLayout_LessonBlockOffset(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       Block
		wantErr    bool
	}{
		{name: "one hour", start: "9:00", end: "10:00", want: Block{Top: 120, Height: 55}},
		{name: "origin", start: "7:00", end: "7:45", want: Block{Top: 0, Height: 40}},
		{name: "minutes", start: "8:15", end: "9:45", want: Block{Top: 75, Height: 85}},
		{name: "before origin", start: "6:30", end: "7:30", want: Block{Top: -30, Height: 55}},
		{name: "shorter than gutter", start: "9:00", end: "9:03", want: Block{Top: 120, Height: 1}},
		{name: "gutter long", start: "9:00", end: "9:05", want: Block{Top: 120, Height: 1}},
		{name: "bad start", start: "x", end: "9:05", wantErr: true},
		{name: "bad end", start: "9:00", end: "25:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultLayout.LessonBlockOffset(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LessonBlockOffset() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_CurrentTimeOffset(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 30, 0, time.UTC) }

	tests := []struct {
		name        string
		now         time.Time
		want        int
		wantVisible bool
	}{
		{name: "origin", now: at(7, 0), want: 0, wantVisible: true},
		{name: "minute before origin", now: at(6, 59)},
		{name: "midday", now: at(12, 30), want: 330, wantVisible: true},
		{name: "end of window", now: at(18, 0), want: 660, wantVisible: true},
		{name: "minute after window", now: at(18, 1)},
		{name: "midnight", now: at(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, visible := DefaultLayout.CurrentTimeOffset(tt.now)
			assert.Equal(t, tt.wantVisible, visible)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeSlots(t *testing.T) {
	tests := []struct {
		start, end string
		want       []int
	}{
		{start: "9:00", end: "10:00", want: []int{9}},
		{start: "9:00", end: "11:30", want: []int{9, 10, 11}},
		{start: "9:30", end: "10:15", want: []int{9, 10}},
		{start: "9:10", end: "9:50", want: []int{9}},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got, err := TimeSlots(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpcoming(t *testing.T) {
	tt := make(Timetable)
	for _, l := range []Lesson{
		{LessonName: "early", LessonStartTime: "8:00", LessonEndTime: "9:00", Day: DayMonday},
		{LessonName: "now", LessonStartTime: "10:00", LessonEndTime: "11:00", Day: DayMonday},
		{LessonName: "later", LessonStartTime: "14:30", LessonEndTime: "15:00", Day: DayMonday},
		{LessonName: "too late", LessonStartTime: "15:00", LessonEndTime: "16:00", Day: DayMonday},
		{LessonName: "other day", LessonStartTime: "11:00", LessonEndTime: "12:00", Day: DayTuesday},
	} {
		require.NoError(t, tt.Insert(l))
	}

	monday := time.Date(2024, 3, 4, 10, 40, 0, 0, time.UTC)
	var got []string
	for _, l := range Upcoming(tt, monday, 4) {
		got = append(got, l.LessonName)
	}
	assert.Equal(t, []string{"now", "later"}, got)

	saturday := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Empty(t, Upcoming(tt, saturday, 4))
}

func TestDayOf(t *testing.T) {
	day, ok := DayOf(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)) // Sunday
	assert.True(t, ok)
	assert.Equal(t, DaySunday, day)

	_, ok = DayOf(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) // Saturday
	assert.False(t, ok)
}

func TestNowIndicator(t *testing.T) {
	defer func() { core.NowFunc = time.Now }()
	core.NowFunc = func() time.Time { return time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC) }

	ind, err := NewNowIndicator(DefaultLayout, time.UTC, "@every 1m", nil)
	require.NoError(t, err)
	ind.Start()
	defer ind.Stop()

	offset, visible := ind.Offset()
	assert.True(t, visible)
	assert.Equal(t, 90, offset)

	core.NowFunc = func() time.Time { return time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC) }
	ind.Refresh()
	_, visible = ind.Offset()
	assert.False(t, visible)

	_, err = NewNowIndicator(DefaultLayout, time.UTC, "every minute", nil)
	assert.Error(t, err)
}
