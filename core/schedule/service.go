package schedule

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
)

var (
	// errors
	ErrLessonNotFound = errors.New("lesson not found")
	ErrInvalidDay     = errors.New("day must be one of ראשון, שני, שלישי, רביעי, חמישי or שישי")
)

type (
	// Repository persists the whole timetable under a single key.
	Repository interface {
		GetTimetable() Timetable
		SaveTimetable(tt Timetable)
	}

	Service struct {
		mu       sync.Mutex
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Timetable() Timetable {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.load()
}

func (svc *Service) Day(day string) ([]Lesson, error) {
	day = core.CleanString(day)
	if !IsDay(day) {
		return nil, core.NewValidationError(ErrInvalidDay, core.FieldError{Field: "day", Error: ErrInvalidDay.Error()})
	}
	return svc.Timetable().Lessons(day), nil
}

// AddLesson stores a new lesson; it fails with a *core.OverlapError when the lesson
// intersects another lesson of the same day.
func (svc *Service) AddLesson(nl NewLesson) (Lesson, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Lesson{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	tt := svc.load()
	l := nl.lesson()
	if err := tt.Insert(l); err != nil {
		return Lesson{}, err
	}
	svc.repo.SaveTimetable(tt)
	return l, nil
}

// EditLesson removes the lesson at (oldDay, oldStart) then inserts the updated one,
// so the edited lesson never collides with itself. Nothing is saved when the insert fails.
func (svc *Service) EditLesson(oldDay, oldStart string, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Lesson{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	tt := svc.load()
	if _, ok := tt.Remove(core.CleanString(oldDay), normalizeClock(oldStart)); !ok {
		return Lesson{}, ErrLessonNotFound
	}
	l := nl.lesson()
	if err := tt.Insert(l); err != nil {
		return Lesson{}, err
	}
	svc.repo.SaveTimetable(tt)
	return l, nil
}

func (svc *Service) DeleteLesson(day, start string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	tt := svc.load()
	if _, ok := tt.Remove(core.CleanString(day), normalizeClock(start)); !ok {
		return ErrLessonNotFound
	}
	svc.repo.SaveTimetable(tt)
	return nil
}

func (svc *Service) Lesson(day, start string) (Lesson, error) {
	day, start = core.CleanString(day), normalizeClock(start)
	l, ok := svc.Timetable()[day][start]
	if !ok {
		return Lesson{}, ErrLessonNotFound
	}
	return l.keyed(day, start), nil
}

// Upcoming returns today's lessons starting within the next withinHours hours.
func (svc *Service) Upcoming(now time.Time, withinHours int) []Lesson {
	return Upcoming(svc.Timetable(), now, withinHours)
}

func (svc *Service) load() Timetable {
	tt := svc.repo.GetTimetable()
	if tt == nil {
		return make(Timetable)
	}
	return tt.Clone()
}
