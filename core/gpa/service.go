package gpa

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
)

var (
	// errors
	ErrCourseNotFound  = errors.New("course record not found")
	ErrInvalidSemester = errors.New("semester must be one of א, ב, קורס קיץ or Yearly")
)

type (
	// Repository persists the whole year map under a single key.
	Repository interface {
		GetYears() Years
		SaveYears(years Years)
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

func (svc *Service) Years() Years {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.load()
}

// Summary returns the year's courses with its GPA, the overall GPA and the year's credits.
func (svc *Service) Summary(year int) Summary {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return summarize(svc.load(), year)
}

// BySemester returns the year's courses of semester plus its Yearly courses.
func (svc *Service) BySemester(year int, semester string) ([]Record, error) {
	semester = core.CleanString(semester)
	if !IsSemester(semester) {
		return nil, core.NewValidationError(ErrInvalidSemester, core.FieldError{Field: "semester", Error: ErrInvalidSemester.Error()})
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return BySemester(svc.load()[year], semester), nil
}

func (svc *Service) AddCourse(year int, nr NewRecord) (Summary, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Summary{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	years := svc.load()
	years[year] = append(years[year], nr.record())
	svc.repo.SaveYears(years)
	return summarize(years, year), nil
}

// EditCourse replaces the course at idx within year.
func (svc *Service) EditCourse(year, idx int, nr NewRecord) (Summary, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Summary{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	years := svc.load()
	records := years[year]
	if idx < 0 || idx >= len(records) {
		return Summary{}, ErrCourseNotFound
	}
	records[idx] = nr.record()
	svc.repo.SaveYears(years)
	return summarize(years, year), nil
}

func (svc *Service) DeleteCourse(year, idx int) (Summary, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	years := svc.load()
	records := years[year]
	if idx < 0 || idx >= len(records) {
		return Summary{}, ErrCourseNotFound
	}
	years[year] = append(records[:idx:idx], records[idx+1:]...)
	svc.repo.SaveYears(years)
	return summarize(years, year), nil
}

func (svc *Service) load() Years {
	years := svc.repo.GetYears()
	if years == nil {
		years = make(Years)
	}
	return years
}

func summarize(years Years, year int) Summary {
	records := years[year]
	if records == nil {
		records = []Record{}
	}
	return Summary{
		Year:        year,
		Courses:     records,
		YearGpa:     YearGpa(records),
		OverallGpa:  OverallGpa(years),
		YearCredits: TotalCreditsForYear(records),
	}
}
