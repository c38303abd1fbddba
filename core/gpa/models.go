package gpa

import (
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

// Semesters
const (
	SemesterA      = "א"
	SemesterB      = "ב"
	SemesterSummer = "קורס קיץ"
	SemesterYearly = "Yearly"
)

// DefaultYear is used when a year is not given.
const DefaultYear = 2024

var Semesters = []string{SemesterA, SemesterB, SemesterSummer, SemesterYearly}

func IsSemester(s string) bool {
	for _, sem := range Semesters {
		if s == sem {
			return true
		}
	}
	return false
}

// Record is one course taken during an academic year.
type Record struct {
	Name         string  `json:"name"`
	Grade        float64 `json:"grade"`
	CreditPoints float64 `json:"creditPoints"`
	Semester     string  `json:"semester"`
}

// Years maps an academic year to its ordered course records.
type Years map[int][]Record

// Sorted returns the years in ascending order.
func (ys Years) Sorted() []int {
	years := make([]int, 0, len(ys))
	for y := range ys {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// NewRecord contains information needed to add or replace a Record.
type NewRecord struct {
	Name         string   `json:"name" validate:"required,notblank"`
	Grade        *float64 `json:"grade" validate:"required,grade100"`
	CreditPoints *float64 `json:"creditPoints" validate:"required,gt=0"`
	Semester     string   `json:"semester" validate:"omitempty,semester"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	nr.Semester = core.CleanString(nr.Semester)
	if nr.Semester == "" {
		nr.Semester = SemesterA
	}
	return validate.Struct(nr)
}

func (nr NewRecord) record() Record {
	return Record{Name: nr.Name, Grade: *nr.Grade, CreditPoints: *nr.CreditPoints, Semester: nr.Semester}
}

type Summary struct {
	Year        int      `json:"year"`
	Courses     []Record `json:"courses"`
	YearGpa     float64  `json:"year_gpa"`
	OverallGpa  float64  `json:"overall_gpa"`
	YearCredits float64  `json:"year_credits"`
}
