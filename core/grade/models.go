package grade

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

// Categories
const (
	CategoryAssignments Category = "assignments"
	CategoryTests       Category = "tests"
	CategoryOthers      Category = "others"
)

var Categories = []Category{CategoryAssignments, CategoryTests, CategoryOthers}

type Category string

// ParseCategory returns a ValidationError when s does not name a Category.
func ParseCategory(s string) (Category, error) {
	cat := Category(core.CleanString(s, true /* lower */))
	for _, c := range Categories {
		if cat == c {
			return cat, nil
		}
	}
	return "", core.NewValidationError(ErrInvalidCategory, core.FieldError{Field: "category", Error: ErrInvalidCategory.Error()})
}

// Record is one graded item of a course category.
// Percent is a relative weight inside its category; percents of a category need not total 100.
type Record struct {
	Name    string  `json:"name"`
	Grade   float64 `json:"grade"`
	Percent float64 `json:"percent"`
}

// Weights are the course-level percentages of each category.
type Weights struct {
	Assignments float64 `json:"assignments" validate:"gte=0,lte=100"`
	Tests       float64 `json:"tests" validate:"gte=0,lte=100"`
	Others      float64 `json:"others" validate:"gte=0,lte=100"`
}

func (w Weights) Total() float64 {
	return w.Assignments + w.Tests + w.Others
}

// Complete reports whether the weights total exactly 100.
func (w Weights) Complete() bool {
	return math.Abs(w.Total()-100) < weightsEpsilon
}

func (w Weights) Of(cat Category) float64 {
	switch cat {
	case CategoryAssignments:
		return w.Assignments
	case CategoryTests:
		return w.Tests
	case CategoryOthers:
		return w.Others
	}
	return 0
}

func (w Weights) Validate(validate *validator.Validate) error {
	if err := validate.Struct(w); err != nil {
		return err
	}
	if !w.Complete() {
		return core.NewValidationError(ErrWeightsTotal)
	}
	return nil
}

// Environment holds the graded records and category weights of one course.
type Environment struct {
	Assignments         []Record `json:"assignments"`
	Tests               []Record `json:"tests"`
	Others              []Record `json:"others"`
	CategoryPercentages Weights  `json:"categoryPercentages"`
}

// NewEnvironment returns the empty environment of a freshly created course.
func NewEnvironment() Environment {
	return Environment{
		Assignments: []Record{},
		Tests:       []Record{},
		Others:      []Record{},
	}
}

func (env *Environment) Records(cat Category) []Record {
	switch cat {
	case CategoryAssignments:
		return env.Assignments
	case CategoryTests:
		return env.Tests
	case CategoryOthers:
		return env.Others
	}
	return nil
}

func (env *Environment) setRecords(cat Category, records []Record) {
	switch cat {
	case CategoryAssignments:
		env.Assignments = records
	case CategoryTests:
		env.Tests = records
	case CategoryOthers:
		env.Others = records
	}
}

// normalize replaces nil lists with empty ones so stored JSON always carries arrays.
func (env *Environment) normalize() {
	for _, cat := range Categories {
		if env.Records(cat) == nil {
			env.setRecords(cat, []Record{})
		}
	}
}

// NewRecord contains information needed to add or replace a Record.
type NewRecord struct {
	Name    string   `json:"name" validate:"required,notblank"`
	Grade   *float64 `json:"grade" validate:"required,gte=0"`
	Percent *float64 `json:"percent" validate:"required,gte=0"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	return validate.Struct(nr)
}

func (nr NewRecord) record() Record {
	return Record{Name: nr.Name, Grade: *nr.Grade, Percent: *nr.Percent}
}

// Summary is the computed view of an Environment.
type Summary struct {
	Assignments float64 `json:"assignments"`
	Tests       float64 `json:"tests"`
	Others      float64 `json:"others"`
	Weights     Weights `json:"weights"`
	WeightsSet  bool    `json:"weights_set"`
	Final       float64 `json:"final"`
}
