package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

type Task struct {
	ID          int64     `json:"id"` // creation timestamp in milliseconds
	Title       string    `json:"title"`
	Course      string    `json:"course"`
	Description string    `json:"description"`
	WorkDate    time.Time `json:"workDate"`
	SubmitDate  time.Time `json:"submitDate"`
	Completed   bool      `json:"completed"`
}

// NewTask contains information needed to create or modify a Task.
type NewTask struct {
	Title       string     `json:"title" validate:"required,notblank"`
	Course      string     `json:"course"`
	Description string     `json:"description" validate:"max=50"`
	WorkDate    *time.Time `json:"workDate" validate:"required"`
	SubmitDate  *time.Time `json:"submitDate" validate:"required"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Course = core.CleanString(nt.Course)
	nt.Description = core.CleanString(nt.Description)
	return validate.Struct(nt)
}

// apply copies nt's fields onto t, keeping its id and completed flag.
func (nt NewTask) apply(t Task) Task {
	t.Title = nt.Title
	t.Course = nt.Course
	t.Description = nt.Description
	t.WorkDate = nt.WorkDate.UTC()
	t.SubmitDate = nt.SubmitDate.UTC()
	return t
}

type Collections struct {
	Active    []Task `json:"active"`
	Completed []Task `json:"completed"`
}
