package gpa

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

var (
	semesterTag  = "semester"
	semesterText = "semester must be one of א, ב, קורס קיץ or Yearly"

	gradeTag  = "grade100"
	gradeText = "please enter a valid grade (0-100)"
)

// InitValidators registers the gpa validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(semesterTag, semesterValidation)
	core.RegisterCustomTranslation(validate, translator, semesterTag, semesterText)

	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

// Custom Validators

func semesterValidation(fl validator.FieldLevel) bool {
	return IsSemester(fl.Field().String())
}

// gradeValidation only allows grades within [0, 100].
func gradeValidation(fl validator.FieldLevel) bool {
	g := fl.Field().Float()
	return g >= 0 && g <= 100
}
