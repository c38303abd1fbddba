package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/daftari/core"
)

var (
	weekdayTag  = "weekday"
	weekdayText = "day must be one of ראשון, שני, שלישי, רביעי, חמישי or שישי"

	endAfterStartTag  = "endafterstart"
	endAfterStartText = "lesson must end after it starts"
)

// InitValidators registers the schedule validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)

	validate.RegisterStructValidation(lessonStructValidation, NewLesson{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

// Custom Validators

func weekdayValidation(fl validator.FieldLevel) bool {
	return IsDay(fl.Field().String())
}

// lessonStructValidation checks that a lesson with valid clock times ends after it starts.
func lessonStructValidation(sl validator.StructLevel) {
	nl := sl.Current().Interface().(NewLesson)
	start, err := core.ParseClock(nl.LessonStartTime)
	if err != nil {
		return
	}
	end, err := core.ParseClock(nl.LessonEndTime)
	if err != nil {
		return
	}
	if end <= start {
		sl.ReportError(nl.LessonEndTime, "lessonEndTime", "LessonEndTime", endAfterStartTag, "")
	}
}
