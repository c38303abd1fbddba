package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/grade"
	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/core/task"
)

// notFoundErrs are the sentinel errors answered with 404.
var notFoundErrs = []error{
	course.ErrNotFound,
	grade.ErrRecordNotFound,
	gpa.ErrCourseNotFound,
	schedule.ErrLessonNotFound,
	task.ErrNotFound,
}

func isNotFound(err error) bool {
	for _, nf := range notFoundErrs {
		if err == nf {
			return true
		}
	}
	return false
}

type conflict struct {
	Error    string   `json:"error"`
	Conflict interval `json:"conflict"`
}

type interval struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.OverlapError:
			code = http.StatusConflict
			message = conflict{
				Error:    origErr.Error(),
				Conflict: interval{Day: origErr.Day, Start: origErr.ConflictStart, End: origErr.ConflictEnd},
			}
		default:
			if isNotFound(origErr) {
				code = http.StatusNotFound
				message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
				"method":     ctx.Request().Method,
				"path":       ctx.Request().URL.Path,
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
			})

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
