package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/course"
)

const ctxCourse = "course"

// courseMiddleware resolves the :course path parameter to a known course name stored in the context.
func courseMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			name := core.CleanString(ctx.Param("course"))
			if !svc.Exists(name) {
				return course.ErrNotFound
			}
			ctx.Set(ctxCourse, name)
			return next(ctx)
		}
	}
}

func contextCourse(ctx echo.Context) string {
	name, _ := ctx.Get(ctxCourse).(string)
	return name
}
