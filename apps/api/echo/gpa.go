package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core/gpa"
)

type gpaApi struct {
	svc *gpa.Service
}

func registerGpaAPI(g *echo.Group, svc *gpa.Service) {
	api := gpaApi{svc: svc}

	yg := g.Group("/years")
	yg.GET("", api.query)
	yg.GET("/:year", api.summary)
	yg.POST("/:year/courses", api.addCourse)
	yg.PUT("/:year/courses/:index", api.editCourse)
	yg.DELETE("/:year/courses/:index", api.deleteCourse)
	yg.GET("/:year/semesters/:semester", api.bySemester)
}

// Handlers

func (api *gpaApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Years())
}

func (api *gpaApi) summary(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Summary(year))
}

func (api *gpaApi) addCourse(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}
	var data gpa.NewRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	sum, err := api.svc.AddCourse(year, data)
	if err != nil {
		return errors.Wrap(err, "adding course record")
	}
	return ctx.JSON(http.StatusCreated, sum)
}

func (api *gpaApi) editCourse(ctx echo.Context) error {
	year, idx, err := yearCourseParams(ctx)
	if err != nil {
		return err
	}
	var data gpa.NewRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	sum, err := api.svc.EditCourse(year, idx, data)
	if err != nil {
		return errors.Wrap(err, "editing course record")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *gpaApi) deleteCourse(ctx echo.Context) error {
	year, idx, err := yearCourseParams(ctx)
	if err != nil {
		return err
	}
	sum, err := api.svc.DeleteCourse(year, idx)
	if err != nil {
		return errors.Wrap(err, "deleting course record")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *gpaApi) bySemester(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}
	records, err := api.svc.BySemester(year, ctx.Param("semester"))
	if err != nil {
		return errors.Wrap(err, "filtering by semester")
	}
	if records == nil {
		records = []gpa.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func yearCourseParams(ctx echo.Context) (int, int, error) {
	year, err := intParam(ctx, "year")
	if err != nil {
		return 0, 0, err
	}
	idx, err := intParam(ctx, "index")
	if err != nil {
		return 0, 0, err
	}
	return year, idx, nil
}
