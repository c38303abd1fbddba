package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/grade"
)

type courseApi struct {
	svc      *course.Service
	gradeSvc *grade.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service, gradeSvc *grade.Service) {
	api := courseApi{svc: svc, gradeSvc: gradeSvc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:course", courseMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.syncMetadata)
	dg.DELETE("", api.destroy)

	// grade environment
	eg := dg.Group("/environment")
	eg.GET("", api.environment)
	eg.PUT("/weights", api.setWeights)
	eg.POST("/records/:category", api.addRecord)
	eg.PUT("/records/:category/:index", api.editRecord)
	eg.DELETE("/records/:category/:index", api.deleteRecord)
	dg.GET("/grade", api.grade)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.List())
}

func (api *courseApi) create(ctx echo.Context) error {
	var data NewCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourseRequest")
	}
	c, err := api.svc.Create(data.Name)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	name := contextCourse(ctx)
	md, err := api.svc.Metadata(name)
	if err != nil {
		return errors.Wrap(err, "getting course metadata")
	}
	return ctx.JSON(http.StatusOK, CourseResponse{Name: name, Metadata: md})
}

func (api *courseApi) syncMetadata(ctx echo.Context) error {
	var updates map[string]interface{}
	if err := bindMap(ctx, &updates); err != nil {
		return errors.Wrap(err, "binding to Metadata")
	}
	name := contextCourse(ctx)
	md, err := api.svc.SyncMetadata(name, updates)
	if err != nil {
		return errors.Wrap(err, "syncing course metadata")
	}
	return ctx.JSON(http.StatusOK, CourseResponse{Name: name, Metadata: md})
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(contextCourse(ctx)); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) environment(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.gradeSvc.Environment(contextCourse(ctx)))
}

func (api *courseApi) grade(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.gradeSvc.Summary(contextCourse(ctx)))
}

func (api *courseApi) setWeights(ctx echo.Context) error {
	var data grade.Weights
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Weights")
	}
	env, err := api.gradeSvc.SetWeights(contextCourse(ctx), data)
	if err != nil {
		return errors.Wrap(err, "setting weights")
	}
	return ctx.JSON(http.StatusOK, env)
}

func (api *courseApi) addRecord(ctx echo.Context) error {
	cat, err := grade.ParseCategory(ctx.Param("category"))
	if err != nil {
		return err
	}
	var data grade.NewRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	env, err := api.gradeSvc.AddRecord(contextCourse(ctx), cat, data)
	if err != nil {
		return errors.Wrap(err, "adding grade record")
	}
	return ctx.JSON(http.StatusCreated, env)
}

func (api *courseApi) editRecord(ctx echo.Context) error {
	cat, idx, err := recordParams(ctx)
	if err != nil {
		return err
	}
	var data grade.NewRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	env, err := api.gradeSvc.EditRecord(contextCourse(ctx), cat, idx, data)
	if err != nil {
		return errors.Wrap(err, "editing grade record")
	}
	return ctx.JSON(http.StatusOK, env)
}

func (api *courseApi) deleteRecord(ctx echo.Context) error {
	cat, idx, err := recordParams(ctx)
	if err != nil {
		return err
	}
	env, err := api.gradeSvc.DeleteRecord(contextCourse(ctx), cat, idx)
	if err != nil {
		return errors.Wrap(err, "deleting grade record")
	}
	return ctx.JSON(http.StatusOK, env)
}

func recordParams(ctx echo.Context) (grade.Category, int, error) {
	cat, err := grade.ParseCategory(ctx.Param("category"))
	if err != nil {
		return "", 0, err
	}
	idx, err := intParam(ctx, "index")
	if err != nil {
		return "", 0, err
	}
	return cat, idx, nil
}

type (
	NewCourseRequest struct {
		Name string `json:"name"`
	}

	CourseResponse struct {
		Name     string          `json:"name"`
		Metadata course.Metadata `json:"metadata"`
	}
)
