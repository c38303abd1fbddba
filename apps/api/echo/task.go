package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core/task"
)

type taskApi struct {
	svc *task.Service
}

func registerTaskAPI(g *echo.Group, svc *task.Service) {
	api := taskApi{svc: svc}

	tg := g.Group("/tasks")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
	tg.POST("/:id/complete", api.complete)
	tg.POST("/:id/reactivate", api.reactivate)
}

// Handlers

func (api *taskApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.All())
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	t, err := api.svc.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) update(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return err
	}
	var data task.NewTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	t, err := api.svc.Edit(id, data)
	if err != nil {
		return errors.Wrap(err, "editing task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *taskApi) complete(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return err
	}
	t, err := api.svc.Complete(id)
	if err != nil {
		return errors.Wrap(err, "completing task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) reactivate(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return err
	}
	t, err := api.svc.Reactivate(id)
	if err != nil {
		return errors.Wrap(err, "reactivating task")
	}
	return ctx.JSON(http.StatusOK, t)
}
