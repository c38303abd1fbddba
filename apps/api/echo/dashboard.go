package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service, loc *time.Location) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		now := core.NowFunc()
		if loc != nil {
			now = now.In(loc)
		}
		return ctx.JSON(http.StatusOK, svc.Build(now))
	})
}
