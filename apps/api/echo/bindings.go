package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/daftari/core"
)

// intParam reads the integer path parameter name.
func intParam(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: name, Error: fmt.Sprintf("%s must be an integer", name)})
	}
	return v, nil
}

func int64Param(ctx echo.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: name, Error: fmt.Sprintf("%s must be an integer", name)})
	}
	return v, nil
}

// bindMap decodes a JSON object body into dst.
// echo's binder would also copy path and query parameters into a map target.
func bindMap(ctx echo.Context, dst *map[string]interface{}) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
