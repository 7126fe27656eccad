package server

import (
	"strconv"

	"mediafs/pkg/models"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating reverse proxy in front of the
// engine. The engine never authenticates; it only binds sandboxes.
const (
	headerUserID    = "X-User-Id"
	headerUserLogin = "X-User-Login"
	headerUserName  = "X-User-Name"
	headerUserAdmin = "X-User-Admin"
)

type notAuthenticatedError struct{}

func (notAuthenticatedError) Error() string {
	return "not authenticated"
}

// callerIdentity extracts the authenticated caller from request headers.
func callerIdentity(ctx echo.Context) (models.Identity, error) {
	rawID := ctx.Request().Header.Get(headerUserID)
	if rawID == "" {
		return models.Identity{}, notAuthenticatedError{}
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return models.Identity{}, notAuthenticatedError{}
	}

	return models.Identity{
		ID:       id,
		Username: ctx.Request().Header.Get(headerUserLogin),
		Name:     ctx.Request().Header.Get(headerUserName),
		Admin:    ctx.Request().Header.Get(headerUserAdmin) == "true",
	}, nil
}
