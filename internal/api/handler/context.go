package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware and fast-fails before any service call when it is absent
// (presence proves the middleware ran).
func ctxUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get("user_id").(int64)
	if !ok || userID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
