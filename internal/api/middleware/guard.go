package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lybfish/ironbull/internal/core/service"
)

// Guard evaluates the navigation guard before every console navigation.
// A denied navigation becomes a redirect — to /login with a return hint for
// unauthenticated operators, or to the resolved home page when a logged-in
// operator hits /login. An allowed navigation on a fresh session waits for
// route materialization inside the guard before proceeding.
func Guard(nav *service.Navigator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := nav.Guard(c.Request().Context(), c.Request().URL.Path)
			if !d.Allow {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}
			return next(c)
		}
	}
}
