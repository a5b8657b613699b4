package middleware

import (
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectoinject/ectocontainer"
	"github.com/labstack/echo/v4"
)

// Inject marks the container active on every request context so handlers can
// resolve their dependencies with ectoinject.GetContext.
func Inject(container ectocontainer.DIContainer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, err := ectoinject.SetActiveContainer(req.Context(), container.GetContainerID())
			if err != nil {
				// GetContext falls back to the default container
				return next(c)
			}
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
