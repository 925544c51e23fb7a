package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcoding/medcoding/internal/platform/apierror"
)

// RequestTimeout sets a deadline on each request context. When it expires
// before the handler returns, a 504 is written and the handler's eventual
// result is discarded.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			// On expiry the handler goroutine is abandoned while it may still
			// hold c, which Echo recycles once this returns. Handlers behind
			// this middleware must stop touching c when ctx is done.
			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					if c.Response().Committed {
						return nil
					}
					return apierror.JSON(c, http.StatusGatewayTimeout,
						"Request processing exceeded the allowed time limit")
				}
				// Client went away.
				return ctx.Err()
			}
		}
	}
}
