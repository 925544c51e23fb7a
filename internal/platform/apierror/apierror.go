// Package apierror renders error responses in the API's single error shape:
//
//	{"detail": "Description too short", "status_code": 400}
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// InternalDetail is the only detail exposed for 5xx faults.
const InternalDetail = "Internal server error"

// Body is the JSON error payload.
type Body struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

func New(code int, detail string) *Body {
	return &Body{Detail: detail, StatusCode: code}
}

// JSON writes an error body with the given status.
func JSON(c echo.Context, code int, detail string) error {
	return c.JSON(code, New(code, detail))
}

// Handler returns an echo.HTTPErrorHandler that renders every error as a
// Body. Errors that are not *echo.HTTPError are treated as internal faults.
// 5xx errors are logged with the request id; a 500 never exposes its message.
func Handler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := InternalDetail

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			detail = messageOf(he)
		}

		if code >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			if code == http.StatusInternalServerError {
				detail = InternalDetail
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = JSON(c, code, detail)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}

func messageOf(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
