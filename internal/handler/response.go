package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the uniform envelope every endpoint returns, success or not,
// so clients can handle failures with one code path.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// OK sends the success envelope.
func OK(c echo.Context) error {
	return respond(c, http.StatusOK, Response{OK: true})
}

// Fail sends the error envelope with the given user-facing message.
func Fail(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return respond(c, status, Response{OK: false, Error: message})
}

func respond(c echo.Context, status int, payload Response) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	return c.JSON(status, payload)
}
