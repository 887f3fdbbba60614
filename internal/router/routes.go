package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/viasolenergia/leads-api/internal/handler"
)

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, leads *handler.LeadHandler) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.OK(c)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/lead", leads.Submit)
}

// ErrorHandler converts echo routing errors (404, 405, oversized bodies) into
// the same {ok,error} envelope the handlers produce.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Erro interno."

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch status {
			case http.StatusMethodNotAllowed:
				message = "Método não permitido."
			case http.StatusNotFound:
				message = "Não encontrado."
			default:
				if m, ok := he.Message.(string); ok && m != "" {
					message = m
				}
			}
		} else {
			log.WithError(err).Error("unhandled error")
		}

		if err := handler.Fail(c, status, message); err != nil {
			log.WithError(err).Error("failed to write error response")
		}
	}
}
