package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/viasolenergia/leads-api/internal/config"
	"github.com/viasolenergia/leads-api/internal/handler"
	"github.com/viasolenergia/leads-api/internal/mail"
)

type noopSender struct{}

func (noopSender) Send(context.Context, mail.Message) error { return nil }

type openLimiter struct{}

func (openLimiter) Admit(context.Context, string, time.Time) bool { return true }

func newTestServer() *echo.Echo {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		MailFrom: "site@viasolenergia.com.br",
		MailTo:   "comercial@viasolenergia.com.br",
		SiteURL:  "https://www.viasolenergia.com.br",
	}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(log)
	Register(e, handler.NewLeadHandler(cfg, openLimiter{}, noopSender{}, log))
	return e
}

func TestMethodNotAllowedReturnsEnvelope(t *testing.T) {
	e := newTestServer()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/lead", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", method, rec.Code)
		}
		var resp handler.Response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: expected JSON envelope: %v", method, err)
		}
		if resp.OK || resp.Error == "" {
			t.Fatalf("%s: unexpected envelope %+v", method, resp)
		}
	}
}

func TestNotFoundReturnsEnvelope(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp handler.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON envelope: %v", err)
	}
	if resp.OK {
		t.Fatalf("expected error envelope, got %+v", resp)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
