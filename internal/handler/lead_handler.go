package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/viasolenergia/leads-api/internal/config"
	"github.com/viasolenergia/leads-api/internal/lead"
	"github.com/viasolenergia/leads-api/internal/mail"
	"github.com/viasolenergia/leads-api/internal/metrics"
	"github.com/viasolenergia/leads-api/internal/middleware"
	"github.com/viasolenergia/leads-api/internal/ratelimit"
)

// msgTooManyAttempts is what a visitor sees when retrying inside the window.
const msgTooManyAttempts = "Muitas tentativas. Tente novamente em alguns segundos."

// LeadHandler receives contact form submissions and turns each accepted one
// into two provider dispatches: the staff notification, then the receipt.
type LeadHandler struct {
	cfg     *config.Config
	limiter ratelimit.Limiter
	sender  mail.Sender
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewLeadHandler wires the intake pipeline. Configuration is validated at
// load time, so the handler never re-checks it per request.
func NewLeadHandler(cfg *config.Config, limiter ratelimit.Limiter, sender mail.Sender, log logrus.FieldLogger) *LeadHandler {
	return &LeadHandler{
		cfg:     cfg,
		limiter: limiter,
		sender:  sender,
		log:     log,
		now:     time.Now,
	}
}

// Submit handles POST requests from the contact form. Pipeline order:
// rate limit, normalize, honeypot, validate, staff email, receipt email.
// Each stage is a potential terminal point.
func (h *LeadHandler) Submit(c echo.Context) error {
	req := c.Request()
	ctx := req.Context()
	addr := middleware.SourceAddress(req)

	metrics.LeadsReceived.Inc()

	if !h.limiter.Admit(ctx, addr, h.now()) {
		metrics.LeadsRejected.WithLabelValues("rate_limit").Inc()
		h.log.WithField("source", addr).Warn("rate limit exceeded")
		return Fail(c, http.StatusTooManyRequests, msgTooManyAttempts)
	}

	sub := lead.Normalize(lead.Decode(req.Body))

	if sub.IsBot() {
		// Bots get the exact success response, so automation cannot tell
		// detection apart from acceptance.
		metrics.LeadsRejected.WithLabelValues("bot").Inc()
		h.log.WithField("source", addr).Info("honeypot tripped, submission dropped")
		return OK(c)
	}

	if err := lead.Validate(&sub); err != nil {
		metrics.LeadsRejected.WithLabelValues("validation").Inc()
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	meta := mail.Meta{
		SourceAddr: addr,
		UserAgent:  req.UserAgent(),
		SiteURL:    h.cfg.SiteURL,
	}

	// Reply-to swap: answering either email reaches a human directly.
	staff := mail.Message{
		From:    h.cfg.MailFrom,
		To:      []string{h.cfg.MailTo},
		Subject: mail.StaffSubject(sub),
		HTML:    mail.RenderStaffNotification(sub, meta),
		ReplyTo: sub.Email,
	}
	if err := h.sender.Send(ctx, staff); err != nil {
		metrics.ProviderSends.WithLabelValues("staff", "failure").Inc()
		return Fail(c, http.StatusInternalServerError, err.Error())
	}
	metrics.ProviderSends.WithLabelValues("staff", "ok").Inc()

	receipt := mail.Message{
		From:    h.cfg.MailFrom,
		To:      []string{sub.Email},
		Subject: mail.ReceiptSubject,
		HTML:    mail.RenderLeadReceipt(sub, h.cfg.SiteURL),
		ReplyTo: h.cfg.MailTo,
	}
	if err := h.sender.Send(ctx, receipt); err != nil {
		metrics.ProviderSends.WithLabelValues("receipt", "failure").Inc()
		// Staff was already notified; the visitor still sees a failure and
		// there is no compensating action.
		h.log.WithFields(logrus.Fields{
			"source": addr,
			"email":  sub.Email,
		}).Warn("receipt failed after staff notification succeeded")
		return Fail(c, http.StatusInternalServerError, err.Error())
	}
	metrics.ProviderSends.WithLabelValues("receipt", "ok").Inc()

	metrics.LeadsAccepted.Inc()
	return OK(c)
}
