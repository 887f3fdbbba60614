package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// genericSendError is what the visitor sees when the provider fails without a
// usable error message of its own.
const genericSendError = "Falha ao enviar e-mail."

// ResendClient dispatches messages through a Resend-compatible HTTP API:
// POST {base}/emails with bearer-token auth.
type ResendClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     logrus.FieldLogger
}

// NewResendClient builds a provider client. The http.Client should carry a
// bounded timeout so a slow provider cannot hang a request.
func NewResendClient(client *http.Client, baseURL, apiKey string, log logrus.FieldLogger) *ResendClient {
	if client == nil {
		client = &http.Client{}
	}
	return &ResendClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Send implements Sender. A non-2xx provider status becomes an error carrying
// the provider's own message when the response body has one.
func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendPayload{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).Error("email provider unreachable")
		return errors.New(genericSendError)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errMsg := extractProviderError(resp.Body)
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"error":  errMsg,
		}).Error("email provider rejected message")
		return errors.New(errMsg)
	}

	c.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email dispatched")
	return nil
}

// extractProviderError pulls a message out of a provider error body,
// tolerating bodies that are not JSON at all.
func extractProviderError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return genericSendError
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return genericSendError
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return genericSendError
}

var _ Sender = (*ResendClient)(nil)
