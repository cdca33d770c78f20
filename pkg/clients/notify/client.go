// Package notify delivers user-facing notices to an external webhook. The
// channel is best-effort: a delivery failure is logged and dropped, never
// propagated into the operation that raised the notice.
package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
)

// WebhookClient is a resty-backed notifier posting notices as JSON.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookClient builds a webhook notifier for the given URL.
func NewWebhookClient(url string, logger *zap.Logger) *WebhookClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
		logger:     logger,
	}
}

// Notify posts the notice to the webhook. Failures are swallowed after
// logging; notices also travel inline in API responses, so the webhook is
// never load-bearing.
func (c *WebhookClient) Notify(ctx context.Context, n models.Notification) {
	if c == nil {
		return
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(c.url)
	if err != nil {
		c.logger.Warn("notification delivery failed",
			zap.String("title", n.Title),
			zap.Error(err))
		return
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		c.logger.Warn("notification rejected by webhook",
			zap.String("title", n.Title),
			zap.Int("status", resp.StatusCode()))
		return
	}

	c.logger.Debug("notification delivered",
		zap.String("level", string(n.Level)),
		zap.String("title", n.Title))
}
