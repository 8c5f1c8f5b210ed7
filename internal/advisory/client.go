package advisory

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitra/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Client turns a training request into one call to the advisory service.
// It never parses the reply; see Reconcile for that.
type Client struct {
	advisor Advisor
}

func NewClient(advisor Advisor) *Client {
	return &Client{
		advisor: advisor,
	}
}

// Advise sends the templated prompt and returns the raw reply text.
// Any failure is reported as ErrAdvisoryUnavailable.
func (c *Client) Advise(ctx context.Context, req Request) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisory.client.advise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(
		attribute.Int64("total_volume", req.TotalVolume),
		attribute.Int("score", req.Score),
	)

	if c.advisor == nil {
		return "", fmt.Errorf("%w: no advisor configured", ErrAdvisoryUnavailable)
	}

	prompt := BuildPrompt(req)
	log.Tracef("advisory prompt, user turn:\n%s", prompt.User)

	reply, err := c.advisor.Send(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrAdvisoryUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrAdvisoryUnavailable, err)
	}

	span.SetAttributes(attribute.Int("reply_len", len(reply)))
	return reply, nil
}
