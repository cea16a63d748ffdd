// Package notify forwards widget events to a host page's message
// endpoint when cross-frame result forwarding is configured.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"AreaHelper-App/internal/domain/model"
)

// Forwarder POSTs event payloads to a configured target origin.
// Forwarding is fire-and-forget for the emitter; failures are logged
// by callers, never propagated to the drawing flow.
type Forwarder struct {
	targetOrigin string
	httpClient   *http.Client
}

// NewForwarder validates the target origin. A wildcard origin
// broadcasts results to any embedder and must be opted into
// explicitly; requiring the opt-in is the safe default.
func NewForwarder(targetOrigin string, allowWildcard bool) (*Forwarder, error) {
	if targetOrigin == "" {
		return nil, fmt.Errorf("target origin is required for result forwarding")
	}
	if targetOrigin == "*" && !allowWildcard {
		return nil, fmt.Errorf("wildcard target origin requires explicit opt-in")
	}
	return &Forwarder{
		targetOrigin: targetOrigin,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// TargetOrigin returns the configured origin.
func (f *Forwarder) TargetOrigin() string {
	return f.targetOrigin
}

// Forward delivers one event. With a wildcard origin the event is
// dropped silently (nothing to address it to server-side).
func (f *Forwarder) Forward(ctx context.Context, event *model.Event) error {
	if f.targetOrigin == "*" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", f.targetOrigin, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build forwarding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("event forwarding failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("event forwarding rejected: %s", resp.Status)
	}
	return nil
}
