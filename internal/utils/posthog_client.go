package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps the PostHog client so callers never have to
// care whether analytics is configured.
type PosthogClientWrapper struct {
	client posthog.Client
}

// NewPosthogClient creates a wrapper around a PostHog client. A nil-client
// wrapper is returned when no API key is configured; all methods on it are
// no-ops.
func NewPosthogClient(apiKey, endpoint string) *PosthogClientWrapper {
	if apiKey == "" {
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		slog.Warn("Failed to initialize PostHog client; analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	return &PosthogClientWrapper{client: client}
}

// IsInitialized reports whether analytics events will actually be sent.
func (p *PosthogClientWrapper) IsInitialized() bool {
	return p != nil && p.client != nil
}

// Enqueue sends an event for the given user. Errors are logged and dropped;
// analytics must never affect request handling.
func (p *PosthogClientWrapper) Enqueue(distinctID, event string, properties map[string]any) {
	if !p.IsInitialized() {
		return
	}
	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	if err := p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	}); err != nil {
		slog.Warn("Failed to enqueue PostHog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (p *PosthogClientWrapper) Close() {
	if p.IsInitialized() {
		_ = p.client.Close()
	}
}
