package llm

import (
	"context"
	"strings"
	"time"

	"github.com/typeflow/typeflow/internal/metrics"
)

type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Provider names a backend for logs and metrics.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Timed wraps a client so every call is observed in the LLM duration histogram.
func Timed(provider Provider, c Client) Client {
	return timedClient{provider: provider, next: c}
}

type timedClient struct {
	provider Provider
	next     Client
}

func (t timedClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.LLMRequestDuration.WithLabelValues(string(t.provider)).Observe(time.Since(start).Seconds())
	}()
	return t.next.Complete(ctx, system, prompt)
}

// StripMarkdownCodeBlocks removes ```...``` wrappers from LLM responses
func StripMarkdownCodeBlocks(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
