package generator

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmptyCompletion is returned when the provider answers without text.
	ErrEmptyCompletion = errors.New("provider returned an empty completion")
	// ErrProviderDisabled is returned by the offline generator.
	ErrProviderDisabled = errors.New("text generation provider disabled")
)

// Settings are the per-call limits shared by every adapter.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// TokenCounter estimates prompt tokens when a provider omits usage data.
type TokenCounter interface {
	Count(text string) int
}

func (s Settings) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}
