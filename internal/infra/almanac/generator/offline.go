package generator

import (
	"context"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
)

// Offline never reaches a provider, so every reading uses the fallback
// content. It backs deployments without an API key and the CLI's --offline
// flag.
type Offline struct{}

// Generate always fails with ErrProviderDisabled.
func (Offline) Generate(ctx context.Context, _ string) (almanac.Completion, error) {
	if err := ctx.Err(); err != nil {
		return almanac.Completion{}, err
	}
	return almanac.Completion{}, ErrProviderDisabled
}

var _ almanac.Generator = Offline{}
