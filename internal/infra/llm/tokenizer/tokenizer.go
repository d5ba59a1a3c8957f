package tokenizer

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding matches the OpenAI and DeepSeek chat models closely enough
// for budget logging.
const DefaultEncoding = "cl100k_base"

// Counter estimates prompt token counts. Count never blocks: until Warm has
// loaded the BPE ranks it answers with Estimate. tiktoken fetches the ranks
// over HTTP without a deadline, so loading runs in the background and only
// Warm's caller chooses how long to wait.
type Counter struct {
	encoding string
	load     func(encoding string) (*tiktoken.Tiktoken, error)

	once  sync.Once
	ready chan struct{}
	enc   atomic.Pointer[tiktoken.Tiktoken]
	err   error
}

// New returns a counter for the named tiktoken encoding.
func New(encoding string) *Counter {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	return &Counter{
		encoding: encoding,
		load:     tiktoken.GetEncoding,
		ready:    make(chan struct{}),
	}
}

// Warm starts loading the encoding and waits until it is ready or ctx is
// done. A ctx error leaves the load running; later Counts pick it up once it
// lands.
func (c *Counter) Warm(ctx context.Context) error {
	c.once.Do(func() {
		go func() {
			enc, err := c.load(c.encoding)
			c.err = err
			if err == nil {
				c.enc.Store(enc)
			}
			close(c.ready)
		}()
	})
	select {
	case <-c.ready:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	enc := c.enc.Load()
	if enc == nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// Err reports why the encoding could not be loaded. It is nil while a load
// is still in flight.
func (c *Counter) Err() error {
	select {
	case <-c.ready:
		return c.err
	default:
		return nil
	}
}

// Estimate approximates token usage from rune and word counts.
func Estimate(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	words := len(strings.Fields(trimmed))
	runes := utf8.RuneCountInString(trimmed)
	tokens := runes / 4
	if tokens < words {
		tokens = words
	}
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}
