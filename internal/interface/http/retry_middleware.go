package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/ai-almanac/internal/infra/config"
)

const maxReplayBody = 1 << 20

var errReplayBodyTooLarge = errors.New("request body exceeds retry limit")

// transientStatuses are the only outcomes worth replaying. A 500
// almanac_failed comes from a request the pipeline cannot serve and would
// fail again; the gateway codes come from proxies and overloaded upstreams.
var transientStatuses = map[int]struct{}{
	http.StatusBadGateway:         {},
	http.StatusServiceUnavailable: {},
	http.StatusGatewayTimeout:     {},
}

// withRetry replays almanac POSTs whose attempt ends in a transient gateway
// status. Attempts are buffered so the caller only sees the final one.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	r := &replayer{
		next:     handler,
		attempts: cfg.MaxAttempts,
		backoff:  cfg.BaseBackoff,
		skip:     make(map[string]struct{}, len(cfg.Exclude)),
		logger:   logger.With("component", "http.retry"),
	}
	for _, path := range cfg.Exclude {
		r.skip[path] = struct{}{}
	}
	return r
}

type replayer struct {
	next     http.Handler
	attempts int
	backoff  time.Duration
	skip     map[string]struct{}
	logger   *slog.Logger
}

func (p *replayer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, excluded := p.skip[r.URL.Path]; excluded || r.Method != http.MethodPost {
		p.next.ServeHTTP(w, r)
		return
	}

	body, err := bufferBody(r)
	if err != nil {
		writeReplayError(w, err)
		return
	}

	for attempt := 1; ; attempt++ {
		out := newAttemptBuffer()
		p.next.ServeHTTP(out, withBody(r, body))

		if !out.transient() || attempt == p.attempts || !p.pause(r, attempt) {
			out.flushTo(w)
			return
		}
		p.logger.Warn("upstream unavailable, replaying request",
			"path", r.URL.Path,
			"status", out.status,
			"attempt", attempt,
			"request_id", out.header.Get(requestIDHeader),
		)
	}
}

// pause waits an exponential backoff and reports false when the caller went
// away first.
func (p *replayer) pause(r *http.Request, attempt int) bool {
	delay := p.backoff << (attempt - 1)
	if delay <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func withBody(r *http.Request, body []byte) *http.Request {
	clone := r.Clone(r.Context())
	clone.Body = io.NopCloser(bytes.NewReader(body))
	clone.ContentLength = int64(len(body))
	return clone
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxReplayBody+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReplayBody {
		return nil, errReplayBodyTooLarge
	}
	return data, nil
}

// writeReplayError answers in the same envelope errorHandlingMiddleware uses
// so clients parse one error shape.
func writeReplayError(w http.ResponseWriter, err error) {
	status, message := http.StatusBadRequest, "Invalid request body"
	if errors.Is(err, errReplayBodyTooLarge) {
		status, message = http.StatusRequestEntityTooLarge, "Request body too large"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"error":{"code":"invalid_request","message":"`+message+`"}}`)
}

// attemptBuffer holds one attempt's response until it is known to be final.
type attemptBuffer struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newAttemptBuffer() *attemptBuffer {
	return &attemptBuffer{header: make(http.Header)}
}

func (b *attemptBuffer) Header() http.Header {
	return b.header
}

func (b *attemptBuffer) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *attemptBuffer) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}

func (b *attemptBuffer) Flush() {}

func (b *attemptBuffer) transient() bool {
	_, ok := transientStatuses[b.status]
	return ok
}

func (b *attemptBuffer) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k := range dst {
		dst.Del(k)
	}
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
