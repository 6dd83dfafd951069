// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	DefaultInterval      = time.Second
	DefaultTimeout       = 12 * time.Second
	DefaultMaxMessageLen = 2000

	// bytes of relay response kept for the success check and logs
	responsePeek = 200
)

// Config controls where and how fast messages are sent.
type Config struct {
	RelayURL      string
	RelayKey      string
	Interval      time.Duration
	Timeout       time.Duration
	MaxMessageLen int
}

// Dispatcher posts messages to the chat relay. Every send from every
// goroutine passes through one mutex and one limiter, so consecutive
// requests start at least Interval apart and the chunks of one long
// message are never interleaved with another message.
type Dispatcher struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	maxLen   int

	mu sync.Mutex
}

// New builds a Dispatcher. Zero durations and lengths fall back to the
// defaults. An empty RelayURL yields a dispatcher whose sends all fail.
func New(cfg Config) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = DefaultMaxMessageLen
	}

	return &Dispatcher{
		endpoint: relayEndpoint(cfg.RelayURL, cfg.RelayKey),
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Every(cfg.Interval), 1),
		maxLen:   cfg.MaxMessageLen,
	}
}

func relayEndpoint(relayURL, key string) string {
	if relayURL == "" {
		return ""
	}
	u, err := url.Parse(relayURL)
	if err != nil {
		slog.Error("invalid relay url", "error", err)
		return ""
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String()
}

// SendText sends content as a single message, or as ordered chunks when
// it is longer than MaxMessageLen.
func (d *Dispatcher) SendText(ctx context.Context, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if utf8.RuneCountInString(content) > d.maxLen {
		return d.sendChunks(ctx, content)
	}
	return d.post(ctx, textMessage{Content: content}, "text")
}

// SendLong splits content into chunks of at most MaxMessageLen characters
// and sends them in order. It reports whether every chunk was delivered;
// a failed chunk does not stop the rest.
func (d *Dispatcher) SendLong(ctx context.Context, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendChunks(ctx, content)
}

// SendPayload posts an interactive message and then, regardless of the
// outcome, the same content as plain text so it shows up even when the
// relay cannot forward components. The result reflects the text send.
func (d *Dispatcher) SendPayload(ctx context.Context, p Payload) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.post(ctx, rawMessage{Raw: p}, "payload")
	if p.Content == "" {
		return false
	}
	return d.sendChunks(ctx, p.Content)
}

func (d *Dispatcher) sendChunks(ctx context.Context, content string) bool {
	ok := true
	for _, chunk := range Chunk(content, d.maxLen) {
		if !d.post(ctx, textMessage{Content: chunk}, "text") {
			ok = false
		}
	}
	return ok
}

// post waits for the limiter and performs one request. Callers hold d.mu.
func (d *Dispatcher) post(ctx context.Context, body any, kind string) bool {
	if d.endpoint == "" {
		slog.Warn("relay not configured, dropping message", "kind", kind)
		return false
	}
	if err := d.limiter.Wait(ctx); err != nil {
		slog.Error("failed to wait for send slot", "kind", kind, "error", err)
		return false
	}
	if err := d.do(ctx, body); err != nil {
		slog.Error("failed to send message", "kind", kind, "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) do(ctx context.Context, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	peek, _ := io.ReadAll(io.LimitReader(resp.Body, responsePeek))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d: %q", resp.StatusCode, peek)
	}
	if !bytes.HasPrefix(peek, []byte("ok")) {
		return fmt.Errorf("relay rejected message: %q", peek)
	}
	return nil
}

// Chunk splits s into pieces of at most limit runes, never splitting a
// multi-byte character. An empty string yields no chunks.
func Chunk(s string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxMessageLen
	}
	var chunks []string
	count, start := 0, 0
	for i := range s {
		if count == limit {
			chunks = append(chunks, s[start:i])
			start, count = i, 0
		}
		count++
	}
	if start < len(s) {
		chunks = append(chunks, s[start:])
	}
	return chunks
}
