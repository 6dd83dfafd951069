// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

type received struct {
	at   time.Time
	key  string
	body map[string]any
}

type relay struct {
	mu       sync.Mutex
	requests []received
	status   int
	reply    string
	delay    time.Duration
}

func newRelay(t *testing.T) (*relay, *httptest.Server) {
	t.Helper()
	r := &relay{status: http.StatusOK, reply: "ok"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		r.mu.Lock()
		r.requests = append(r.requests, received{at: time.Now(), key: req.URL.Query().Get("key"), body: body})
		status, reply, delay := r.status, r.reply, r.delay
		r.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return r, srv
}

func (r *relay) set(status int, reply string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status, r.reply, r.delay = status, reply, delay
}

func (r *relay) snapshot() []received {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]received(nil), r.requests...)
}

func (r *relay) contents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, req := range r.requests {
		if c, ok := req.body["content"].(string); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestSendText(t *testing.T) {
	r, srv := newRelay(t)
	d := New(Config{RelayURL: srv.URL, RelayKey: "secret", Interval: time.Millisecond})

	if !d.SendText(context.Background(), "hello") {
		t.Fatal("Expected send to succeed")
	}
	reqs := r.snapshot()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(reqs))
	}
	if reqs[0].key != "secret" {
		t.Errorf("Expected key secret, got %q", reqs[0].key)
	}
	if got := r.contents(); got[0] != "hello" {
		t.Errorf("Expected hello, got %q", got[0])
	}
}

func TestSendText_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		delay  time.Duration
	}{
		{"server error", http.StatusInternalServerError, "ok", 0},
		{"body without ok", http.StatusOK, "denied", 0},
		{"timeout", http.StatusOK, "ok", 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, srv := newRelay(t)
			r.set(tt.status, tt.reply, tt.delay)
			d := New(Config{RelayURL: srv.URL, Interval: time.Millisecond, Timeout: 100 * time.Millisecond})

			if d.SendText(context.Background(), "hello") {
				t.Error("Expected send to fail")
			}
		})
	}
}

func TestSendText_NoRelay(t *testing.T) {
	d := New(Config{})
	if d.SendText(context.Background(), "hello") {
		t.Error("Expected send without relay to fail")
	}
}

func TestSend_MinimumInterval(t *testing.T) {
	r, srv := newRelay(t)
	interval := 60 * time.Millisecond
	d := New(Config{RelayURL: srv.URL, Interval: interval})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.SendText(context.Background(), "x")
		}()
	}
	wg.Wait()

	reqs := r.snapshot()
	if len(reqs) != 4 {
		t.Fatalf("Expected 4 requests, got %d", len(reqs))
	}
	// A little slack for timer granularity.
	for i := 1; i < len(reqs); i++ {
		gap := reqs[i].at.Sub(reqs[i-1].at)
		if gap < interval-10*time.Millisecond {
			t.Errorf("requests %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestSendLong_ChunksInOrder(t *testing.T) {
	r, srv := newRelay(t)
	d := New(Config{RelayURL: srv.URL, Interval: time.Millisecond, MaxMessageLen: 2000})

	msg := strings.Repeat("가", 2000) + strings.Repeat("b", 2000) + strings.Repeat("c", 500)
	if !d.SendLong(context.Background(), msg) {
		t.Fatal("Expected send to succeed")
	}

	got := r.contents()
	if len(got) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(got))
	}
	if strings.Join(got, "") != msg {
		t.Error("Chunks do not reassemble to the original message")
	}
	for i, c := range got {
		if n := utf8.RuneCountInString(c); n > 2000 {
			t.Errorf("chunk %d has %d characters", i, n)
		}
	}
}

func TestSendText_ChunksLongContent(t *testing.T) {
	r, srv := newRelay(t)
	d := New(Config{RelayURL: srv.URL, Interval: time.Millisecond, MaxMessageLen: 2000})

	msg := strings.Repeat("x", 2500)
	if !d.SendText(context.Background(), msg) {
		t.Fatal("Expected send to succeed")
	}

	got := r.contents()
	if len(got) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(got))
	}
	if strings.Join(got, "") != msg {
		t.Error("Chunks do not reassemble to the original message")
	}
	for i, c := range got {
		if n := utf8.RuneCountInString(c); n > 2000 {
			t.Errorf("chunk %d has %d characters", i, n)
		}
	}
}

func TestSendLong_NotInterleaved(t *testing.T) {
	r, srv := newRelay(t)
	d := New(Config{RelayURL: srv.URL, Interval: time.Millisecond, MaxMessageLen: 10})

	var wg sync.WaitGroup
	for _, letter := range []string{"a", "b"} {
		wg.Add(1)
		go func(letter string) {
			defer wg.Done()
			d.SendLong(context.Background(), strings.Repeat(letter, 50))
		}(letter)
	}
	wg.Wait()

	got := r.contents()
	if len(got) != 10 {
		t.Fatalf("Expected 10 chunks, got %d", len(got))
	}
	switches := 0
	for i := 1; i < len(got); i++ {
		if got[i][0] != got[i-1][0] {
			switches++
		}
	}
	if switches != 1 {
		t.Errorf("Expected messages sent back to back, got order %v", got)
	}
}

func TestSendPayload_RawThenFallback(t *testing.T) {
	r, srv := newRelay(t)
	d := New(Config{RelayURL: srv.URL, Interval: time.Millisecond})

	p := Payload{
		Content:    "result",
		Components: []ActionRow{NewActionRow(NewButton(StyleSuccess, "A", "res|1|A|x"))},
	}
	if !d.SendPayload(context.Background(), p) {
		t.Fatal("Expected send to succeed")
	}

	reqs := r.snapshot()
	if len(reqs) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(reqs))
	}
	raw, ok := reqs[0].body["raw"].(map[string]any)
	if !ok {
		t.Fatalf("Expected raw payload first, got %v", reqs[0].body)
	}
	if raw["content"] != "result" {
		t.Errorf("unexpected raw content %v", raw["content"])
	}
	rows, _ := raw["components"].([]any)
	if len(rows) != 1 {
		t.Errorf("Expected 1 action row, got %v", raw["components"])
	}
	if reqs[1].body["content"] != "result" {
		t.Errorf("Expected text fallback, got %v", reqs[1].body)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  []string
	}{
		{"", 3, nil},
		{"abc", 3, []string{"abc"}},
		{"abcd", 3, []string{"abc", "d"}},
		{"가나다라", 2, []string{"가나", "다라"}},
	}
	for _, tt := range tests {
		got := Chunk(tt.in, tt.limit)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Chunk(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
