package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"fiche_client/internal/domain"
)

// ---- fakes ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*string); ok {
		*d = v.(string)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

// fakeGen returns text (or err) and counts calls.
type fakeGen struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (g *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.text, g.err
}

var errTransport = errors.New("dial tcp: connection refused")

// fakeMedia hands out ids m1, m2, ... and records deletes. onSave runs before
// each save without the store lock held.
type fakeMedia struct {
	mu      sync.Mutex
	n       int
	deleted []string
	onSave  func()
}

func (m *fakeMedia) Save(ctx context.Context, up domain.Upload) (domain.MediaItem, error) {
	if m.onSave != nil {
		m.onSave()
	}
	if len(up.Data) == 0 {
		return domain.MediaItem{}, domain.ErrUnsupportedMedia
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	id := fmt.Sprintf("m%d", m.n)
	return domain.MediaItem{ID: id, URL: "/v1/media/" + id, Kind: domain.MediaImage, Name: up.Name}, nil
}
func (m *fakeMedia) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

// gatedGenerator blocks each call until it is released, either through the
// kind's shared gate or individually by prompt content.
type gatedGenerator struct {
	available bool
	gates     map[domain.InsightKind]chan string

	mu    sync.Mutex
	calls []*gatedCall
}

type gatedCall struct {
	kind     domain.InsightKind
	prompt   string
	reply    chan string
	released bool
}

func newGated() *gatedGenerator {
	g := &gatedGenerator{available: true, gates: map[domain.InsightKind]chan string{}}
	for _, k := range domain.InsightKinds {
		g.gates[k] = make(chan string, 4)
	}
	return g
}

func (g *gatedGenerator) Available() bool { return g.available }
func (g *gatedGenerator) Generate(ctx context.Context, k domain.InsightKind, prompt string) string {
	call := &gatedCall{kind: k, prompt: prompt, reply: make(chan string, 1)}
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.mu.Unlock()
	select {
	case s := <-g.gates[k]:
		return s
	case s := <-call.reply:
		return s
	}
}

// release answers the pending call of kind k whose prompt contains marker.
func (g *gatedGenerator) release(t *testing.T, k domain.InsightKind, marker, text string) {
	t.Helper()
	var call *gatedCall
	waitFor(t, "call containing "+marker, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		for _, c := range g.calls {
			if c.kind == k && !c.released && strings.Contains(c.prompt, marker) {
				c.released = true
				call = c
				return true
			}
		}
		return false
	})
	call.reply <- text
}

// ---- helpers ----

// holdsFor fails if cond turns false at any point during d.
func holdsFor(t *testing.T, what string, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if !cond() {
			t.Fatalf("%s no longer holds", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
