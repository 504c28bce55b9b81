package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"fiche_client/internal/domain"
)

type countingGen struct{ calls atomic.Int32 }

func (g *countingGen) Available() bool { return true }

func (g *countingGen) Generate(_ context.Context, k domain.InsightKind, _ string) string {
	g.calls.Add(1)
	return "ok " + string(k)
}

type offGen struct{}

func (offGen) Available() bool { return false }
func (offGen) Generate(context.Context, domain.InsightKind, string) string {
	panic("must not be called")
}

func TestRun_CardOnly(t *testing.T) {
	in := strings.NewReader(`{"lastName":"Tazi","propertyType":"Terrain Agricole","minSurface":12}`)
	var out bytes.Buffer
	if err := run(context.Background(), in, &out, offGen{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Card.FullName != "TAZI" || got.Card.Criteria.Surface != "12 Hectares" {
		t.Fatalf("card %+v", got.Card)
	}
	if got.Card.Nationality != "Marocaine" {
		t.Fatalf("defaults not applied: %q", got.Card.Nationality)
	}
	if got.Insights != nil {
		t.Fatalf("insights without credential: %v", got.Insights)
	}
}

func TestRun_Insights(t *testing.T) {
	gen := &countingGen{}
	var out bytes.Buffer
	if err := run(context.Background(), strings.NewReader(`{}`), &out, gen); err != nil {
		t.Fatalf("run: %v", err)
	}
	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gen.calls.Load() != 3 || got.Insights[domain.InsightDraft] != "ok draft" {
		t.Fatalf("insights %v after %d calls", got.Insights, gen.calls.Load())
	}
}

func TestRun_RejectsUnknownEnum(t *testing.T) {
	err := run(context.Background(), strings.NewReader(`{"propertyType":"Château"}`), &bytes.Buffer{}, offGen{})
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
}
