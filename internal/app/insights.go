package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fiche_client/internal/adapters/observability"
	"fiche_client/internal/domain"
)

type InsightService struct {
	gen      domain.TextGenerator
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewInsightService wraps gen. A nil gen means no API credential is configured;
// a nil cache disables caching.
func NewInsightService(gen domain.TextGenerator, c domain.Cache, ttl time.Duration) *InsightService {
	return &InsightService{gen: gen, cache: c, cacheTTL: ttl}
}

// Available reports whether a generator is configured.
func (s *InsightService) Available() bool { return s != nil && s.gen != nil }

// Generate sends prompt for kind k and returns the generated text. It never
// fails: errors and empty answers turn into the kind's fallback text.
func (s *InsightService) Generate(ctx context.Context, k domain.InsightKind, prompt string) string {
	if !s.Available() {
		observability.ObserveInsight(string(k), "error")
		return k.ErrorFallback()
	}

	key := insightCacheKey(k, prompt)
	if s.cache != nil {
		var cached string
		if ok, _ := s.cache.Get(ctx, key, &cached); ok && cached != "" {
			observability.ObserveInsight(string(k), "cached")
			return cached
		}
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(k)).Dur("dur", time.Since(start)).Msg("insight generation failed")
		observability.ObserveInsight(string(k), "error")
		return k.ErrorFallback()
	}
	if strings.TrimSpace(text) == "" {
		log.Warn().Str("kind", string(k)).Msg("insight generation returned no text")
		observability.ObserveInsight(string(k), "empty")
		return k.EmptyFallback()
	}

	observability.ObserveInsight(string(k), "ok")
	log.Debug().Str("kind", string(k)).Int("chars", len(text)).Dur("dur", time.Since(start)).Msg("insight generated")
	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, text, int(s.cacheTTL.Seconds()))
	}
	return text
}

func insightCacheKey(k domain.InsightKind, prompt string) string {
	sum := sha1.Sum([]byte(prompt))
	return fmt.Sprintf("insight:%s:%s", k, hex.EncodeToString(sum[:]))
}
