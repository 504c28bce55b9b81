// Command fiche renders a client card from a profile JSON file and, when a
// Gemini key is configured, the three AI insights for it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"fiche_client/internal/adapters/gemini"
	"fiche_client/internal/adapters/observability"
	"fiche_client/internal/app"
	"fiche_client/internal/domain"
	"fiche_client/internal/shared"
)

type output struct {
	Card     app.Card                      `json:"card"`
	Insights map[domain.InsightKind]string `json:"insights,omitempty"`
}

func main() {
	var (
		in      = flag.String("profile", "-", "profile JSON file, - for stdin")
		noAI    = flag.Bool("no-ai", false, "skip insight generation")
		timeout = flag.Duration("timeout", 90*time.Second, "overall deadline for insight generation")
	)
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv).Output(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	r := io.Reader(os.Stdin)
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatal().Err(err).Msg("open profile")
		}
		defer f.Close()
		r = f
	}

	var gen domain.TextGenerator
	if !*noAI && cfg.GeminiKey != "" {
		c, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GeminiKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBase,
			RPS:     cfg.GeminiRPS,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client init failed")
		}
		gen = c
	}

	if err := run(ctx, r, os.Stdout, app.NewInsightService(gen, nil, 0)); err != nil {
		log.Fatal().Err(err).Msg("fiche failed")
	}
}

// run decodes a profile over the defaults, renders its card and, when the
// service is available, fills the insights concurrently.
func run(ctx context.Context, r io.Reader, w io.Writer, svc app.Generator) error {
	p, err := readProfile(r)
	if err != nil {
		return err
	}

	out := output{Card: app.RenderCard(p)}
	if svc.Available() {
		texts := make([]string, len(domain.InsightKinds))
		g, gctx := errgroup.WithContext(ctx)
		for i, k := range domain.InsightKinds {
			prompt := app.BuildPrompt(k, p)
			g.Go(func() error {
				texts[i] = svc.Generate(gctx, k, prompt)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		out.Insights = make(map[domain.InsightKind]string, len(texts))
		for i, k := range domain.InsightKinds {
			out.Insights[k] = texts[i]
		}
	} else {
		log.Warn().Msg(domain.MissingCredentialNotice)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readProfile(r io.Reader) (domain.Profile, error) {
	p := domain.DefaultProfile()
	if err := json.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("decode profile: %w", err)
	}
	if !p.TransactionType.Valid() {
		return p, fmt.Errorf("%w: transactionType %q", domain.ErrInvalidValue, p.TransactionType)
	}
	if !p.PropertyType.Valid() {
		return p, fmt.Errorf("%w: propertyType %q", domain.ErrInvalidValue, p.PropertyType)
	}
	return p, nil
}
