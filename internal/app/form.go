package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"fiche_client/internal/domain"
)

// Generator produces the text of one insight; InsightService implements it.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, k domain.InsightKind, prompt string) string
}

// State is a consistent copy of the controller's data.
type State struct {
	Profile    domain.Profile    `json:"profile"`
	Categories domain.Categories `json:"categories"`
	Insights   domain.Insights   `json:"insights"`
}

// FormController owns the live profile of one session and the three insight
// panels. Every panel is written only by its own in-flight request.
type FormController struct {
	mu       sync.Mutex
	profile  domain.Profile
	insights domain.Insights
	gen      map[domain.InsightKind]uint64
	session  uint64

	media     domain.MediaStore
	generator Generator
}

func NewFormController(media domain.MediaStore, g Generator) *FormController {
	return &FormController{
		profile:   domain.DefaultProfile(),
		gen:       map[domain.InsightKind]uint64{},
		media:     media,
		generator: g,
	}
}

func (c *FormController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Profile:    c.profile.Clone(),
		Categories: domain.Classify(c.profile.PropertyType),
		Insights:   c.insights,
	}
}

func (c *FormController) Profile() domain.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

// UpdateField replaces exactly one field, leaving all others untouched.
func (c *FormController) UpdateField(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.profile
	if err := applyField(&next, name, value); err != nil {
		return err
	}
	c.profile = next
	log.Debug().Str("field", name).Msg("profile field updated")
	return nil
}

// Reset starts a new session: default profile, empty panels. In-flight
// requests from the previous session are discarded when they land.
func (c *FormController) Reset(ctx context.Context) {
	c.mu.Lock()
	old := c.profile.Media
	c.profile = domain.DefaultProfile()
	c.insights = domain.Insights{}
	c.session++
	for _, k := range domain.InsightKinds {
		c.gen[k]++
	}
	c.mu.Unlock()

	for _, m := range old {
		if err := c.media.Delete(ctx, m.ID); err != nil {
			log.Warn().Err(err).Str("id", m.ID).Msg("media delete failed")
		}
	}
}

// AddMedia stores each upload and appends one item per file after the
// existing ones. Uploads that fail are reported after the successful ones
// have been appended. Uploads that finish after a Reset are released instead.
func (c *FormController) AddMedia(ctx context.Context, uploads []domain.Upload) ([]domain.MediaItem, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	added := make([]domain.MediaItem, 0, len(uploads))
	var firstErr error
	for _, up := range uploads {
		item, err := c.media.Save(ctx, up)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("save %q: %w", up.Name, err)
			}
			continue
		}
		added = append(added, item)
	}

	c.mu.Lock()
	if c.session != session {
		c.mu.Unlock()
		log.Debug().Int("count", len(added)).Msg("uploads from a reset session released")
		for _, m := range added {
			if err := c.media.Delete(ctx, m.ID); err != nil {
				log.Warn().Err(err).Str("id", m.ID).Msg("media delete failed")
			}
		}
		return nil, firstErr
	}
	media := make([]domain.MediaItem, 0, len(c.profile.Media)+len(added))
	media = append(media, c.profile.Media...)
	c.profile.Media = append(media, added...)
	c.mu.Unlock()

	return added, firstErr
}

// RemoveMedia drops the item with the given id; an absent id is a no-op.
func (c *FormController) RemoveMedia(ctx context.Context, id string) {
	c.mu.Lock()
	found := false
	kept := make([]domain.MediaItem, 0, len(c.profile.Media))
	for _, m := range c.profile.Media {
		if m.ID == id && !found {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	c.profile.Media = kept
	c.mu.Unlock()

	if !found {
		return
	}
	if err := c.media.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("media delete failed")
	}
}

// TriggerGeneration starts the three insight requests. Without a credential it
// returns domain.ErrMissingCredential and changes nothing. The requests are not
// joined and outlive ctx's cancellation; each one clears only its own loading
// flag. A response that belongs to an older trigger is dropped.
func (c *FormController) TriggerGeneration(ctx context.Context) error {
	if c.generator == nil || !c.generator.Available() {
		return domain.ErrMissingCredential
	}

	c.mu.Lock()
	p := c.profile.Clone()
	tokens := make(map[domain.InsightKind]uint64, len(domain.InsightKinds))
	for _, k := range domain.InsightKinds {
		c.gen[k]++
		tokens[k] = c.gen[k]
		c.insights.Panel(k).Loading = true
	}
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	for _, k := range domain.InsightKinds {
		prompt := BuildPrompt(k, p)
		go func(k domain.InsightKind, token uint64) {
			text := c.generator.Generate(detached, k, prompt)
			c.settle(k, token, text)
		}(k, tokens[k])
	}
	log.Info().Uint64("gen", tokens[domain.InsightSummary]).Msg("insight generation dispatched")
	return nil
}

func (c *FormController) settle(k domain.InsightKind, token uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[k] != token {
		log.Debug().Str("kind", string(k)).Uint64("gen", token).Msg("stale insight discarded")
		return
	}
	panel := c.insights.Panel(k)
	panel.Text = text
	panel.Loading = false
}
