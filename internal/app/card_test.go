package app_test

import (
	"reflect"
	"strings"
	"testing"

	"fiche_client/internal/app"
	"fiche_client/internal/domain"
)

func features(c app.Card) map[string]string {
	out := map[string]string{}
	for _, f := range c.Category.Features {
		out[f.Key] = f.Label
	}
	return out
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRenderCard_VillaBlock(t *testing.T) {
	card := app.RenderCard(villa())

	if card.Category.Kind != domain.CategoryResidential {
		t.Fatalf("kind %s", card.Category.Kind)
	}
	f := features(card)
	if f["pool"] != "Piscine" || f["garden"] != "Jardin" {
		t.Fatalf("expected pool and garden, got %v", f)
	}
	if f["bedrooms"] != "4 Ch." {
		t.Fatalf("bedrooms label %q", f["bedrooms"])
	}
	for _, k := range []string{"wells", "waterTowers", "trees", "stars", "restaurant", "spa"} {
		if _, ok := f[k]; ok {
			t.Errorf("villa card should not show %s", k)
		}
	}
	if card.FullName != "Karim BENNANI" {
		t.Errorf("full name %q", card.FullName)
	}
}

func TestRenderCard_PoolHiddenForApartment(t *testing.T) {
	p := domain.DefaultProfile()
	p.Pool = true
	if _, ok := features(app.RenderCard(p))["pool"]; ok {
		t.Fatal("apartment card should not show pool")
	}
}

func TestRenderCard_RentalPrice(t *testing.T) {
	p := domain.DefaultProfile()
	p.TransactionType = domain.TransactionRental
	p.Price = 8000

	c := app.RenderCard(p).Criteria
	if c.PriceLabel != domain.LabelRent {
		t.Fatalf("label %q, want %q", c.PriceLabel, domain.LabelRent)
	}
	if digits(c.Price) != "8000" || !strings.HasSuffix(c.Price, "MAD") {
		t.Fatalf("price %q", c.Price)
	}

	p.Price = 0
	if got := app.RenderCard(p).Criteria.Price; got != "-" {
		t.Fatalf("zero price rendered %q, want -", got)
	}
}

func TestRenderCard_Socials(t *testing.T) {
	p := domain.DefaultProfile()
	if c := app.RenderCard(p); len(c.Socials) != 0 {
		t.Fatalf("no social fields, got %v", c.Socials)
	}

	p.Instagram = "@karim"
	p.TikTok = "@karim.tt"
	p.LinkedIn = "karim-b"
	p.Facebook = "https://facebook.com/karim.page"
	p.Website = "karim.ma"

	got := map[string]string{}
	for _, s := range app.RenderCard(p).Socials {
		got[s.Platform] = s.URL
	}
	want := map[string]string{
		"facebook":  "https://facebook.com/karim.page",
		"instagram": "https://instagram.com/karim",
		"linkedin":  "https://linkedin.com/in/karim-b",
		"tiktok":    "https://tiktok.com/@karim.tt",
		"website":   "https://karim.ma",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("socials %v, want %v", got, want)
	}
}

func TestRenderCard_GeoAndContact(t *testing.T) {
	p := domain.DefaultProfile()
	c := app.RenderCard(p)
	if c.Geo != nil {
		t.Fatal("no geo expected")
	}
	if c.Email != "-" {
		t.Fatalf("empty email rendered %q", c.Email)
	}

	p.Latitude, p.Longitude = "33.9", "-5.5"
	p.Phone = "0612345678"
	c = app.RenderCard(p)
	if c.Geo == nil || c.Geo.Coordinates != "33.9, -5.5" || c.Geo.MapsLink != "" {
		t.Fatalf("geo %+v", c.Geo)
	}
	if !strings.HasPrefix(c.Phone, "+212") {
		t.Fatalf("phone %q should be international", c.Phone)
	}

	p.Latitude = ""
	p.GoogleMapsLink = "https://maps.app.goo.gl/abc"
	c = app.RenderCard(p)
	if c.Geo == nil || c.Geo.Coordinates != "" || c.Geo.MapsLink == "" {
		t.Fatalf("geo %+v", c.Geo)
	}
}

func TestRenderCard_CategoryBlocks(t *testing.T) {
	p := domain.DefaultProfile()

	p.PropertyType = domain.PropertyLand
	c := app.RenderCard(p)
	if c.Category.Kind != domain.CategoryLand || c.Category.Notice == "" || len(c.Category.Features) != 0 {
		t.Fatalf("land block %+v", c.Category)
	}

	p.PropertyType = domain.PropertyAgriculturalLand
	p.MinSurface = 3
	c = app.RenderCard(p)
	if _, ok := features(c)["wells"]; !ok {
		t.Fatalf("agricultural block %+v", c.Category)
	}
	if c.Criteria.Surface != "3 Hectares" {
		t.Fatalf("surface %q", c.Criteria.Surface)
	}

	p.PropertyType = domain.PropertyOffice
	p.Elevator = true
	f := features(app.RenderCard(p))
	if f["elevator"] != "Ascenseur" || f["floor"] != "Étage 0" {
		t.Fatalf("office block %v", f)
	}

	p.PropertyType = domain.PropertyHotel
	p.Stars = 5
	if features(app.RenderCard(p))["stars"] != "5 Étoiles" {
		t.Fatal("hotel block missing stars")
	}
}

func TestRenderCard_MediaTiles(t *testing.T) {
	p := domain.DefaultProfile()
	p.Media = []domain.MediaItem{
		{ID: "1", URL: "/v1/media/1", Kind: domain.MediaImage, Name: "salon.jpg"},
		{ID: "2", URL: "/v1/media/2", Kind: domain.MediaVideo, Name: "visite.mp4"},
	}
	tiles := app.RenderCard(p).Media
	if len(tiles) != 2 {
		t.Fatalf("tiles %d", len(tiles))
	}
	if tiles[0].Placeholder || tiles[0].Thumbnail != "/v1/media/1/thumb" {
		t.Fatalf("image tile %+v", tiles[0])
	}
	if !tiles[1].Placeholder || tiles[1].Name != "visite.mp4" || tiles[1].Thumbnail != "" {
		t.Fatalf("video tile %+v", tiles[1])
	}
}

func TestRenderCard_Idempotent(t *testing.T) {
	p := villa()
	p.Media = []domain.MediaItem{{ID: "1", URL: "/v1/media/1", Kind: domain.MediaImage}}
	before := p.Clone()

	a, b := app.RenderCard(p), app.RenderCard(p)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two renders differ")
	}
	if !reflect.DeepEqual(p, before) {
		t.Fatal("render mutated the profile")
	}
}

func TestRecommendationsHTML(t *testing.T) {
	got := app.RecommendationsHTML("- **Hivernage**: calme\n- Guéliz")
	want := "• <strong>Hivernage</strong>: calme<br/>• Guéliz"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
