package app

import (
	"math"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fiche_client/internal/domain"
)

const (
	phoneRegion = "MA"
	emptyValue  = "-"
)

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Criteria struct {
	Type          string `json:"type"`
	BudgetMin     string `json:"budgetMin"`
	BudgetMax     string `json:"budgetMax"`
	PriceLabel    string `json:"priceLabel"`
	Price         string `json:"price"`
	City          string `json:"city"`
	Location      string `json:"location,omitempty"`
	Neighborhoods string `json:"neighborhoods"`
	SurfaceLabel  string `json:"surfaceLabel"`
	Surface       string `json:"surface"`
}

type Feature struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type CategoryBlock struct {
	Kind     domain.Category `json:"kind"`
	Features []Feature       `json:"features,omitempty"`
	Notice   string          `json:"notice,omitempty"`
}

type Geo struct {
	MapsLink    string `json:"mapsLink,omitempty"`
	Coordinates string `json:"coordinates,omitempty"`
}

type MediaTile struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Kind        domain.MediaKind `json:"type"`
	URL         string           `json:"url"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Placeholder bool             `json:"placeholder"`
}

// Card is the read-only client card; it is also what gets printed.
type Card struct {
	FullName    string        `json:"fullName"`
	Nationality string        `json:"nationality"`
	Urgent      bool          `json:"urgent"`
	Status      string        `json:"status"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Socials     []SocialLink  `json:"socials,omitempty"`
	Criteria    Criteria      `json:"criteria"`
	Category    CategoryBlock `json:"category"`
	Geo         *Geo          `json:"geo,omitempty"`
	Media       []MediaTile   `json:"media,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// socialDomains completes bare handles into links; trimAt drops a leading "@".
var socialDomains = []struct {
	platform string
	prefix   string
	trimAt   bool
	value    func(p domain.Profile) string
}{
	{"facebook", "https://facebook.com/", false, func(p domain.Profile) string { return p.Facebook }},
	{"instagram", "https://instagram.com/", true, func(p domain.Profile) string { return p.Instagram }},
	{"linkedin", "https://linkedin.com/in/", false, func(p domain.Profile) string { return p.LinkedIn }},
	{"youtube", "https://youtube.com/", false, func(p domain.Profile) string { return p.YouTube }},
	{"tiktok", "https://tiktok.com/@", true, func(p domain.Profile) string { return p.TikTok }},
	{"twitter", "https://twitter.com/", true, func(p domain.Profile) string { return p.Twitter }},
	{"website", "https://", false, func(p domain.Profile) string { return p.Website }},
}

// RenderCard projects p into a Card. It reads p only, so rendering the same
// profile twice yields the same card.
func RenderCard(p domain.Profile) Card {
	cat := domain.Classify(p.PropertyType)

	card := Card{
		FullName:    strings.TrimSpace(p.FirstName + " " + strings.ToUpper(p.LastName)),
		Nationality: p.Nationality,
		Urgent:      p.Urgent,
		Status:      "Standard",
		Phone:       orDash(formatPhone(p.Phone)),
		Email:       orDash(strings.TrimSpace(p.Email)),
		Socials:     socialLinks(p),
		Criteria:    criteria(p, cat),
		Category:    categoryBlock(p, cat),
		Notes:       p.Notes,
	}
	if p.Urgent {
		card.Status = "Urgent"
	}
	if p.HasGeo() {
		g := &Geo{MapsLink: p.GoogleMapsLink}
		if p.Latitude != "" && p.Longitude != "" {
			g.Coordinates = p.Latitude + ", " + p.Longitude
		}
		card.Geo = g
	}
	for _, m := range p.Media {
		tile := MediaTile{ID: m.ID, Name: m.Name, Kind: m.Kind, URL: m.URL}
		if m.Kind == domain.MediaVideo {
			tile.Placeholder = true
		} else {
			tile.Thumbnail = m.URL + "/thumb"
		}
		card.Media = append(card.Media, tile)
	}
	return card
}

func socialLinks(p domain.Profile) []SocialLink {
	var out []SocialLink
	for _, s := range socialDomains {
		v := strings.TrimSpace(s.value(p))
		if v == "" {
			continue
		}
		url := v
		if !strings.HasPrefix(v, "http") {
			if s.trimAt {
				v = strings.Replace(v, "@", "", 1)
			}
			url = s.prefix + v
		}
		out = append(out, SocialLink{Platform: s.platform, URL: url})
	}
	return out
}

func criteria(p domain.Profile, cat domain.Categories) Criteria {
	c := Criteria{
		Type:          string(p.TransactionType) + " / " + string(p.PropertyType),
		BudgetMin:     FormatMAD(p.BudgetMin),
		BudgetMax:     FormatMAD(p.BudgetMax),
		PriceLabel:    domain.PriceLabel(p.TransactionType),
		Price:         emptyValue,
		City:          p.City,
		Location:      p.Location,
		Neighborhoods: p.PreferredNeighborhoods,
		SurfaceLabel:  "Surface Min",
		Surface:       num(p.MinSurface) + " " + cat.SurfaceUnit(),
	}
	if p.Price > 0 {
		c.Price = FormatMAD(p.Price)
	}
	if c.Neighborhoods == "" {
		c.Neighborhoods = unspecified
	}
	if cat.IsAgricultural {
		c.SurfaceLabel = "Surface (Ha)"
	}
	return c
}

func categoryBlock(p domain.Profile, cat domain.Categories) CategoryBlock {
	b := CategoryBlock{Kind: cat.Kind()}
	add := func(key, label string) { b.Features = append(b.Features, Feature{Key: key, Label: label}) }

	switch {
	case cat.IsResidential:
		add("bedrooms", itoa(p.Bedrooms)+" Ch.")
		add("livingRooms", itoa(p.LivingRooms)+" Salon(s)")
		add("bathrooms", itoa(p.Bathrooms)+" SDB")
		add("kitchens", itoa(p.Kitchens)+" Cuisine(s)")
		if p.Garage > 0 || p.Parking > 0 {
			add("parking", itoa(p.Garage+p.Parking)+" Pk/Box")
		}
		if p.Balconies > 0 || p.Terraces > 0 {
			add("outdoor", "Extérieurs")
		}
		if cat.IsVilla || cat.IsPenthouse {
			if p.Pool {
				add("pool", "Piscine")
			}
			if p.Garden {
				add("garden", "Jardin")
			}
		}
		if p.Elevator {
			add("elevator", "Ascenseur")
		}
		if p.Floor > 0 {
			add("floor", "Étage "+itoa(p.Floor))
		}
	case cat.IsOffice:
		add("floor", "Étage "+itoa(p.Floor))
		add("bathrooms", itoa(p.Bathrooms)+" SDB")
		add("kitchens", itoa(p.Kitchens)+" Cuisine(s)")
		if p.Balconies > 0 {
			add("balconies", "Balcon")
		}
		if p.Elevator {
			add("elevator", "Ascenseur")
		}
	case cat.IsHotel:
		add("stars", itoa(p.Stars)+" Étoiles")
		add("bedrooms", itoa(p.Bedrooms)+" Chambres")
		if p.Restaurant {
			add("restaurant", "Restaurant")
		}
		if p.Cafe {
			add("cafe", "Café")
		}
		if p.Spa {
			add("spa", "Spa/Hammam")
		}
		if p.ConferenceRoom {
			add("conferenceRoom", "Salle Conf.")
		}
		if p.Pool {
			add("pool", "Piscine")
		}
	case cat.IsAgricultural:
		add("wells", itoa(p.Wells)+" Puits")
		add("waterTowers", itoa(p.WaterTowers)+" Château(x)")
		add("trees", itoa(p.Trees)+" Arbres")
		if p.TreeTypes != "" {
			add("treeTypes", p.TreeTypes)
		}
		if p.DripIrrigation {
			add("dripIrrigation", "Goutte à goutte")
		}
		if p.Infrastructure != "" {
			add("infrastructure", "Infra: "+p.Infrastructure)
		}
	default:
		b.Notice = "Terrain constructible, détails spécifiques à voir en notes."
	}
	return b
}

// FormatMAD renders a whole-dirham amount with French digit grouping.
func FormatMAD(amount float64) string {
	return message.NewPrinter(language.French).Sprintf("%d", int64(math.Round(amount))) + " MAD"
}

// formatPhone renders valid numbers in international format and returns
// anything else trimmed, as typed.
func formatPhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	n, err := phonenumbers.Parse(trimmed, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(n) {
		return trimmed
	}
	return phonenumbers.Format(n, phonenumbers.INTERNATIONAL)
}

func orDash(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

func itoa(n int) string { return num(float64(n)) }

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// RecommendationsHTML applies the light markdown the recommendations panel
// understands. The input must already be HTML-escaped.
func RecommendationsHTML(escaped string) string {
	s := boldRe.ReplaceAllString(escaped, "<strong>$1</strong>")
	s = strings.ReplaceAll(s, "- ", "• ")
	return strings.Join(strings.Split(s, "\n"), "<br/>")
}
