package app

import (
	"fmt"
	"strconv"
	"strings"

	"fiche_client/internal/domain"
)

const unspecified = "Non spécifié"

// socialPlatforms is the display order of the social/web fields.
var socialPlatforms = []struct {
	name  string
	value func(p domain.Profile) string
}{
	{"Facebook", func(p domain.Profile) string { return p.Facebook }},
	{"Instagram", func(p domain.Profile) string { return p.Instagram }},
	{"LinkedIn", func(p domain.Profile) string { return p.LinkedIn }},
	{"YouTube", func(p domain.Profile) string { return p.YouTube }},
	{"TikTok", func(p domain.Profile) string { return p.TikTok }},
	{"X (Twitter)", func(p domain.Profile) string { return p.Twitter }},
	{"Site Web", func(p domain.Profile) string { return p.Website }},
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func ouiNon(b bool) string {
	if b {
		return "OUI"
	}
	return "NON"
}

// socialPresence joins the names of every filled social field, or "Aucun".
func socialPresence(p domain.Profile) string {
	var names []string
	for _, s := range socialPlatforms {
		if s.value(p) != "" {
			names = append(names, s.name)
		}
	}
	if len(names) == 0 {
		return "Aucun"
	}
	return strings.Join(names, ", ")
}

// specifics renders one line per populated category attribute.
func specifics(p domain.Profile, cat domain.Categories) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString("\n")
		fmt.Fprintf(&b, format, args...)
	}

	if cat.IsResidential || cat.IsOffice {
		if cat.IsResidential {
			line("Configuration: %d Ch, %d Salon(s)", p.Bedrooms, p.LivingRooms)
		}
		line("Sanitaires/Cuisine: %d SDB, %d Cuisine(s)", p.Bathrooms, p.Kitchens)
		if p.Floor > 0 {
			line("Étage: %d", p.Floor)
		}
		if p.Elevator {
			line("Ascenseur: OUI")
		}
		if p.Garage > 0 || p.Parking > 0 {
			line("Stationnement: %d Garage, %d Parking", p.Garage, p.Parking)
		}
		if p.Pool {
			line("Piscine: OUI")
		}
		if p.Garden {
			line("Jardin: OUI")
		}
	}
	if cat.IsHotel {
		line("Hôtel: %d Étoiles, %d Chambres", p.Stars, p.Bedrooms)
		if p.Restaurant {
			line("Restaurant: OUI")
		}
		if p.Cafe {
			line("Café: OUI")
		}
		if p.Spa {
			line("Spa/Hammam: OUI")
		}
		if p.ConferenceRoom {
			line("Salle Conférence: OUI")
		}
		if p.Pool {
			line("Piscine: OUI")
		}
	}
	if cat.IsAgricultural {
		line("Agricole: %d Puits, %d Châteaux d'eau, %d Arbres", p.Wells, p.WaterTowers, p.Trees)
		if p.TreeTypes != "" {
			line("Types d'arbres: %s", p.TreeTypes)
		}
		if p.DripIrrigation {
			line("Irrigation: Goutte à goutte installée")
		}
		if p.Infrastructure != "" {
			line("Infrastructures: %s", p.Infrastructure)
		}
	}
	return b.String()
}

// BuildSummaryPrompt asks for a short CRM summary of the whole record.
func BuildSummaryPrompt(p domain.Profile, cat domain.Categories) string {
	price := unspecified
	if p.Price > 0 {
		price = num(p.Price) + " MAD"
	}

	var b strings.Builder
	b.WriteString("Agis comme un agent immobilier senior au Maroc.\n")
	b.WriteString("Analyse la fiche client suivante et génère un résumé professionnel concis (max 100 mots) pour le CRM de l'agence.\n")
	fmt.Fprintf(&b, "Mets en évidence le sérieux, le budget par rapport au marché actuel à %s (Zone: %s), l'urgence et la présence numérique du client (si renseignée).\n", p.City, p.Location)
	b.WriteString("Prends en compte les détails spécifiques demandés (nbr pièces, piscine, puits, type d'agriculture, classification hôtel, etc).\n\n")
	b.WriteString("Données client :\n")
	fmt.Fprintf(&b, "Nom: %s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(&b, "Type: %s de %s\n", p.TransactionType, p.PropertyType)
	fmt.Fprintf(&b, "Ville: %s\n", p.City)
	fmt.Fprintf(&b, "Localisation spécifique (Secteur/Adresse): %s\n", p.Location)
	fmt.Fprintf(&b, "Localisation précise (GPS/Maps): %s\n", ouiNon(p.HasGeo()))
	fmt.Fprintf(&b, "Quartiers préférés: %s\n", p.PreferredNeighborhoods)
	fmt.Fprintf(&b, "Budget Range: %s - %s MAD\n", num(p.BudgetMin), num(p.BudgetMax))
	fmt.Fprintf(&b, "Prix Cible / Loyer: %s\n", price)
	fmt.Fprintf(&b, "Surface min: %s %s%s\n", num(p.MinSurface), cat.SurfaceUnit(), specifics(p, cat))
	fmt.Fprintf(&b, "Réseaux sociaux / Web: %s\n", socialPresence(p))
	fmt.Fprintf(&b, "Urgence: %s\n", ouiNon(p.Urgent))
	fmt.Fprintf(&b, "Notes: %s\n", p.Notes)
	return b.String()
}

// BuildRecommendationsPrompt asks for three neighborhoods and a budget check.
func BuildRecommendationsPrompt(p domain.Profile, cat domain.Categories) string {
	price := unspecified
	if p.Price > 0 {
		price = num(p.Price)
	}

	var b strings.Builder
	b.WriteString("Agis comme un expert du marché immobilier marocain.\n")
	fmt.Fprintf(&b, "Basé sur les critères suivants, suggère 3 quartiers spécifiques à %s (proche de %s si pertinent) qui pourraient correspondre, et donne une estimation rapide si le budget est réaliste pour la configuration demandée.\n\n", p.City, p.Location)
	b.WriteString("Critères :\n")
	fmt.Fprintf(&b, "Budget Max: %s MAD\n", num(p.BudgetMax))
	fmt.Fprintf(&b, "Prix Cible: %s\n", price)
	fmt.Fprintf(&b, "Type: %s\n", p.PropertyType)
	fmt.Fprintf(&b, "Surface: %s %s\n", num(p.MinSurface), cat.SurfaceUnit())
	fmt.Fprintf(&b, "Notes: %s\n\n", p.Notes)
	b.WriteString("Réponds en format liste à puces (Markdown). Sois direct et précis.\n")
	return b.String()
}

// BuildDraftPrompt asks for a WhatsApp message confirming the search. Only an
// Instagram handle adds a social acknowledgment.
func BuildDraftPrompt(p domain.Profile, _ domain.Categories) string {
	where := p.City
	if p.Location != "" {
		where += " (" + p.Location + ")"
	}

	var b strings.Builder
	b.WriteString("Rédige un message WhatsApp court, professionnel et accueillant (en français) à envoyer à ce client pour confirmer la prise en compte de sa recherche.\n")
	fmt.Fprintf(&b, "Utilise le vouvoiement. Inclus le nom du client (%s). Mentionne spécifiquement sa recherche de %s à %s.\n", p.LastName, p.PropertyType, where)
	b.WriteString("Mentionne brièvement un détail clé (ex: piscine, grand jardin, nombre de chambres, type de terrain, classification hôtel) si pertinent.\n")
	if p.Instagram != "" {
		b.WriteString("J'ai vu votre profil Instagram, très intéressant.\n")
	}
	b.WriteString("Si le client a fourni une localisation précise (Maps), confirme que nous avons bien repéré la zone.\n")
	return b.String()
}

// BuildPrompt dispatches to the builder of kind k.
func BuildPrompt(k domain.InsightKind, p domain.Profile) string {
	cat := domain.Classify(p.PropertyType)
	switch k {
	case domain.InsightSummary:
		return BuildSummaryPrompt(p, cat)
	case domain.InsightRecommendations:
		return BuildRecommendationsPrompt(p, cat)
	default:
		return BuildDraftPrompt(p, cat)
	}
}
