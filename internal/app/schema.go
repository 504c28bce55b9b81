package app

import "fiche_client/internal/domain"

type FormField struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Kind  fieldKind `json:"kind"`
}

type FormGroup struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

// FormSchema lists the field groups the form shows for p. Identity, search and
// notes groups are always present; attribute groups depend on the category.
func FormSchema(p domain.Profile) []FormGroup {
	cat := domain.Classify(p.PropertyType)

	surfaceLabel := "Surface Min (m²)"
	if cat.IsAgricultural {
		surfaceLabel = "Surface (Hectares)"
	}

	groups := []FormGroup{
		{ID: "identity", Title: "Identité & Contact", Fields: []FormField{
			{"firstName", "Prénom", kindText},
			{"lastName", "Nom", kindText},
			{"phone", "Téléphone", kindText},
			{"email", "Email", kindText},
			{"nationality", "Nationalité", kindText},
		}},
		{ID: "social", Title: "Réseaux Sociaux & Web", Fields: []FormField{
			{"facebook", "Facebook", kindText},
			{"instagram", "Instagram", kindText},
			{"linkedin", "LinkedIn", kindText},
			{"youtube", "YouTube", kindText},
			{"tiktok", "TikTok", kindText},
			{"twitter", "X (Twitter)", kindText},
			{"website", "Site Web", kindText},
		}},
		{ID: "search", Title: "Recherche", Fields: []FormField{
			{"transactionType", "Transaction", kindTransaction},
			{"propertyType", "Type de résidence", kindProperty},
			{"city", "Ville", kindCity},
			{"location", "Localisation / Secteur", kindText},
			{"minSurface", surfaceLabel, kindNumber},
		}},
	}

	switch {
	case cat.IsResidential:
		groups = append(groups, FormGroup{ID: "residential", Title: "Configuration", Fields: []FormField{
			{"bedrooms", "Chambres", kindNumber},
			{"livingRooms", "Salons", kindNumber},
			{"bathrooms", "Salles de bain", kindNumber},
			{"kitchens", "Cuisines", kindNumber},
			{"balconies", "Balcons", kindNumber},
			{"terraces", "Terrasses", kindNumber},
			{"garage", "Garage (Qté)", kindNumber},
			{"parking", "Parking (Qté)", kindNumber},
			{"floor", "Étage", kindNumber},
		}})
	case cat.IsHotel:
		groups = append(groups, FormGroup{ID: "hotel", Title: "Hôtel", Fields: []FormField{
			{"stars", "Étoiles", kindNumber},
			{"bedrooms", "Nbr Chambres", kindNumber},
			{"restaurant", "Restaurant", kindBool},
			{"cafe", "Café", kindBool},
			{"spa", "Spa / Hammam", kindBool},
			{"conferenceRoom", "Salle Conf.", kindBool},
			{"pool", "Piscine", kindBool},
		}})
	case cat.IsOffice:
		groups = append(groups, FormGroup{ID: "office", Title: "Bureau / Commerce", Fields: []FormField{
			{"floor", "Étage", kindNumber},
			{"bathrooms", "Salles de bain", kindNumber},
			{"kitchens", "Cuisines", kindNumber},
			{"balconies", "Balcons", kindNumber},
			{"parking", "Parking (Qté)", kindNumber},
		}})
	case cat.IsAgricultural:
		groups = append(groups, FormGroup{ID: "agricultural", Title: "Agricole", Fields: []FormField{
			{"wells", "Puits", kindNumber},
			{"waterTowers", "Châteaux d'eau", kindNumber},
			{"trees", "Nbr. Arbres", kindNumber},
			{"treeTypes", "Types d'arbres", kindText},
			{"infrastructure", "Autres Infrastructures", kindText},
			{"dripIrrigation", "Goutte à goutte", kindBool},
		}})
	}

	if cat.IsVilla || cat.IsPenthouse {
		extras := FormGroup{ID: "extras", Title: "Options", Fields: []FormField{{"pool", "Piscine", kindBool}}}
		if cat.IsVilla {
			extras.Fields = append(extras.Fields, FormField{"garden", "Jardin", kindBool})
		}
		groups = append(groups, extras)
	}
	if cat.IsResidential || cat.IsOffice {
		groups = append(groups, FormGroup{ID: "elevator", Title: "Ascenseur", Fields: []FormField{
			{"elevator", "Ascenseur", kindBool},
		}})
	}

	groups = append(groups,
		FormGroup{ID: "preferences", Title: "Préférences", Fields: []FormField{
			{"preferredNeighborhoods", "Quartiers préférés", kindText},
		}},
		FormGroup{ID: "geo", Title: "Géolocalisation précise", Fields: []FormField{
			{"googleMapsLink", "Lien Google Maps", kindText},
			{"latitude", "Latitude", kindText},
			{"longitude", "Longitude", kindText},
		}},
		FormGroup{ID: "budget", Title: "Budget Estimatif (MAD)", Fields: []FormField{
			{"budgetMin", "Budget Min", kindNumber},
			{"budgetMax", "Budget Max", kindNumber},
			{"price", priceFieldLabel(p.TransactionType), kindNumber},
			{"urgent", "Recherche Urgente", kindBool},
		}},
		FormGroup{ID: "notes", Title: "Notes Complémentaires", Fields: []FormField{
			{"notes", "Notes", kindText},
		}},
	)
	return groups
}

func priceFieldLabel(t domain.TransactionType) string {
	return domain.PriceLabel(t) + " (MAD)"
}
