package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fiche_client/internal/domain"
)

type fieldKind string

const (
	kindText        fieldKind = "text"
	kindNumber      fieldKind = "number"
	kindBool        fieldKind = "checkbox"
	kindTransaction fieldKind = "transaction"
	kindProperty    fieldKind = "property"
	kindCity        fieldKind = "city"
)

// field binds a JSON field name to its slot on the profile. Exactly one of the
// pointers is set, matching kind.
type field struct {
	kind  fieldKind
	text  func(p *domain.Profile) *string
	float func(p *domain.Profile) *float64
	whole func(p *domain.Profile) *int
	flag  func(p *domain.Profile) *bool
}

func textField(f func(p *domain.Profile) *string) field { return field{kind: kindText, text: f} }
func floatField(f func(p *domain.Profile) *float64) field {
	return field{kind: kindNumber, float: f}
}
func intField(f func(p *domain.Profile) *int) field   { return field{kind: kindNumber, whole: f} }
func boolField(f func(p *domain.Profile) *bool) field { return field{kind: kindBool, flag: f} }

// ---- field registry ----

var fields = map[string]field{
	"firstName":   textField(func(p *domain.Profile) *string { return &p.FirstName }),
	"lastName":    textField(func(p *domain.Profile) *string { return &p.LastName }),
	"phone":       textField(func(p *domain.Profile) *string { return &p.Phone }),
	"email":       textField(func(p *domain.Profile) *string { return &p.Email }),
	"nationality": textField(func(p *domain.Profile) *string { return &p.Nationality }),

	"facebook":  textField(func(p *domain.Profile) *string { return &p.Facebook }),
	"instagram": textField(func(p *domain.Profile) *string { return &p.Instagram }),
	"linkedin":  textField(func(p *domain.Profile) *string { return &p.LinkedIn }),
	"youtube":   textField(func(p *domain.Profile) *string { return &p.YouTube }),
	"tiktok":    textField(func(p *domain.Profile) *string { return &p.TikTok }),
	"twitter":   textField(func(p *domain.Profile) *string { return &p.Twitter }),
	"website":   textField(func(p *domain.Profile) *string { return &p.Website }),

	"transactionType": {kind: kindTransaction},
	"propertyType":    {kind: kindProperty},
	"city":            {kind: kindCity},

	"location":               textField(func(p *domain.Profile) *string { return &p.Location }),
	"preferredNeighborhoods": textField(func(p *domain.Profile) *string { return &p.PreferredNeighborhoods }),
	"googleMapsLink":         textField(func(p *domain.Profile) *string { return &p.GoogleMapsLink }),
	"latitude":               textField(func(p *domain.Profile) *string { return &p.Latitude }),
	"longitude":              textField(func(p *domain.Profile) *string { return &p.Longitude }),

	"budgetMin":  floatField(func(p *domain.Profile) *float64 { return &p.BudgetMin }),
	"budgetMax":  floatField(func(p *domain.Profile) *float64 { return &p.BudgetMax }),
	"price":      floatField(func(p *domain.Profile) *float64 { return &p.Price }),
	"minSurface": floatField(func(p *domain.Profile) *float64 { return &p.MinSurface }),

	"urgent": boolField(func(p *domain.Profile) *bool { return &p.Urgent }),
	"notes":  textField(func(p *domain.Profile) *string { return &p.Notes }),

	"bedrooms":    intField(func(p *domain.Profile) *int { return &p.Bedrooms }),
	"livingRooms": intField(func(p *domain.Profile) *int { return &p.LivingRooms }),
	"bathrooms":   intField(func(p *domain.Profile) *int { return &p.Bathrooms }),
	"kitchens":    intField(func(p *domain.Profile) *int { return &p.Kitchens }),
	"balconies":   intField(func(p *domain.Profile) *int { return &p.Balconies }),
	"terraces":    intField(func(p *domain.Profile) *int { return &p.Terraces }),
	"garage":      intField(func(p *domain.Profile) *int { return &p.Garage }),
	"parking":     intField(func(p *domain.Profile) *int { return &p.Parking }),
	"floor":       intField(func(p *domain.Profile) *int { return &p.Floor }),
	"elevator":    boolField(func(p *domain.Profile) *bool { return &p.Elevator }),

	"pool":   boolField(func(p *domain.Profile) *bool { return &p.Pool }),
	"garden": boolField(func(p *domain.Profile) *bool { return &p.Garden }),

	"stars":          intField(func(p *domain.Profile) *int { return &p.Stars }),
	"restaurant":     boolField(func(p *domain.Profile) *bool { return &p.Restaurant }),
	"cafe":           boolField(func(p *domain.Profile) *bool { return &p.Cafe }),
	"spa":            boolField(func(p *domain.Profile) *bool { return &p.Spa }),
	"conferenceRoom": boolField(func(p *domain.Profile) *bool { return &p.ConferenceRoom }),

	"wells":          intField(func(p *domain.Profile) *int { return &p.Wells }),
	"waterTowers":    intField(func(p *domain.Profile) *int { return &p.WaterTowers }),
	"trees":          intField(func(p *domain.Profile) *int { return &p.Trees }),
	"treeTypes":      textField(func(p *domain.Profile) *string { return &p.TreeTypes }),
	"dripIrrigation": boolField(func(p *domain.Profile) *bool { return &p.DripIrrigation }),
	"infrastructure": textField(func(p *domain.Profile) *string { return &p.Infrastructure }),
}

// applyField writes value into the named field of p. Numbers never fail: input
// that does not parse becomes 0. Enumerations and the city reject values
// outside their closed lists so the profile never holds an invalid one.
func applyField(p *domain.Profile, name string, value any) error {
	f, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	switch f.kind {
	case kindText:
		*f.text(p) = toString(value)
	case kindNumber:
		n := toNumber(value)
		if f.float != nil {
			*f.float(p) = n
		} else {
			*f.whole(p) = toCount(n)
		}
	case kindBool:
		*f.flag(p) = toBool(value)
	case kindTransaction:
		t := domain.TransactionType(toString(value))
		if !t.Valid() {
			return fmt.Errorf("%w: transactionType %q", domain.ErrInvalidValue, t)
		}
		p.TransactionType = t
	case kindProperty:
		pt := domain.PropertyType(toString(value))
		if !pt.Valid() {
			return fmt.Errorf("%w: propertyType %q", domain.ErrInvalidValue, pt)
		}
		p.PropertyType = pt
	case kindCity:
		c := toString(value)
		if !domain.ValidCity(c) {
			return fmt.Errorf("%w: city %q", domain.ErrInvalidValue, c)
		}
		p.City = c
	}
	return nil
}

// ---- coercion ----

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// toNumber accepts float64/int/string ("8,5" included) and returns a finite,
// non-negative value; anything else is 0.
func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// maxCount bounds integer fields; larger values are treated as unparseable.
const maxCount = math.MaxInt32

func toCount(f float64) int {
	if f > maxCount {
		return 0
	}
	return int(f)
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "on", "yes", "oui":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}
