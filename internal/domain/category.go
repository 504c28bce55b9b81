package domain

type Category string

const (
	CategoryResidential  Category = "residential"
	CategoryOffice       Category = "office"
	CategoryHotel        Category = "hotel"
	CategoryAgricultural Category = "agricultural"
	CategoryLand         Category = "land"
)

// Categories holds the flags derived from a property type. IsVilla and
// IsPenthouse overlap with IsResidential.
type Categories struct {
	IsResidential  bool `json:"isResidential"`
	IsOffice       bool `json:"isOffice"`
	IsAgricultural bool `json:"isAgricultural"`
	IsLand         bool `json:"isLand"`
	IsHotel        bool `json:"isHotel"`
	IsVilla        bool `json:"isVilla"`
	IsPenthouse    bool `json:"isPenthouse"`
}

func Classify(pt PropertyType) Categories {
	return Categories{
		IsResidential: pt == PropertyApartment || pt == PropertyVilla || pt == PropertyRiad ||
			pt == PropertyDuplex || pt == PropertyPenthouse,
		IsOffice:       pt == PropertyOffice,
		IsAgricultural: pt == PropertyFarm || pt == PropertyAgriculturalLand,
		IsLand:         pt == PropertyLand,
		IsHotel:        pt == PropertyHotel,
		IsVilla:        pt == PropertyVilla,
		IsPenthouse:    pt == PropertyPenthouse,
	}
}

// Kind returns the single category tag. An unclassified type falls back to land,
// whose block carries no attributes.
func (c Categories) Kind() Category {
	switch {
	case c.IsResidential:
		return CategoryResidential
	case c.IsOffice:
		return CategoryOffice
	case c.IsHotel:
		return CategoryHotel
	case c.IsAgricultural:
		return CategoryAgricultural
	default:
		return CategoryLand
	}
}

// SurfaceUnit is hectares for agricultural properties, square meters otherwise.
func (c Categories) SurfaceUnit() string {
	if c.IsAgricultural {
		return "Hectares"
	}
	return "m²"
}

const (
	LabelRent     = "Loyer"
	LabelKeyMoney = "Sarout"
	LabelPledge   = "Rhena"
	LabelPrice    = "Prix"
)

// PriceLabel names the price field for a transaction type; it never returns "".
func PriceLabel(t TransactionType) string {
	switch t {
	case TransactionRental, TransactionManagement:
		return LabelRent
	case TransactionKeyMoney:
		return LabelKeyMoney
	case TransactionPledge:
		return LabelPledge
	case TransactionSale, TransactionPurchase:
		return LabelPrice
	default:
		return LabelPrice
	}
}
