package domain

import "sort"

type TransactionType string

const (
	TransactionPurchase   TransactionType = "Achat"
	TransactionSale       TransactionType = "Vente"
	TransactionRental     TransactionType = "Location"
	TransactionKeyMoney   TransactionType = "Sarout"
	TransactionPledge     TransactionType = "Rhena"
	TransactionTakeover   TransactionType = "Reprise"
	TransactionManagement TransactionType = "Gérance"
)

// TransactionTypes lists every transaction type in form order.
var TransactionTypes = []TransactionType{
	TransactionPurchase, TransactionSale, TransactionRental, TransactionKeyMoney,
	TransactionPledge, TransactionTakeover, TransactionManagement,
}

func (t TransactionType) Valid() bool {
	for _, v := range TransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

type PropertyType string

const (
	PropertyApartment        PropertyType = "Appartement"
	PropertyVilla            PropertyType = "Villa"
	PropertyRiad             PropertyType = "Riad"
	PropertyHotel            PropertyType = "Hôtel"
	PropertyLand             PropertyType = "Terrain Constructible"
	PropertyAgriculturalLand PropertyType = "Terrain Agricole"
	PropertyOffice           PropertyType = "Bureau/Commerce"
	PropertyFarm             PropertyType = "Ferme"
	PropertyDuplex           PropertyType = "Duplex"
	PropertyPenthouse        PropertyType = "Penthouse"
)

// PropertyTypes lists every property type in form order.
var PropertyTypes = []PropertyType{
	PropertyApartment, PropertyVilla, PropertyRiad, PropertyHotel, PropertyLand,
	PropertyAgriculturalLand, PropertyOffice, PropertyFarm, PropertyDuplex, PropertyPenthouse,
}

func (p PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if v == p {
			return true
		}
	}
	return false
}

// OtherCity is the catch-all entry of the city list.
const OtherCity = "Autre"

// Cities is the closed, alphabetically sorted list offered by the form.
var Cities = sortedCities(
	"Agadir", "Al Hoceïma", "Azilal", "Azrou", "Beni Mellal", "Benslimane", "Berkane", "Berrechid",
	"Bouskoura", "Bouznika", "Casablanca", "Chefchaouen", "Dakhla", "Dar Bouazza", "Drarga",
	"El Jadida", "El Kelaa des Sraghna", "Errachidia", "Essaouira", "Fès", "Fnideq", "Fquih Ben Salah",
	"Guelmim", "Guercif", "Ifrane", "Inezgane", "Kénitra", "Khemisset", "Khenifra", "Khouribga",
	"Ksar El Kebir", "Laâyoune", "Larache", "Marrakech", "Martil", "Meknès", "Midelt", "Mohammedia",
	"Nador", "Ouarzazate", "Ouezzane", "Oujda", "Rabat", "Safi", "Salé", "Sefrou", "Settat",
	"Sidi Kacem", "Sidi Rahal", "Sidi Slimane", "Skhirat", "Tanger", "Tan-Tan", "Taroudant", "Taza",
	"Témara", "Tétouan", "Tiznit", "Youssoufia", "Zagora", OtherCity,
)

func sortedCities(names ...string) []string {
	sort.Strings(names)
	return names
}

func ValidCity(c string) bool {
	for _, v := range Cities {
		if v == c {
			return true
		}
	}
	return false
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

type MediaItem struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Kind MediaKind `json:"type"`
	Name string    `json:"name"`
}

// Profile is the client/search record edited by the form. Category attributes
// are always present; Classify decides which ones are meaningful.
type Profile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`

	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
	Twitter   string `json:"twitter"` // X
	Website   string `json:"website"`

	TransactionType TransactionType `json:"transactionType"`
	PropertyType    PropertyType    `json:"propertyType"`

	City                   string `json:"city"`
	Location               string `json:"location"`
	PreferredNeighborhoods string `json:"preferredNeighborhoods"`
	GoogleMapsLink         string `json:"googleMapsLink"`
	Latitude               string `json:"latitude"`
	Longitude              string `json:"longitude"`

	BudgetMin  float64 `json:"budgetMin"`
	BudgetMax  float64 `json:"budgetMax"`
	Price      float64 `json:"price"`
	MinSurface float64 `json:"minSurface"`

	Urgent bool   `json:"urgent"`
	Notes  string `json:"notes"`

	// residential / office; bedrooms doubles as room count for hotels
	Bedrooms    int  `json:"bedrooms"`
	LivingRooms int  `json:"livingRooms"`
	Bathrooms   int  `json:"bathrooms"`
	Kitchens    int  `json:"kitchens"`
	Balconies   int  `json:"balconies"`
	Terraces    int  `json:"terraces"`
	Garage      int  `json:"garage"`
	Parking     int  `json:"parking"`
	Floor       int  `json:"floor"`
	Elevator    bool `json:"elevator"`

	// villa / penthouse / hotel
	Pool   bool `json:"pool"`
	Garden bool `json:"garden"`

	// hotel
	Stars          int  `json:"stars"`
	Restaurant     bool `json:"restaurant"`
	Cafe           bool `json:"cafe"`
	Spa            bool `json:"spa"`
	ConferenceRoom bool `json:"conferenceRoom"`

	// agricultural
	Wells          int    `json:"wells"`
	WaterTowers    int    `json:"waterTowers"`
	Trees          int    `json:"trees"`
	TreeTypes      string `json:"treeTypes"`
	DripIrrigation bool   `json:"dripIrrigation"`
	Infrastructure string `json:"infrastructure"`

	Media []MediaItem `json:"media"`
}

// DefaultProfile returns the record a new session starts from.
func DefaultProfile() Profile {
	return Profile{
		Phone:           "+212 ",
		Nationality:     "Marocaine",
		City:            "Casablanca",
		TransactionType: TransactionPurchase,
		PropertyType:    PropertyApartment,
		Bedrooms:        2,
		LivingRooms:     1,
		Bathrooms:       1,
		Kitchens:        1,
		Media:           []MediaItem{},
	}
}

// Clone copies p so the media slice is not shared with the caller.
func (p Profile) Clone() Profile {
	out := p
	out.Media = make([]MediaItem, len(p.Media))
	copy(out.Media, p.Media)
	return out
}

// HasGeo reports whether a map link or both coordinates are set.
func (p Profile) HasGeo() bool {
	return p.GoogleMapsLink != "" || (p.Latitude != "" && p.Longitude != "")
}
