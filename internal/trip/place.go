package trip

import "strings"

// Category is a point-of-interest type. Values outside the known set are
// carried through untouched and never match a day segment.
type Category string

const (
	Cafe       Category = "cafe"
	Restaurant Category = "restaurant"
	Museum     Category = "museum"
	Park       Category = "park"
	ArtGallery Category = "art_gallery"
	Hotel      Category = "hotel"
)

// DefaultPrice applies to categories missing from the price table.
const DefaultPrice = 1000

var prices = map[Category]int{
	Cafe:       700,
	Restaurant: 2000,
	Museum:     500,
	Park:       0,
	ArtGallery: 500,
	Hotel:      3000,
}

// PriceFor returns the estimated visit cost in rubles (per night for hotels).
func PriceFor(c Category) int {
	if p, ok := prices[c]; ok {
		return p
	}
	return DefaultPrice
}

// SearchCategories are the categories requested from the POI directory.
var SearchCategories = []Category{Museum, Park, Restaurant, Cafe, ArtGallery, Hotel}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Place is a priced candidate visit. Name is the identity used for
// de-duplication across the whole itinerary.
type Place struct {
	Name     string
	Category Category
	Location Coordinates
	Cost     int
}

var categoryLabels = map[Category]string{
	Cafe:       "Кафе",
	Restaurant: "Ресторан",
	Museum:     "Музей",
	Park:       "Парк",
	ArtGallery: "Галерея",
	Hotel:      "Отель",
}

// Label is the human-readable category name shown to travellers.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	if c == "" {
		return "Место"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
