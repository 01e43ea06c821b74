package profile

// Category is one entry in the fixed product category catalog. The catalog is
// a closed list shared with the backend; unknown ids are never submitted.
type Category struct {
	ID    string
	Label string
}

// Catalog is the fixed category catalog, ordered for display.
var Catalog = []Category{
	{ID: "art-decor", Label: "Art & Decor"},
	{ID: "automotive", Label: "Automotive & Accessories"},
	{ID: "baby-maternity", Label: "Baby & Maternity"},
	{ID: "bags-accessories", Label: "Bags & Accessories"},
	{ID: "beauty", Label: "Beauty & Personal Care"},
	{ID: "books-stationery", Label: "Books & Stationery"},
	{ID: "cleaning", Label: "Cleaning & Household Supplies"},
	{ID: "diy-crafts", Label: "DIY & Crafts"},
	{ID: "eco-friendly", Label: "Eco-Friendly Living"},
	{ID: "electronics", Label: "Electronics"},
	{ID: "fashion", Label: "Fashion & Apparel"},
	{ID: "footwear", Label: "Footwear"},
	{ID: "gaming", Label: "Gaming & Entertainment"},
	{ID: "garden-outdoor", Label: "Garden & Outdoor"},
	{ID: "grocery", Label: "Grocery & Gourmet Food"},
	{ID: "health-wellness", Label: "Health & Wellness"},
	{ID: "home-kitchen", Label: "Home & Kitchen"},
	{ID: "jewelry-watches", Label: "Jewelry & Watches"},
	{ID: "luxury", Label: "Luxury & Designer Goods"},
	{ID: "music-instruments", Label: "Music & Instruments"},
	{ID: "office", Label: "Office & Work Essentials"},
	{ID: "pet-supplies", Label: "Pet Supplies"},
	{ID: "smart-home", Label: "Smart Home Devices"},
	{ID: "sports-fitness", Label: "Sports & Fitness"},
	{ID: "sustainable", Label: "Sustainable Products"},
	{ID: "tech-accessories", Label: "Tech Accessories"},
	{ID: "tools-improvement", Label: "Tools & Home Improvement"},
	{ID: "toys-kids", Label: "Toys & Kids"},
	{ID: "travel-luggage", Label: "Travel & Luggage"},
	{ID: "vintage-collectibles", Label: "Vintage & Collectibles"},
}

// KnownCategory reports whether id is in the catalog.
func KnownCategory(id string) bool {
	for _, c := range Catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label for id, or id itself when unknown.
func CategoryLabel(id string) string {
	for _, c := range Catalog {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// FilterKnown drops ids not present in the catalog, preserving order.
// Unknown ids vanish silently; an empty result is legal here even though
// manual submission requires at least one category.
func FilterKnown(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if KnownCategory(id) {
			out = append(out, id)
		}
	}
	return out
}

// Country pairs a country name with its currency symbol for budget display.
type Country struct {
	Name     string
	Currency string
}

// Countries is the fixed location list.
var Countries = []Country{
	{Name: "United States", Currency: "$"},
	{Name: "Canada", Currency: "CAD $"},
	{Name: "United Kingdom", Currency: "£"},
	{Name: "Germany", Currency: "€"},
	{Name: "France", Currency: "€"},
	{Name: "Italy", Currency: "€"},
	{Name: "Spain", Currency: "€"},
	{Name: "Netherlands", Currency: "€"},
	{Name: "Australia", Currency: "AUD $"},
	{Name: "Japan", Currency: "¥"},
	{Name: "South Korea", Currency: "₩"},
	{Name: "Singapore", Currency: "SGD $"},
	{Name: "Brazil", Currency: "R$"},
	{Name: "Mexico", Currency: "MXN $"},
	{Name: "India", Currency: "₹"},
	{Name: "China", Currency: "¥"},
	{Name: "Russia", Currency: "₽"},
	{Name: "Turkey", Currency: "₺"},
	{Name: "South Africa", Currency: "R"},
	{Name: "Egypt", Currency: "E£"},
	{Name: "Sweden", Currency: "kr"},
	{Name: "Norway", Currency: "kr"},
	{Name: "Denmark", Currency: "kr"},
	{Name: "Finland", Currency: "€"},
	{Name: "Switzerland", Currency: "CHF"},
	{Name: "Austria", Currency: "€"},
	{Name: "Belgium", Currency: "€"},
	{Name: "Portugal", Currency: "€"},
	{Name: "Ireland", Currency: "€"},
	{Name: "New Zealand", Currency: "NZD $"},
}

// KnownCountry reports whether name is in the location list.
func KnownCountry(name string) bool {
	for _, c := range Countries {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CurrencyFor returns the currency symbol for a country, defaulting to "$".
func CurrencyFor(name string) string {
	for _, c := range Countries {
		if c.Name == name {
			return c.Currency
		}
	}
	return "$"
}

// Occasions is the fixed shopping occasion catalog.
var Occasions = []string{
	"Personal Use",
	"Birthday Gift",
	"Anniversary",
	"Wedding",
	"Holiday Gift",
	"Work/Professional",
	"Special Occasion",
	"Home Improvement",
	"Back to School",
	"Seasonal",
	"Travel",
	"Fitness/Health",
	"Hobby/Recreation",
}

// KnownOccasion reports whether the occasion is in the catalog.
func KnownOccasion(name string) bool {
	for _, o := range Occasions {
		if o == name {
			return true
		}
	}
	return false
}
