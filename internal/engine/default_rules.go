package engine

// FallbackRule maps a substring of the product text to a category when
// neither the learning cache nor the keyword index resolves it. Rules are
// evaluated in priority order; the first match wins.
type FallbackRule struct {
	Name         string
	Pattern      string
	CategoryName string
	CategoryID   int64
	Confidence   float64
	Priority     int
}

// Terminal safety net: everything classifies, at worst into the
// marketplace's catch-all category.
const (
	OtherCategoryID    = 99
	OtherCategoryName  = "Everything Else"
	fallbackConfidence = 35
)

// DefaultRules returns the ordered rule-based fallback table. Confidence
// values stay within [30,85]; patterns are matched against the lowercased
// product text.
func DefaultRules() []FallbackRule {
	return []FallbackRule{
		{Name: "Apple iPhone", Pattern: "iphone", CategoryID: 9355, CategoryName: "Cell Phones & Smartphones", Confidence: 85, Priority: 100},
		{Name: "Samsung Galaxy phone", Pattern: "samsung galaxy", CategoryID: 9355, CategoryName: "Cell Phones & Smartphones", Confidence: 80, Priority: 95},
		{Name: "Apple Watch", Pattern: "apple watch", CategoryID: 178893, CategoryName: "Smart Watches", Confidence: 85, Priority: 100},
		{Name: "AirPods", Pattern: "airpods", CategoryID: 293, CategoryName: "Consumer Electronics", Confidence: 80, Priority: 90},
		{Name: "Gaming console", Pattern: "console", CategoryID: 139971, CategoryName: "Video Game Consoles", Confidence: 70, Priority: 80},
		{Name: "Trading cards", Pattern: "trading card", CategoryID: 2536, CategoryName: "Trading Card Games", Confidence: 75, Priority: 85},
		{Name: "Pokemon cards", Pattern: "pokemon", CategoryID: 2536, CategoryName: "Trading Card Games", Confidence: 65, Priority: 75},
		{Name: "Funko figure", Pattern: "funko", CategoryID: 220, CategoryName: "Toys & Hobbies", Confidence: 80, Priority: 90},
		{Name: "Vinyl record", Pattern: "vinyl", CategoryID: 176985, CategoryName: "Records", Confidence: 70, Priority: 80},
		{Name: "Perfume or cologne", Pattern: "eau de", CategoryID: 26395, CategoryName: "Health & Beauty", Confidence: 75, Priority: 80},
		{Name: "Generic ring", Pattern: "ring", CategoryID: 281, CategoryName: "Jewelry & Watches", Confidence: 45, Priority: 30},
		{Name: "Generic phone", Pattern: "phone", CategoryID: 9355, CategoryName: "Cell Phones & Smartphones", Confidence: 50, Priority: 40},
		{Name: "Generic shirt", Pattern: "shirt", CategoryID: 11450, CategoryName: "Clothing, Shoes & Accessories", Confidence: 50, Priority: 40},
		{Name: "Generic shoes", Pattern: "shoe", CategoryID: 11450, CategoryName: "Clothing, Shoes & Accessories", Confidence: 45, Priority: 35},
		{Name: "Generic book", Pattern: "book", CategoryID: 267, CategoryName: "Books & Magazines", Confidence: 40, Priority: 25},
	}
}
