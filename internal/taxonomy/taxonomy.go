// Package taxonomy owns the category-to-keyword configuration that drives
// both rule-based classification and similarity-document construction.
// A Taxonomy is built once per analyzer and is immutable afterwards; merging
// overrides produces a new value instead of mutating shared defaults.
package taxonomy

import (
	"spendscope/internal/models"
)

// Category pairs a category name with its ordered keyword phrases. Keyword
// order matters: the rule-based classifier stops at the first match.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is an ordered, immutable set of categories. Iteration order is the
// definition order, which the rule-based classifier relies on for
// deterministic tie-breaks.
type Taxonomy struct {
	categories []Category
	index      map[string]int
}

// New builds a Taxonomy from an ordered category list. The catch-all
// category is appended with an empty keyword set if absent, so every
// taxonomy can classify anything.
func New(categories []Category) Taxonomy {
	t := Taxonomy{index: make(map[string]int, len(categories)+1)}
	for _, c := range categories {
		t = t.withCategory(c)
	}
	if _, ok := t.index[models.CategoryOther]; !ok {
		t = t.withCategory(Category{Name: models.CategoryOther})
	}
	return t
}

// withCategory appends a category, or extends its keywords when the name is
// already present.
func (t Taxonomy) withCategory(c Category) Taxonomy {
	if i, ok := t.index[c.Name]; ok {
		existing := t.categories[i]
		merged := make([]string, 0, len(existing.Keywords)+len(c.Keywords))
		merged = append(merged, existing.Keywords...)
		merged = append(merged, c.Keywords...)
		t.categories[i] = Category{Name: c.Name, Keywords: merged}
		return t
	}
	t.index[c.Name] = len(t.categories)
	t.categories = append(t.categories, Category{
		Name:     c.Name,
		Keywords: append([]string(nil), c.Keywords...),
	})
	return t
}

// Merge returns a new Taxonomy with the overrides applied: existing
// categories get their keyword lists extended (duplicates are harmless), new
// categories are appended in override order. The receiver is not modified.
func (t Taxonomy) Merge(overrides []Category) Taxonomy {
	merged := Taxonomy{index: make(map[string]int, len(t.categories)+len(overrides))}
	for _, c := range t.categories {
		merged = merged.withCategory(c)
	}
	for _, c := range overrides {
		if c.Name == "" {
			continue
		}
		merged = merged.withCategory(c)
	}
	if _, ok := merged.index[models.CategoryOther]; !ok {
		merged = merged.withCategory(Category{Name: models.CategoryOther})
	}
	return merged
}

// Categories returns the categories in definition order. Callers must treat
// the result as read-only.
func (t Taxonomy) Categories() []Category {
	return t.categories
}

// Keywords returns the keyword list for a category and whether it exists.
func (t Taxonomy) Keywords(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.categories[i].Keywords, true
}

// Has reports whether the taxonomy contains the named category.
func (t Taxonomy) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Names returns the category names in definition order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of categories.
func (t Taxonomy) Len() int {
	return len(t.categories)
}

// Default returns the built-in taxonomy. The order is part of the contract:
// the rule-based classifier awards ties to the earlier category.
func Default() Taxonomy {
	return New([]Category{
		{Name: models.CategoryHousing, Keywords: []string{"rent", "mortgage", "property tax", "hoa", "maintenance", "repair"}},
		{Name: models.CategoryUtilities, Keywords: []string{"electric", "water", "gas", "internet", "phone", "cable", "utility"}},
		{Name: models.CategoryGroceries, Keywords: []string{"grocery", "supermarket", "food", "market"}},
		{Name: models.CategoryDining, Keywords: []string{"restaurant", "cafe", "coffee", "bar", "grubhub", "doordash", "ubereats", "dining"}},
		{Name: models.CategoryTransportation, Keywords: []string{"gas", "fuel", "uber", "lyft", "taxi", "transit", "parking", "toll", "car", "auto", "vehicle"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"movie", "theatre", "concert", "netflix", "hulu", "spotify", "disney", "subscription", "game"}},
		{Name: models.CategoryShopping, Keywords: []string{"amazon", "walmart", "target", "costco", "shop", "store", "retail", "clothing", "electronics"}},
		{Name: models.CategoryHealth, Keywords: []string{"doctor", "hospital", "medical", "pharmacy", "health", "fitness", "gym", "insurance"}},
		{Name: models.CategoryEducation, Keywords: []string{"tuition", "school", "college", "university", "course", "book", "education"}},
		{Name: models.CategoryTravel, Keywords: []string{"hotel", "flight", "airline", "airbnb", "vacation", "travel"}},
		{Name: models.CategoryPersonal, Keywords: []string{"haircut", "salon", "spa", "beauty", "personal"}},
		{Name: models.CategoryIncome, Keywords: []string{"salary", "deposit", "paycheck", "payment received", "direct deposit", "income"}},
		{Name: models.CategoryInvestments, Keywords: []string{"investment", "dividend", "interest", "stock", "bond", "etf", "mutual fund"}},
		{Name: models.CategoryDebt, Keywords: []string{"credit card", "loan", "debt", "interest payment"}},
		{Name: models.CategoryInsurance, Keywords: []string{"insurance", "premium"}},
		{Name: models.CategoryTaxes, Keywords: []string{"tax", "irs", "state tax"}},
		{Name: models.CategoryGiftsDonations, Keywords: []string{"gift", "donation", "charity", "nonprofit"}},
		{Name: models.CategoryBusiness, Keywords: []string{"business", "office", "professional", "service"}},
		{Name: models.CategoryOther},
	})
}
