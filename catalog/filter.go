package catalog

import (
	"sort"
	"strings"

	"meraki/models"
)

// Sort keys accepted by the product list endpoints.
const (
	SortNone      = ""
	SortPriceAsc  = "price-low"
	SortPriceDesc = "price-high"
	SortTitle     = "name"
)

// AllCategories disables category/subcategory matching.
const AllCategories = "All"

// Filter narrows and orders a product list. The zero value matches everything
// and preserves catalog order.
type Filter struct {
	Category    string
	Subcategory string
	SearchTerm  string
	Sort        string
}

// Apply returns the products matching the filter, sorted by the requested key.
// It never modifies its input; ties keep their original catalog order. An
// unmatched filter yields an empty slice, not an error.
func (f Filter) Apply(products []models.Product) []models.Product {
	matched := make([]models.Product, 0, len(products))
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	for _, p := range products {
		if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
			continue
		}
		if f.Subcategory != "" && f.Subcategory != AllCategories && p.Subcategory != f.Subcategory {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case SortTitle:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	}

	return matched
}

func matchesSearch(p models.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
