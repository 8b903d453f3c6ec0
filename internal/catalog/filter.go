// Package catalog derives the visible product subset and the selector option
// lists from the full catalog and the current selection. Everything here is a
// pure function over its inputs: no I/O, no shared state, deterministic.
package catalog

import (
	"strconv"
	"strings"

	"github.com/glimmershop/catalog/internal/models"
)

// Selection is the state of the three storefront selectors.
type Selection struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Search      string `json:"search"`
}

func NewSelection() Selection {
	return Selection{Category: AllCategories}
}

// Active reports whether any selector narrows the view. An empty product list
// under an active selection is a real "no results" state, not "no selection".
func (s Selection) Active() bool {
	return s.Category != AllCategories && s.Category != "" ||
		s.SubCategory != "" ||
		s.Search != ""
}

// SelectCategory switches the category. If the new category does not contain
// the selected sub-category, the sub-category selection resets to none.
func (s Selection) SelectCategory(m *CategoryMap, category string) Selection {
	s.Category = category
	if category != AllCategories && !m.Has(category, s.SubCategory) {
		s.SubCategory = ""
	}
	return s
}

// SelectSubCategory switches the sub-category. If it belongs to a different
// category than the selected one, the category selection resets to All.
func (s Selection) SelectSubCategory(m *CategoryMap, sub string) Selection {
	s.SubCategory = sub
	if sub != "" && s.Category != AllCategories {
		if owner, ok := m.CategoryOf(sub); ok && owner != s.Category {
			s.Category = AllCategories
		}
	}
	return s
}

func (s Selection) WithSearch(q string) Selection {
	s.Search = q
	return s
}

// Matches reports whether all three predicates hold for p: category equals the
// selection or All, sub-category equals the selection or is unset, and the
// search text appears case-insensitively in the SKU, the description, or the
// decimal rendering of the price.
func (s Selection) Matches(p models.Product) bool {
	if s.Category != AllCategories && s.Category != "" && p.Category != s.Category {
		return false
	}
	if s.SubCategory != "" && p.SubCategory != s.SubCategory {
		return false
	}
	if s.Search == "" {
		return true
	}
	q := strings.ToLower(s.Search)
	return strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(PriceText(p.Price), q)
}

// PriceText renders a price the way the search predicate sees it.
func PriceText(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// VisibleProducts returns the products matching s, preserving input order.
// The result is never nil.
func VisibleProducts(products []models.Product, s Selection) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if s.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// VisibleSubCategories returns the sub-category options for the current
// category: the registered list for a concrete category, or the de-duplicated
// union of every list, in first-seen order, for All.
func VisibleSubCategories(m *CategoryMap, category string) []string {
	if category != AllCategories && category != "" {
		return m.Subs(category)
	}

	seen := make(map[string]bool)
	union := []string{}
	for _, name := range m.Categories() {
		for _, sub := range m.Subs(name) {
			if !seen[sub] {
				seen[sub] = true
				union = append(union, sub)
			}
		}
	}
	return union
}

// VisibleCategories returns the category options for the current sub-category:
// every category when none is selected, otherwise only those whose list
// contains it.
func VisibleCategories(m *CategoryMap, sub string) []string {
	if sub == "" {
		return m.Categories()
	}

	out := []string{}
	for _, name := range m.Categories() {
		if m.Has(name, sub) {
			out = append(out, name)
		}
	}
	return out
}
