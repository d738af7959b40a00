// Package catalog filters, sorts and paginates product lists. It works the same on a
// database result and on an in-memory fallback list.
package catalog

import (
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// All is the sentinel category/subject value meaning "no filter".
const All = "all"

type FilterSpec struct {
	Search      string
	Category    string
	Subject     string
	PriceMin    decimal.NullDecimal
	PriceMax    decimal.NullDecimal
	GradeLevels []string
	MinRating   float64
	SortBy      SortBy
}

// Validate rejects bounds a caller can never mean. An inverted price range is not an
// error: it simply matches nothing.
func (f FilterSpec) Validate() error {
	if f.PriceMin.Valid && f.PriceMin.Decimal.IsNegative() {
		return errs.Validation("price_min must not be negative")
	}
	if f.PriceMax.Valid && f.PriceMax.Decimal.IsNegative() {
		return errs.Validation("price_max must not be negative")
	}
	if f.MinRating < models.MinRating || f.MinRating > models.MaxRating {
		return errs.Validation("min_rating must be between %.0f and %.0f", models.MinRating, models.MaxRating)
	}
	return nil
}

func active(v string) bool {
	return v != "" && v != All
}

// Match reports whether p satisfies every predicate of f.
func (f FilterSpec) Match(p models.Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" && !matchesSearch(p, q) {
		return false
	}
	if active(f.Category) && p.Category != f.Category {
		return false
	}
	if active(f.Subject) && p.Subject != f.Subject {
		return false
	}
	if f.PriceMin.Valid && p.Price.LessThan(f.PriceMin.Decimal) {
		return false
	}
	if f.PriceMax.Valid && p.Price.GreaterThan(f.PriceMax.Decimal) {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if len(f.GradeLevels) > 0 && !lo.Some([]string(p.GradeLevel), f.GradeLevels) {
		return false
	}
	return true
}

func matchesSearch(p models.Product, q string) bool {
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	return contains(p.Title) ||
		contains(p.Description) ||
		lo.SomeBy([]string(p.Tags), contains) ||
		contains(p.AuthorName())
}

// Filter keeps the products matching f, in input order.
func Filter(products []models.Product, f FilterSpec) []models.Product {
	return FilterBy(products, f.Match)
}

// FilterBy keeps the products accepted by every predicate, in input order.
func FilterBy(products []models.Product, preds ...func(models.Product) bool) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	})
}

// Apply filters then sorts.
func Apply(products []models.Product, f FilterSpec) []models.Product {
	return Sort(Filter(products, f), f.SortBy)
}

// Pushdown holds the predicates a query backend can evaluate cheaply. It always selects a
// superset of what Match accepts.
type Pushdown struct {
	Category  string
	Subject   string
	PriceMin  decimal.NullDecimal
	PriceMax  decimal.NullDecimal
	MinRating float64
}

func (f FilterSpec) Pushdown() Pushdown {
	pd := Pushdown{
		PriceMin:  f.PriceMin,
		PriceMax:  f.PriceMax,
		MinRating: f.MinRating,
	}
	if active(f.Category) {
		pd.Category = f.Category
	}
	if active(f.Subject) {
		pd.Subject = f.Subject
	}
	return pd
}
