package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/models"
)

type SortBy string

const (
	SortRelevance     SortBy = "relevance"
	SortPriceAsc      SortBy = "price_asc"
	SortPriceDesc     SortBy = "price_desc"
	SortRatingDesc    SortBy = "rating_desc"
	SortDownloadsDesc SortBy = "downloads_desc"
	SortNewest        SortBy = "newest"
)

// ParseSortBy maps user input to a SortBy. Unknown values fall back to relevance.
func ParseSortBy(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc":
		return SortPriceAsc
	case "price_desc":
		return SortPriceDesc
	case "rating_desc", "rating":
		return SortRatingDesc
	case "downloads_desc", "downloads":
		return SortDownloadsDesc
	case "newest":
		return SortNewest
	default:
		return SortRelevance
	}
}

func (s SortBy) compare() func(a, b models.Product) int {
	switch ParseSortBy(string(s)) {
	case SortPriceAsc:
		return func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b models.Product) int { return b.Price.Cmp(a.Price) }
	case SortRatingDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortDownloadsDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.DownloadCount, a.DownloadCount) }
	case SortNewest:
		return func(a, b models.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	return nil
}

// Sort returns a sorted copy. Equal keys keep their input order, and relevance keeps the
// input order entirely.
func Sort(products []models.Product, by SortBy) []models.Product {
	out := slices.Clone(products)
	if fn := by.compare(); fn != nil {
		slices.SortStableFunc(out, fn)
	}
	return out
}
