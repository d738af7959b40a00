package catalog

import "github.com/Rakhulsr/go-edumarket/app/models"

const DefaultPerPage = 12

type Page struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

func normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Paginate slices an already filtered and sorted list. A page past the end is empty.
func Paginate(products []models.Product, page, perPage int) Page {
	page, perPage = normalize(page, perPage)
	total := len(products)

	from := total
	if page-1 <= total/perPage {
		from = min((page-1)*perPage, total)
	}
	to := from + perPage
	if to > total {
		to = total
	}

	items := make([]models.Product, to-from)
	copy(items, products[from:to])

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}
}

// Query runs the whole pipeline over a candidate list.
func Query(products []models.Product, f FilterSpec, page, perPage int) Page {
	return Paginate(Apply(products, f), page, perPage)
}
