package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/catalog"
	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	catalog *services.CatalogService
	render  *render.Render
}

func NewProductHandler(c *services.CatalogService, r *render.Render) *ProductHandler {
	return &ProductHandler{c, r}
}

type searchQuery struct {
	Filter  catalog.FilterSpec
	Page    int
	PerPage int
}

func parseBound(q url.Values, key string) (decimal.NullDecimal, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, errs.Validation("%s must be a number", key)
	}
	return decimal.NewNullDecimal(d), nil
}

func parseInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Validation("%s must be an integer", key)
	}
	return n, nil
}

// parseSearchQuery reads q (or search), category, subject, price_min, price_max, grade
// (repeated or comma separated), min_rating, sort, page and per_page.
func parseSearchQuery(q url.Values) (searchQuery, error) {
	var sq searchQuery
	var err error

	sq.Filter.Search = q.Get("q")
	if sq.Filter.Search == "" {
		sq.Filter.Search = q.Get("search")
	}
	sq.Filter.Category = q.Get("category")
	sq.Filter.Subject = q.Get("subject")
	sq.Filter.SortBy = catalog.ParseSortBy(q.Get("sort"))

	if sq.Filter.PriceMin, err = parseBound(q, "price_min"); err != nil {
		return sq, err
	}
	if sq.Filter.PriceMax, err = parseBound(q, "price_max"); err != nil {
		return sq, err
	}

	grades := lo.FlatMap(q["grade"], func(v string, _ int) []string { return strings.Split(v, ",") })
	sq.Filter.GradeLevels = lo.Compact(lo.Map(grades, func(v string, _ int) string { return strings.TrimSpace(v) }))

	if raw := strings.TrimSpace(q.Get("min_rating")); raw != "" {
		if sq.Filter.MinRating, err = strconv.ParseFloat(raw, 64); err != nil {
			return sq, errs.Validation("min_rating must be a number")
		}
	}

	if sq.Page, err = parseInt(q, "page"); err != nil {
		return sq, err
	}
	if sq.PerPage, err = parseInt(q, "per_page"); err != nil {
		return sq, err
	}
	return sq, nil
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	sq, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(h.render, w, "ProductHandler.Products", err)
		return
	}

	page, err := h.catalog.Search(r.Context(), sq.Filter, sq.Page, sq.PerPage)
	if err != nil {
		writeError(h.render, w, "ProductHandler.Products", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, page)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), currentUser(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, "ProductHandler.ProductDetail", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

// MyProducts lists every product of the caller, drafts and inactive ones included.
func (h *ProductHandler) MyProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListByAuthor(r.Context(), currentUser(r))
	if err != nil {
		writeError(h.render, w, "ProductHandler.MyProducts", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(h.render, w, "ProductHandler.Categories", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *ProductHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.catalog.Subjects(r.Context())
	if err != nil {
		writeError(h.render, w, "ProductHandler.Subjects", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.render, w, "ProductHandler.CreateProduct", err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(h.render, w, "ProductHandler.CreateProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.render, w, "ProductHandler.UpdateProduct", err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), currentUser(r), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(h.render, w, "ProductHandler.UpdateProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(h.render, w, "ProductHandler.SetStatus", err)
		return
	}

	if err := h.catalog.SetStatus(r.Context(), currentUser(r), mux.Vars(r)["id"], body.Status); err != nil {
		writeError(h.render, w, "ProductHandler.SetStatus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), currentUser(r), mux.Vars(r)["id"]); err != nil {
		writeError(h.render, w, "ProductHandler.DeleteProduct", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
