package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	render      *render.Render
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, r *render.Render) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, render: r}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.render, w, "CheckoutHandler.Checkout", err)
		return
	}

	receipt, err := h.checkoutSvc.Checkout(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(h.render, w, "CheckoutHandler.Checkout", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, receipt)
}

// ListSales returns the caller's purchases, or with type=sales the sales of their products.
func (h *CheckoutHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	var (
		sales []models.Sale
		err   error
	)
	switch kind := r.URL.Query().Get("type"); kind {
	case "", "purchases":
		sales, err = h.checkoutSvc.Purchases(r.Context(), currentUser(r))
	case "sales":
		sales, err = h.checkoutSvc.Sales(r.Context(), currentUser(r))
	default:
		err = errs.Validation("type must be purchases or sales, got %q", kind)
	}
	if err != nil {
		writeError(h.render, w, "CheckoutHandler.ListSales", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"sales": sales})
}

func (h *CheckoutHandler) TransitionSale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(h.render, w, "CheckoutHandler.TransitionSale", err)
		return
	}

	sale, err := h.checkoutSvc.TransitionSale(r.Context(), currentUser(r), mux.Vars(r)["id"], body.Status)
	if err != nil {
		writeError(h.render, w, "CheckoutHandler.TransitionSale", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, sale)
}
