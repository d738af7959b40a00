package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc *services.CartService
	render  *render.Render
}

func NewCartHandler(cartSvc *services.CartService, r *render.Render) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, render: r}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartSvc.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(h.render, w, "CartHandler.GetCart", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(h.render, w, "CartHandler.AddItem", err)
		return
	}

	item, err := h.cartSvc.Add(r.Context(), currentUser(r), body.ProductID)
	if err != nil {
		writeError(h.render, w, "CartHandler.AddItem", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(h.render, w, "CartHandler.UpdateQuantity", err)
		return
	}

	if err := h.cartSvc.SetQuantity(r.Context(), currentUser(r), mux.Vars(r)["productID"], body.Quantity); err != nil {
		writeError(h.render, w, "CartHandler.UpdateQuantity", err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.cartSvc.Item(r.Context(), currentUser(r), mux.Vars(r)["productID"])
	if err != nil {
		writeError(h.render, w, "CartHandler.GetItem", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.cartSvc.Count(r.Context(), currentUser(r))
	if err != nil {
		writeError(h.render, w, "CartHandler.Count", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.Remove(r.Context(), currentUser(r), mux.Vars(r)["productID"]); err != nil {
		writeError(h.render, w, "CartHandler.RemoveItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.Clear(r.Context(), currentUser(r)); err != nil {
		writeError(h.render, w, "CartHandler.ClearCart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
