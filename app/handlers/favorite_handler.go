package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type FavoriteHandler struct {
	favoriteSvc *services.FavoriteService
	render      *render.Render
}

func NewFavoriteHandler(favoriteSvc *services.FavoriteService, r *render.Render) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc, render: r}
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteSvc.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(h.render, w, "FavoriteHandler.ListFavorites", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favoriteSvc.Add(r.Context(), currentUser(r), mux.Vars(r)["productID"]); err != nil {
		writeError(h.render, w, "FavoriteHandler.AddFavorite", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favoriteSvc.Remove(r.Context(), currentUser(r), mux.Vars(r)["productID"]); err != nil {
		writeError(h.render, w, "FavoriteHandler.RemoveFavorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	on, err := h.favoriteSvc.Toggle(r.Context(), currentUser(r), mux.Vars(r)["productID"])
	if err != nil {
		writeError(h.render, w, "FavoriteHandler.ToggleFavorite", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"favorite": on})
}
