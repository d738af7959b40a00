package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ReviewHandler struct {
	reviewSvc *services.ReviewService
	render    *render.Render
}

func NewReviewHandler(reviewSvc *services.ReviewService, r *render.Render) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc, render: r}
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.List(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, "ReviewHandler.ListReviews", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var in services.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.render, w, "ReviewHandler.SubmitReview", err)
		return
	}

	review, err := h.reviewSvc.Submit(r.Context(), currentUser(r), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(h.render, w, "ReviewHandler.SubmitReview", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, review)
}
