package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/unrolled/render"
)

type errorBody struct {
	Error          string   `json:"error"`
	FailedProducts []string `json:"failed_products,omitempty"`
	Lines          []string `json:"lines,omitempty"`
}

// statusFor maps the errs taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDuplicateItem), errors.Is(err, errs.ErrConflictOnAggregate):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(rnd *render.Render, w http.ResponseWriter, op string, err error) {
	var checkoutErr *errs.CheckoutError
	if errors.As(err, &checkoutErr) {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, errs.ErrUpstreamUnavailable) {
			status = http.StatusServiceUnavailable
		}
		body := errorBody{Error: "checkout failed", FailedProducts: checkoutErr.FailedProducts()}
		for _, line := range checkoutErr.Lines {
			body.Lines = append(body.Lines, line.Error())
		}
		_ = rnd.JSON(w, status, body)
		return
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %s: %v", op, err)
	}
	_ = rnd.JSON(w, status, errorBody{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Validation("invalid request body: %v", err)
	}
	return nil
}

// currentUser returns the caller identity, or "" for anonymous requests.
func currentUser(r *http.Request) string {
	userID, _ := helpers.UserIDFromContext(r.Context())
	return userID
}
