package controllers

import (
	"net/http"

	"github.com/cocobloom/storefront-backend/api/responses"
	"github.com/cocobloom/storefront-backend/api/validators"
	"github.com/cocobloom/storefront-backend/internal/orders"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/logger"
)

type trackOrderRequest struct {
	Code  string `json:"code" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// OrderTrack looks up an order by code plus the phone it was placed with.
// Requiring both keeps a leaked code from exposing someone else's order.
func OrderTrack(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var req trackOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Track(r.Context(), req.Code, req.Phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
