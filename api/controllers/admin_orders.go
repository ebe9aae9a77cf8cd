package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cocobloom/storefront-backend/api/responses"
	"github.com/cocobloom/storefront-backend/api/validators"
	"github.com/cocobloom/storefront-backend/internal/orders"
	"github.com/cocobloom/storefront-backend/pkg/enums"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/logger"
)

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderList pages through orders for the back office.
func AdminOrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		filter := orders.ListFilter{
			Status: enums.OrderStatus(r.URL.Query().Get("status")),
			Phone:  r.URL.Query().Get("phone"),
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
				filter.Limit = limit
			}
		}
		if raw := r.URL.Query().Get("offset"); raw != "" {
			if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
				filter.Offset = offset
			}
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminOrderDetail returns a single order with its line items.
func AdminOrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		order, err := svc.Get(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// AdminOrderAdvanceStatus moves an order along the fulfillment pipeline.
// Backward moves are rejected by the service.
func AdminOrderAdvanceStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var req advanceStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.AdvanceStatus(r.Context(), chi.URLParam(r, "code"), enums.OrderStatus(req.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
