package controllers

import (
	"net/http"

	"github.com/cocobloom/storefront-backend/api/middleware"
	"github.com/cocobloom/storefront-backend/api/responses"
	"github.com/cocobloom/storefront-backend/api/validators"
	"github.com/cocobloom/storefront-backend/internal/checkout"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	City          string `json:"city" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Notes         string `json:"notes"`
	PreferredTime string `json:"preferred_time"`
	Consent       bool   `json:"consent" validate:"required"`
}

// CheckoutSubmit places a cash-on-delivery order from the session cart and
// returns the persisted order plus a prefilled WhatsApp link.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submission, err := svc.Submit(r.Context(), middleware.SessionIDFromContext(r.Context()), checkout.SubmitInput{
			Name:          req.Name,
			Phone:         req.Phone,
			City:          req.City,
			Address:       req.Address,
			Notes:         req.Notes,
			PreferredTime: req.PreferredTime,
			Consent:       req.Consent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submission)
	}
}
