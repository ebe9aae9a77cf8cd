package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cocobloom/storefront-backend/api/responses"
	"github.com/cocobloom/storefront-backend/api/validators"
	"github.com/cocobloom/storefront-backend/internal/products"
	dbtypes "github.com/cocobloom/storefront-backend/pkg/db/types"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/logger"
)

type productVariantDef struct {
	Name    string   `json:"name" validate:"required"`
	Options []string `json:"options" validate:"required,min=1"`
}

type productUpsertRequest struct {
	Slug        string              `json:"slug" validate:"required"`
	Name        string              `json:"name" validate:"required"`
	Subtitle    *string             `json:"subtitle"`
	Price       int                 `json:"price" validate:"min=0"`
	OldPrice    *int                `json:"old_price"`
	Images      []string            `json:"images"`
	Variants    []productVariantDef `json:"variants" validate:"dive"`
	Volume      *string             `json:"volume"`
	InStock     bool                `json:"in_stock"`
	Tags        []string            `json:"tags"`
	Description string              `json:"description"`
}

func (req *productUpsertRequest) toInput() products.UpsertInput {
	variants := make([]dbtypes.VariantDef, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, dbtypes.VariantDef{Name: v.Name, Options: v.Options})
	}
	return products.UpsertInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Images:      req.Images,
		Variants:    variants,
		Volume:      req.Volume,
		InStock:     req.InStock,
		Tags:        req.Tags,
		Description: req.Description,
	}
}

func productIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		var req productUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate replaces the writable fields of a product.
func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req productUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
