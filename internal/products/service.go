package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cocobloom/storefront-backend/pkg/db/models"
	dbtypes "github.com/cocobloom/storefront-backend/pkg/db/types"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

// Service exposes catalog operations. Reads serve the storefront; writes
// are admin-only and gated upstream.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, input UpsertInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpsertInput carries the writable product fields.
type UpsertInput struct {
	Slug        string
	Name        string
	Subtitle    *string
	Price       int
	OldPrice    *int
	Images      []string
	Variants    []dbtypes.VariantDef
	Volume      *string
	InStock     bool
	Tags        []string
	Description string
}

type service struct {
	repo Repository
}

// NewService builds a products service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug)
	if existing, err := s.repo.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug")
	}

	product := &models.Product{ID: uuid.New()}
	applyInput(product, slug, input)

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug)
	if slug != product.Slug {
		if existing, err := s.repo.FindBySlug(ctx, slug); err == nil && existing != nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug")
		}
	}

	applyInput(product, slug, input)
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validateInput(input UpsertInput) error {
	if strings.TrimSpace(input.Slug) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.OldPrice != nil && *input.OldPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "old price cannot be negative")
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func applyInput(product *models.Product, slug string, input UpsertInput) {
	product.Slug = slug
	product.Name = strings.TrimSpace(input.Name)
	product.Subtitle = input.Subtitle
	product.Price = input.Price
	product.OldPrice = input.OldPrice
	product.Images = dbtypes.StringSlice(input.Images)
	product.Variants = dbtypes.VariantDefs(input.Variants)
	product.Volume = input.Volume
	product.InStock = input.InStock
	product.Tags = dbtypes.StringSlice(input.Tags)
	product.Description = input.Description
}
