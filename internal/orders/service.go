package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cocobloom/storefront-backend/pkg/db/models"
	"github.com/cocobloom/storefront-backend/pkg/enums"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

// Service exposes order lookup and fulfillment operations. Creation goes
// through checkout, not here.
type Service interface {
	Track(ctx context.Context, code, phone string) (*models.Order, error)
	Get(ctx context.Context, code string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	AdvanceStatus(ctx context.Context, code string, next enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// Track is the customer-facing lookup: both the code and the phone used at
// checkout must match, so a code alone leaks nothing.
func (s *service) Track(ctx context.Context, code, phone string) (*models.Order, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order code is required")
	}
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	order, err := s.repo.FindByCodeAndPhone(ctx, code, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, code string) (*models.Order, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order code is required")
	}

	order, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if filter.Phone != "" {
		filter.Phone = NormalizePhone(filter.Phone)
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// AdvanceStatus moves an order forward through fulfillment. Regressions and
// repeats are rejected.
func (s *service) AdvanceStatus(ctx context.Context, code string, next enums.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"from": order.Status, "to": next})
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = next
	return order, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
