package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cocobloom/storefront-backend/internal/analytics"
	"github.com/cocobloom/storefront-backend/internal/cart"
	"github.com/cocobloom/storefront-backend/internal/orders"
	"github.com/cocobloom/storefront-backend/pkg/db/models"
	dbtypes "github.com/cocobloom/storefront-backend/pkg/db/types"
	"github.com/cocobloom/storefront-backend/pkg/enums"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CustomerInfo is the COD contact block captured at submission.
type CustomerInfo struct {
	Name          string
	Phone         string
	City          string
	Address       string
	Notes         string
	PreferredTime string
}

// SubmitInput is the checkout form payload.
type SubmitInput struct {
	Name          string
	Phone         string
	City          string
	Address       string
	Notes         string
	PreferredTime string
	Consent       bool
}

// Submission is the result handed back to the caller. The cart is left
// intact; clearing it is the caller's policy.
type Submission struct {
	Order       *models.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// Service turns the current cart into a durable order.
type Service interface {
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*Submission, error)
}

type service struct {
	carts          cart.Service
	repo           orders.Repository
	tx             txRunner
	codes          *CodeGenerator
	sink           analytics.Sink
	metrics        *metrics.StoreMetrics
	whatsAppNumber string
}

// NewService builds a checkout service backed by the provided stack.
func NewService(carts cart.Service, repo orders.Repository, tx txRunner, codes *CodeGenerator, sink analytics.Sink, m *metrics.StoreMetrics, whatsAppNumber string) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	if sink == nil {
		return nil, fmt.Errorf("analytics sink required")
	}
	return &service{
		carts:          carts,
		repo:           repo,
		tx:             tx,
		codes:          codes,
		sink:           sink,
		metrics:        m,
		whatsAppNumber: whatsAppNumber,
	}, nil
}

// Submit snapshots the cart and its breakdown, mints an order code, and
// persists the order atomically. Each call mints a new code; replay
// protection lives upstream in the idempotency middleware.
func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*Submission, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventCheckoutClick, SessionID: sessionID, Props: map[string]any{
		"method": "cod",
	}})

	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if view.ItemsCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	code, err := s.codes.Next()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint order code")
	}

	customer := CustomerInfo{
		Name:          strings.TrimSpace(input.Name),
		Phone:         orders.NormalizePhone(input.Phone),
		City:          strings.TrimSpace(input.City),
		Address:       strings.TrimSpace(input.Address),
		Notes:         strings.TrimSpace(input.Notes),
		PreferredTime: strings.TrimSpace(input.PreferredTime),
	}

	order := buildOrder(code, sessionID, customer, view)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	promoLabel := ""
	if order.PromoCode != nil {
		promoLabel = *order.PromoCode
	}
	s.metrics.ObserveOrder(promoLabel, order.Total)
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventCODSubmitSuccess, SessionID: sessionID, Props: map[string]any{
		"order_code":  code,
		"items_count": view.ItemsCount,
		"total":       order.Total,
	}})

	// The cart is intentionally kept until delivery; only an explicit
	// clear empties it.
	message := BuildWhatsAppMessage(view.Items, view.Breakdown, customer)
	return &Submission{
		Order:       order,
		WhatsAppURL: BuildWhatsAppURL(s.whatsAppNumber, message),
	}, nil
}

func validateInput(input SubmitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if orders.NormalizePhone(input.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if !input.Consent {
		return pkgerrors.New(pkgerrors.CodeValidation, "consent is required")
	}
	return nil
}

func buildOrder(code, sessionID string, customer CustomerInfo, view *cart.View) *models.Order {
	order := &models.Order{
		ID:           uuid.New(),
		Code:         code,
		Status:       enums.OrderStatusReceived,
		SessionID:    sessionID,
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		City:         customer.City,
		Address:      customer.Address,
		Subtotal:     view.Breakdown.Subtotal,
		Discount:     view.Breakdown.Discount,
		Shipping:     view.Breakdown.Shipping,
		TaxIncluded:  view.Breakdown.TaxIncluded,
		Total:        view.Breakdown.Total,
	}
	if customer.Notes != "" {
		order.Notes = &customer.Notes
	}
	if customer.PreferredTime != "" {
		order.PreferredTime = &customer.PreferredTime
	}
	// Record the code only when the promo actually took effect.
	if view.Promo != nil && view.Promo.Eligible(view.Subtotal) {
		code := view.Promo.Code
		order.PromoCode = &code
	}

	for _, item := range view.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:                uuid.New(),
			OrderID:           order.ID,
			ProductID:         item.ProductID,
			Name:              item.Name,
			VariantSelections: dbtypes.StringMap(item.VariantSelections),
			Qty:               item.Qty,
			UnitPrice:         item.UnitPrice,
			LineTotal:         item.UnitPrice * item.Qty,
		})
	}
	return order
}
