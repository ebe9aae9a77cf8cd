package cart

import (
	"context"
	"fmt"

	"github.com/cocobloom/storefront-backend/internal/analytics"
	"github.com/cocobloom/storefront-backend/internal/pricing"
	"github.com/cocobloom/storefront-backend/internal/promotions"
	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
	"github.com/cocobloom/storefront-backend/pkg/metrics"
)

// Service exposes session-scoped cart operations. Every mutation persists
// the new state and returns the recomputed view.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*View, error)
	SetQty(ctx context.Context, sessionID, productID string, qty int) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*View, error)
	RemovePromo(ctx context.Context, sessionID string) (*View, error)
}

// View is the cart as rendered to the caller: the ledger snapshot, the
// applied promo (if still known), and a breakdown quoted from the current
// subtotal. The breakdown is derived on every read, so a promo whose
// minimum is no longer met contributes zero without being cleared.
type View struct {
	Items      []LineItem            `json:"items"`
	ItemsCount int                   `json:"items_count"`
	Subtotal   int                   `json:"subtotal"`
	Promo      *promotions.Promotion `json:"promo,omitempty"`
	Breakdown  pricing.Breakdown     `json:"breakdown"`
}

// AddItemInput captures a catalog item at add time. UnitPrice is frozen
// into the line item and not re-fetched later.
type AddItemInput struct {
	ProductID         string
	Name              string
	Image             string
	VariantSelections map[string]string
	Qty               int
	UnitPrice         int
}

type service struct {
	store   StateStore
	catalog *promotions.Catalog
	rules   pricing.Rules
	sink    analytics.Sink
	metrics *metrics.StoreMetrics
}

// NewService builds a cart service backed by the provided stack.
func NewService(store StateStore, catalog *promotions.Catalog, rules pricing.Rules, sink analytics.Sink, m *metrics.StoreMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("promo catalog required")
	}
	if sink == nil {
		return nil, fmt.Errorf("analytics sink required")
	}
	return &service{
		store:   store,
		catalog: catalog,
		rules:   rules,
		sink:    sink,
		metrics: m,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventCartView, SessionID: sessionID, Props: map[string]any{
		"items_count": state.ItemsCount,
		"subtotal":    state.Subtotal,
	}})
	return s.view(state), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error) {
	if input.ProductID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.UnitPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger := NewLedger(state.Items...)
	snap := ledger.Add(LineItem{
		ProductID:         input.ProductID,
		Name:              input.Name,
		Image:             input.Image,
		VariantSelections: input.VariantSelections,
		Qty:               input.Qty,
		UnitPrice:         input.UnitPrice,
	})

	if err := s.persist(ctx, sessionID, state, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("add")
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventAddToCart, SessionID: sessionID, Props: map[string]any{
		"product_id": input.ProductID,
		"qty":        input.Qty,
		"subtotal":   snap.Subtotal,
	}})
	return s.view(state), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (*View, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := NewLedger(state.Items...).Remove(productID)
	if err := s.persist(ctx, sessionID, state, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("remove")
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventRemoveItem, SessionID: sessionID, Props: map[string]any{
		"product_id": productID,
		"subtotal":   snap.Subtotal,
	}})
	return s.view(state), nil
}

func (s *service) SetQty(ctx context.Context, sessionID, productID string, qty int) (*View, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := NewLedger(state.Items...).SetQty(productID, qty)
	if err := s.persist(ctx, sessionID, state, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("set_qty")
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventQtyChange, SessionID: sessionID, Props: map[string]any{
		"product_id": productID,
		"qty":        qty,
		"subtotal":   snap.Subtotal,
	}})
	return s.view(state), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := NewLedger().Clear()
	state.PromoCode = ""
	if err := s.persist(ctx, sessionID, state, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("clear")
	return s.view(state), nil
}

func (s *service) ApplyPromo(ctx context.Context, sessionID, code string) (*View, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	promo, err := s.catalog.TryApply(code, state.Subtotal)
	if err != nil {
		s.metrics.IncPromoApply(applyResult(err))
		return nil, err
	}

	// Replaces any previously applied code; at most one promo at a time.
	state.PromoCode = promo.Code
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	s.metrics.IncPromoApply("accepted")
	s.sink.Emit(ctx, analytics.Event{Name: analytics.EventPromoApply, SessionID: sessionID, Props: map[string]any{
		"code":     promo.Code,
		"subtotal": state.Subtotal,
	}})
	return s.view(state), nil
}

func (s *service) RemovePromo(ctx context.Context, sessionID string) (*View, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Never fails, even when nothing is applied.
	state.PromoCode = ""
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return s.view(state), nil
}

func (s *service) loadState(ctx context.Context, sessionID string) (*State, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.store.Load(ctx, sessionID)
}

func (s *service) persist(ctx context.Context, sessionID string, state *State, snap Snapshot) error {
	state.Items = snap.Items
	state.ItemsCount = snap.ItemsCount
	state.Subtotal = snap.Subtotal
	return s.store.Save(ctx, sessionID, state)
}

func (s *service) view(state *State) *View {
	var promo *promotions.Promotion
	if state.PromoCode != "" {
		if p, ok := s.catalog.Lookup(state.PromoCode); ok {
			promo = p
		}
	}
	return &View{
		Items:      state.Items,
		ItemsCount: state.ItemsCount,
		Subtotal:   state.Subtotal,
		Promo:      promo,
		Breakdown:  pricing.Quote(state.Subtotal, promo, s.rules),
	}
}

func applyResult(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return "unknown_code"
	}
	return "rejected"
}
