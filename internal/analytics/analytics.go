package analytics

import (
	"context"
	"fmt"

	"github.com/cocobloom/storefront-backend/pkg/logger"
)

// Event names mirror the storefront's tracking plan.
const (
	EventCartView         = "cart_view"
	EventAddToCart        = "add_to_cart"
	EventQtyChange        = "qty_change"
	EventRemoveItem       = "remove_item"
	EventPromoApply       = "promo_apply"
	EventCheckoutClick    = "checkout_click"
	EventCODSubmitSuccess = "cod_submit_success"
)

// Event is one tracking beacon. Props are free-form and must be safe to log.
type Event struct {
	Name      string
	SessionID string
	Props     map[string]any
}

// Sink receives events. Emission is best-effort and must never fail a
// user-facing operation.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// LogSink writes events to the structured log stream.
type LogSink struct {
	logg *logger.Logger
}

// NewLogSink builds a sink backed by the application logger.
func NewLogSink(logg *logger.Logger) (*LogSink, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LogSink{logg: logg}, nil
}

func (s *LogSink) Emit(ctx context.Context, event Event) {
	if event.Name == "" {
		return
	}
	fields := map[string]any{"event": event.Name}
	if event.SessionID != "" {
		fields["session_id"] = event.SessionID
	}
	for k, v := range event.Props {
		fields[k] = v
	}
	s.logg.Info(s.logg.WithFields(ctx, fields), "analytics event")
}

// NopSink drops every event. Used in tests and when analytics is disabled.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}
