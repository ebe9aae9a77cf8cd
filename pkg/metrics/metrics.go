package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records storefront activity counters.
type StoreMetrics struct {
	cartMutations *prometheus.CounterVec
	promoApplies  *prometheus.CounterVec
	ordersPlaced  *prometheus.CounterVec
	orderValue    *prometheus.HistogramVec
}

// NewStoreMetrics registers the storefront metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart ledger mutations by operation.",
	}, []string{"op"})
	promoApplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_applies_total",
		Help: "Promo code apply attempts by result.",
	}, []string{"result"})
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted at checkout by promo kind.",
	}, []string{"promo"})
	orderValue := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_value_mad",
		Help:    "Order grand total in dirhams.",
		Buckets: []float64{100, 200, 300, 399, 500, 750, 1000, 1500, 2500},
	}, []string{"promo"})
	reg.MustRegister(cartMutations, promoApplies, ordersPlaced, orderValue)
	return &StoreMetrics{
		cartMutations: cartMutations,
		promoApplies:  promoApplies,
		ordersPlaced:  ordersPlaced,
		orderValue:    orderValue,
	}
}

// IncCartMutation increments the mutation counter for the named operation.
func (m *StoreMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPromoApply increments the apply counter for the given result
// ("accepted", "rejected", "unknown_code").
func (m *StoreMetrics) IncPromoApply(result string) {
	if m == nil || m.promoApplies == nil {
		return
	}
	m.promoApplies.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveOrder records one placed order and its grand total.
func (m *StoreMetrics) ObserveOrder(promo string, total int) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	label := normalizeLabel(promo)
	m.ordersPlaced.WithLabelValues(label).Inc()
	m.orderValue.WithLabelValues(label).Observe(float64(total))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "none"
	}
	return v
}
