package enums

// OrderStatus tracks a cash-on-delivery order through fulfillment.
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "received"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusReceived:       0,
	OrderStatusPacked:         1,
	OrderStatusShipped:        2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// Valid reports whether the value is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo allows forward moves only; orders never regress.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}
