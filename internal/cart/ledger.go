package cart

import "maps"

// LineItem is one cart row. UnitPrice is frozen at add time and never
// re-fetched from the catalog.
type LineItem struct {
	ProductID         string            `json:"product_id"`
	Name              string            `json:"name"`
	Image             string            `json:"image,omitempty"`
	VariantSelections map[string]string `json:"variant_selections,omitempty"`
	Qty               int               `json:"qty"`
	UnitPrice         int               `json:"unit_price"`
}

// Snapshot is the ledger's item list with its aggregates. The three fields
// are always published together; a reader never sees them out of sync.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	ItemsCount int        `json:"items_count"`
	Subtotal   int        `json:"subtotal"`
}

// Ledger holds the ordered line items for one session. Insertion order is
// the display order. Not safe for concurrent use; the owning service
// serializes access per session.
type Ledger struct {
	items []LineItem
}

// NewLedger rebuilds a ledger from persisted items, clamping quantities.
func NewLedger(items ...LineItem) *Ledger {
	l := &Ledger{items: make([]LineItem, 0, len(items))}
	for _, item := range items {
		if item.Qty < 1 {
			item.Qty = 1
		}
		l.items = append(l.items, item)
	}
	return l
}

// Add merges into an existing row when productID and variant selections
// match structurally; otherwise it appends. Duplicate adds are merges, not
// errors. Quantities below 1 are clamped.
func (l *Ledger) Add(item LineItem) Snapshot {
	if item.Qty < 1 {
		item.Qty = 1
	}
	for i := range l.items {
		if l.items[i].ProductID == item.ProductID && maps.Equal(l.items[i].VariantSelections, item.VariantSelections) {
			l.items[i].Qty += item.Qty
			return l.Snapshot()
		}
	}
	l.items = append(l.items, item)
	return l.Snapshot()
}

// Remove drops every row carrying the productID, variants included.
// Removing an unknown id is a no-op.
func (l *Ledger) Remove(productID string) Snapshot {
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	l.items = kept
	return l.Snapshot()
}

// SetQty updates the first row matching productID, clamping to a minimum
// of 1. Unknown ids are a no-op.
func (l *Ledger) SetQty(productID string, qty int) Snapshot {
	if qty < 1 {
		qty = 1
	}
	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].Qty = qty
			break
		}
	}
	return l.Snapshot()
}

// Clear empties the ledger.
func (l *Ledger) Clear() Snapshot {
	l.items = nil
	return l.Snapshot()
}

// Snapshot recomputes the aggregates and returns a copy of the items.
// Variant maps are cloned too; callers may mutate the snapshot freely.
func (l *Ledger) Snapshot() Snapshot {
	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	for i := range items {
		items[i].VariantSelections = maps.Clone(items[i].VariantSelections)
	}

	count := 0
	subtotal := 0
	for _, item := range items {
		count += item.Qty
		subtotal += item.UnitPrice * item.Qty
	}
	return Snapshot{Items: items, ItemsCount: count, Subtotal: subtotal}
}
