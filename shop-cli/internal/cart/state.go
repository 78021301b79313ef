package cart

import (
	"foodiegv/domain"

	"github.com/shopspring/decimal"
)

// FlatDeliveryFee is charged once per non-empty cart.
var FlatDeliveryFee = decimal.RequireFromString("5.99")

// State is the cart contents plus the visibility of the cart panel.
// Totals are derived on demand and never stored.
type State struct {
	Items  []domain.CartItem
	IsOpen bool
}

func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(LineTotal(item))
	}
	return total
}

func (s State) DeliveryFee() decimal.Decimal {
	if len(s.Items) == 0 {
		return decimal.Zero
	}
	return FlatDeliveryFee
}

func (s State) FinalTotal() decimal.Decimal {
	return s.TotalPrice().Add(s.DeliveryFee())
}

// LineTotal is price times quantity for one entry.
func LineTotal(item domain.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.MenuItem.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func (s State) clone() State {
	items := make([]domain.CartItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsOpen: s.IsOpen}
}
