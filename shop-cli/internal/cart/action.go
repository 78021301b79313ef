package cart

import "foodiegv/domain"

// Action is a cart command consumed by Reduce.
type Action interface {
	cartAction()
}

type AddItem struct {
	MenuItem     domain.MenuItem
	RestaurantID string
}

// RemoveItem drops every entry with the given menu item id, whatever the
// restaurant.
type RemoveItem struct {
	ItemID string
}

// UpdateQuantity with Quantity <= 0 behaves as RemoveItem.
type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

type ClearCart struct{}

type OpenCart struct{}

type CloseCart struct{}

type ToggleCart struct{}

// LoadCart replaces the items wholesale. Used for hydration.
type LoadCart struct {
	Items []domain.CartItem
}

func (AddItem) cartAction()        {}
func (RemoveItem) cartAction()     {}
func (UpdateQuantity) cartAction() {}
func (ClearCart) cartAction()      {}
func (OpenCart) cartAction()       {}
func (CloseCart) cartAction()      {}
func (ToggleCart) cartAction()     {}
func (LoadCart) cartAction()       {}
