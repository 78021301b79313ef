package cart

import "foodiegv/domain"

// Reduce returns the state that follows applying action to state. The
// input slice is never modified.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		next := state.clone()
		for i, item := range next.Items {
			if item.MenuItem.ID == a.MenuItem.ID && item.RestaurantID == a.RestaurantID {
				next.Items[i].Quantity++
				return next
			}
		}
		next.Items = append(next.Items, domain.CartItem{
			MenuItem:     a.MenuItem,
			Quantity:     1,
			RestaurantID: a.RestaurantID,
		})
		return next

	case RemoveItem:
		return State{Items: without(state.Items, a.ItemID), IsOpen: state.IsOpen}

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return State{Items: without(state.Items, a.ItemID), IsOpen: state.IsOpen}
		}
		next := state.clone()
		for i := range next.Items {
			if next.Items[i].MenuItem.ID == a.ItemID {
				next.Items[i].Quantity = a.Quantity
			}
		}
		return next

	case ClearCart:
		return State{Items: []domain.CartItem{}, IsOpen: state.IsOpen}

	case OpenCart:
		next := state.clone()
		next.IsOpen = true
		return next

	case CloseCart:
		next := state.clone()
		next.IsOpen = false
		return next

	case ToggleCart:
		next := state.clone()
		next.IsOpen = !state.IsOpen
		return next

	case LoadCart:
		return State{Items: normalize(a.Items), IsOpen: state.IsOpen}
	}
	return state
}

// normalize drops entries with a non-positive quantity and merges repeated
// (menu item, restaurant) pairs into the first one seen.
func normalize(items []domain.CartItem) []domain.CartItem {
	type key struct{ itemID, restaurantID string }

	merged := make([]domain.CartItem, 0, len(items))
	index := make(map[key]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		k := key{item.MenuItem.ID, item.RestaurantID}
		if i, ok := index[k]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func without(items []domain.CartItem, itemID string) []domain.CartItem {
	kept := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.MenuItem.ID != itemID {
			kept = append(kept, item)
		}
	}
	return kept
}
