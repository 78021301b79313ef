package domain

import "time"

type Restaurant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	Cuisine      string     `json:"cuisine"`
	Neighborhood string     `json:"neighborhood"`
	AveragePrice float64    `json:"averagePrice"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"reviewCount"`
	DeliveryTime string     `json:"deliveryTime"`
	DeliveryFee  float64    `json:"deliveryFee"`
	Menu         []MenuItem `json:"menu"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// MenuSection is one category heading of a restaurant page.
type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// MenuByCategory groups the menu by category in order of first appearance.
func (r Restaurant) MenuByCategory() []MenuSection {
	sections := make([]MenuSection, 0)
	index := make(map[string]int)
	for _, item := range r.Menu {
		i, ok := index[item.Category]
		if !ok {
			i = len(sections)
			index[item.Category] = i
			sections = append(sections, MenuSection{Category: item.Category})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}

// MenuItem looks up a menu entry by id.
func (r Restaurant) MenuItem(id string) (MenuItem, bool) {
	for _, item := range r.Menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

type CartItem struct {
	MenuItem     MenuItem `json:"menuItem"`
	Quantity     int      `json:"quantity"`
	RestaurantID string   `json:"restaurantId"`
}

type ReviewEvent struct {
	Type         string    `json:"type"`
	ReviewID     string    `json:"reviewId"`
	RestaurantID string    `json:"restaurantId"`
	Rating       int       `json:"rating"`
	Timestamp    time.Time `json:"timestamp"`
}

const ReviewSubmittedEvent = "review_submitted"
