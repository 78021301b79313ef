package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"foodiegv/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrClosed    = errors.New("cart session closed")
	ErrEmptyCart = errors.New("cart is empty")
)

// EstimatedDelivery is the window quoted on every order.
const EstimatedDelivery = "30-45 min"

// Persister stores the cart items between sessions. Load reports false when
// there is nothing usable to restore.
type Persister interface {
	Load(ctx context.Context) ([]domain.CartItem, bool)
	Save(ctx context.Context, items []domain.CartItem)
}

type OrderSummary struct {
	Items             []domain.CartItem
	TotalItems        int
	Subtotal          decimal.Decimal
	DeliveryFee       decimal.Decimal
	Total             decimal.Decimal
	EstimatedDelivery string
}

// Store owns the cart for one session. Every dispatch is saved through the
// persister.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	logger    *log.Logger
	closed    bool
}

func NewStore(persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		state:     State{Items: []domain.CartItem{}},
		persister: persister,
		logger:    logger,
	}
}

// Hydrate restores the persisted items, if any. It does not write back.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.persister == nil {
		return nil
	}
	if items, ok := s.persister.Load(ctx); ok {
		s.state = Reduce(s.state, LoadCart{Items: items})
		s.logger.Printf("Restored %d cart entries", len(s.state.Items))
	}
	return nil
}

// State returns a snapshot of the current cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) Dispatch(ctx context.Context, action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return State{}, ErrClosed
	}
	s.state = Reduce(s.state, action)
	s.save(ctx)
	return s.state.clone(), nil
}

func (s *Store) save(ctx context.Context) {
	if s.persister == nil {
		return
	}
	items := make([]domain.CartItem, len(s.state.Items))
	copy(items, s.state.Items)
	s.persister.Save(ctx, items)
}

func (s *Store) Add(ctx context.Context, item domain.MenuItem, restaurantID string) error {
	_, err := s.Dispatch(ctx, AddItem{MenuItem: item, RestaurantID: restaurantID})
	return err
}

func (s *Store) Remove(ctx context.Context, itemID string) error {
	_, err := s.Dispatch(ctx, RemoveItem{ItemID: itemID})
	return err
}

func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	_, err := s.Dispatch(ctx, UpdateQuantity{ItemID: itemID, Quantity: quantity})
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.Dispatch(ctx, ClearCart{})
	return err
}

func (s *Store) OpenCart(ctx context.Context) error {
	_, err := s.Dispatch(ctx, OpenCart{})
	return err
}

func (s *Store) CloseCart(ctx context.Context) error {
	_, err := s.Dispatch(ctx, CloseCart{})
	return err
}

func (s *Store) ToggleCart(ctx context.Context) error {
	_, err := s.Dispatch(ctx, ToggleCart{})
	return err
}

func (s *Store) Load(ctx context.Context, items []domain.CartItem) error {
	_, err := s.Dispatch(ctx, LoadCart{Items: items})
	return err
}

// Checkout summarises the order, then empties and closes the cart.
func (s *Store) Checkout(ctx context.Context) (*OrderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if len(s.state.Items) == 0 {
		return nil, ErrEmptyCart
	}

	current := s.state.clone()
	summary := &OrderSummary{
		Items:             current.Items,
		TotalItems:        current.TotalItems(),
		Subtotal:          current.TotalPrice(),
		DeliveryFee:       current.DeliveryFee(),
		Total:             current.FinalTotal(),
		EstimatedDelivery: EstimatedDelivery,
	}

	s.state = Reduce(Reduce(s.state, ClearCart{}), CloseCart{})
	s.save(ctx)
	s.logger.Printf("Order placed: %d items, total %s", summary.TotalItems, summary.Total.StringFixed(2))
	return summary, nil
}

// Close ends the session after a final save. Later calls are no-ops.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.save(ctx)
	s.closed = true
	return nil
}
