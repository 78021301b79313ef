package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"foodiegv/domain"
	"foodiegv/shop-cli/internal/cart"
)

var _ cart.Persister = (*Bridge)(nil)

// Bridge stores the cart items as a JSON array in a Slot. Storage
// failures are logged and never reach the cart.
type Bridge struct {
	Slot    Slot
	Logger  *log.Logger
	Timeout time.Duration
}

func NewBridge(slot Slot, logger *log.Logger, timeout time.Duration) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{Slot: slot, Logger: logger, Timeout: timeout}
}

func (b *Bridge) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.Timeout)
}

// Load reports false when the slot is empty, unreadable or malformed.
// Entries are returned as stored; the cart normalizes them on load.
func (b *Bridge) Load(ctx context.Context) ([]domain.CartItem, bool) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	raw, err := b.Slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return nil, false
	}
	if err != nil {
		b.Logger.Printf("Warning: failed to read saved cart: %v", err)
		return nil, false
	}

	var stored []domain.CartItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		b.Logger.Printf("Warning: ignoring malformed saved cart: %v", err)
		return nil, false
	}
	if stored == nil {
		b.Logger.Printf("Warning: ignoring saved cart that is not a list")
		return nil, false
	}
	return stored, true
}

func (b *Bridge) Save(ctx context.Context, items []domain.CartItem) {
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		b.Logger.Printf("Warning: failed to encode cart: %v", err)
		return
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	if err := b.Slot.Write(ctx, raw); err != nil {
		b.Logger.Printf("Warning: failed to save cart: %v", err)
	}
}
