package persist

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Read when nothing has been written yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single named value holding the serialized cart.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

var (
	_ Slot = (*FileSlot)(nil)
	_ Slot = (*RedisSlot)(nil)
	_ Slot = (*MemorySlot)(nil)
)
