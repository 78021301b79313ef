package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodiegv/config"
	"foodiegv/shop-cli/internal/api"
	"foodiegv/shop-cli/internal/cart"
	"foodiegv/shop-cli/internal/persist"
)

func newSlot(cfg config.Client, logger *log.Logger) persist.Slot {
	switch cfg.CartSlot {
	case config.SlotRedis:
		return persist.NewRedisSlot(config.MustInitRedis(), cfg.CartKey, 0)
	case config.SlotMemory:
		return persist.NewMemorySlot()
	case config.SlotFile:
		return persist.NewFileSlot(cfg.CartFile)
	default:
		logger.Printf("Unknown CART_SLOT %q, using file %s", cfg.CartSlot, cfg.CartFile)
		return persist.NewFileSlot(cfg.CartFile)
	}
}

func main() {
	config.LoadEnv()
	cfg := config.LoadClient()
	logger := cfg.ClientLog

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridge := persist.NewBridge(newSlot(cfg, logger), logger, cfg.RequestTimeout)
	store := cart.NewStore(bridge, logger)
	if err := store.Hydrate(ctx); err != nil {
		log.Fatalf("Failed to restore cart: %v", err)
	}

	client := api.NewClient(cfg.StorefrontURL, &http.Client{Timeout: cfg.RequestTimeout})
	sh := newShell(os.Stdout, client, store, cfg.RequestTimeout, logger)

	fmt.Fprintf(os.Stdout, "FoodieGV shop (%s). Type \"help\" for commands.\n", cfg.StorefrontURL)
	err := sh.run(ctx, os.Stdin)

	sh.close()
	if cerr := store.Close(context.Background()); cerr != nil {
		logger.Printf("Error closing cart: %v", cerr)
	}
	if err != nil && ctx.Err() == nil {
		log.Fatalf("Input error: %v", err)
	}
}
