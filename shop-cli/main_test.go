package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"foodiegv/catalog"
	"foodiegv/config"
	"foodiegv/domain"
	"foodiegv/shop-cli/internal/api"
	"foodiegv/shop-cli/internal/cart"
	"foodiegv/shop-cli/internal/persist"
)

type fakeStorefront struct {
	restaurants []domain.Restaurant
	reviews     map[string][]domain.Review
	posted      []domain.ReviewInput
}

func (f *fakeStorefront) Restaurants(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error) {
	return catalog.Filter(f.restaurants, criteria), nil
}

func (f *fakeStorefront) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeStorefront) Reviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	return f.reviews[restaurantID], nil
}

func (f *fakeStorefront) CreateReview(ctx context.Context, restaurantID string, input domain.ReviewInput) (*domain.Review, error) {
	f.posted = append(f.posted, input)
	return &domain.Review{ID: "new", RestaurantID: restaurantID, UserName: input.UserName, Rating: input.Rating, Comment: input.Comment, Date: "2024-03-18"}, nil
}

func newTestShell(t *testing.T) (*shell, *fakeStorefront, *bytes.Buffer) {
	t.Helper()
	front := &fakeStorefront{
		restaurants: []domain.Restaurant{
			{
				ID: "2", Name: "Burger House", Cuisine: "Hambúrgueres", Neighborhood: "Jardins", Rating: 4.3, AveragePrice: 28,
				Menu: []domain.MenuItem{
					{ID: "201", Name: "Classic Burger", Price: 15, Category: "Burgers"},
					{ID: "203", Name: "Batata Frita", Price: 12, Category: "Acompanhamentos"},
					{ID: "202", Name: "Bacon Burger", Price: 32.5, Category: "Burgers"},
				},
			},
			{ID: "4", Name: "Taco Loco", Cuisine: "Mexicana", Neighborhood: "Vila Madalena", Rating: 3.9, AveragePrice: 25},
		},
		reviews: map[string][]domain.Review{
			"2": {{ID: "3", RestaurantID: "2", UserName: "Lucas", Rating: 5, Date: "2024-03-15"}},
		},
	}
	logger := log.New(io.Discard, "", 0)
	store := cart.NewStore(persist.NewBridge(persist.NewMemorySlot(), logger, 0), logger)
	out := &bytes.Buffer{}
	return newShell(out, front, store, time.Second, logger), front, out
}

func TestShell_AddBurger(t *testing.T) {
	sh, _, out := newTestShell(t)
	ctx := context.Background()

	sh.exec(ctx, "add 2 201")
	sh.exec(ctx, "cart")

	state := sh.cart.State()
	if state.TotalItems() != 1 {
		t.Fatalf("expected 1 item, got %d", state.TotalItems())
	}
	if got := state.FinalTotal().StringFixed(2); got != "20.99" {
		t.Fatalf("expected final total 20.99, got %s", got)
	}
	for _, want := range []string{"Added Classic Burger", "Subtotal  R$ 15.00", "Delivery  R$ 5.99", "Total     R$ 20.99"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestShell_AddUnknown(t *testing.T) {
	sh, _, out := newTestShell(t)

	sh.exec(context.Background(), "add 2 999")
	sh.exec(context.Background(), "add 99 201")

	if len(sh.cart.State().Items) != 0 {
		t.Fatalf("cart should stay empty")
	}
	if !strings.Contains(out.String(), "Burger House has no item 999") || !strings.Contains(out.String(), "Restaurant not found") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestShell_QuantityAndRemove(t *testing.T) {
	sh, _, _ := newTestShell(t)
	ctx := context.Background()

	sh.exec(ctx, "add 2 201")
	sh.exec(ctx, "add 2 203")
	sh.exec(ctx, "qty 201 3")
	if got := sh.cart.State().TotalItems(); got != 4 {
		t.Fatalf("expected 4 items, got %d", got)
	}

	sh.exec(ctx, "qty 203 0")
	sh.exec(ctx, "remove 201")
	if items := sh.cart.State().Items; len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}
}

func TestShell_Checkout(t *testing.T) {
	sh, _, out := newTestShell(t)
	ctx := context.Background()

	sh.exec(ctx, "checkout")
	if !strings.Contains(out.String(), "Your cart is empty") {
		t.Fatalf("expected empty cart message, got:\n%s", out.String())
	}

	sh.exec(ctx, "add 2 201")
	sh.exec(ctx, "open")
	sh.exec(ctx, "checkout")

	if !strings.Contains(out.String(), "Estimated delivery: 30-45 min") {
		t.Fatalf("expected delivery estimate, got:\n%s", out.String())
	}
	state := sh.cart.State()
	if len(state.Items) != 0 || state.IsOpen {
		t.Fatalf("cart should be cleared and closed after checkout: %+v", state)
	}
}

func TestShell_MenuGroupsByCategory(t *testing.T) {
	sh, _, out := newTestShell(t)

	sh.exec(context.Background(), "menu 2")

	text := out.String()
	burgers := strings.Index(text, "Burgers\n")
	sides := strings.Index(text, "Acompanhamentos\n")
	bacon := strings.Index(text, "Bacon Burger")
	if burgers < 0 || sides < 0 || bacon < 0 {
		t.Fatalf("menu output incomplete:\n%s", text)
	}
	if !(burgers < bacon && bacon < sides) {
		t.Fatalf("expected Bacon Burger under Burgers before Acompanhamentos:\n%s", text)
	}
}

func TestShell_ReviewRatingRequired(t *testing.T) {
	sh, front, out := newTestShell(t)

	sh.exec(context.Background(), "review 2 0 Ana | good")

	if len(front.posted) != 0 {
		t.Fatalf("expected no POST, got %d", len(front.posted))
	}
	if !strings.Contains(out.String(), "rating required") {
		t.Fatalf("expected rating required message, got:\n%s", out.String())
	}
}

func TestShell_ReviewSubmitted(t *testing.T) {
	sh, front, out := newTestShell(t)
	ctx := context.Background()

	sh.exec(ctx, "reviews 2")
	sh.exec(ctx, "review 2 4 Ana Paula | Muito bom ")

	if len(front.posted) != 1 {
		t.Fatalf("expected one POST, got %d", len(front.posted))
	}
	if front.posted[0].UserName != "Ana Paula" || front.posted[0].Comment != "Muito bom" {
		t.Fatalf("unexpected input: %+v", front.posted[0])
	}
	list := sh.reviewStore("2").Reviews()
	if len(list) != 2 || list[0].ID != "new" {
		t.Fatalf("expected new review first, got %+v", list)
	}
	if !strings.Contains(out.String(), "2 reviews, average 4.5") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestShell_ListWithFilters(t *testing.T) {
	sh, _, out := newTestShell(t)
	defer sh.close()

	sh.exec(context.Background(), "list")
	if !strings.Contains(out.String(), "2 restaurants\n") {
		t.Fatalf("unexpected listing:\n%s", out.String())
	}

	sh.exec(context.Background(), "rating abc")
	if !strings.Contains(out.String(), `"abc" is not a number`) {
		t.Fatalf("expected number error, got:\n%s", out.String())
	}
}

func TestShell_RunStopsOnQuit(t *testing.T) {
	sh, _, out := newTestShell(t)
	defer sh.close()

	err := sh.run(context.Background(), strings.NewReader("help\nbogus\nquit\nadd 2 201\n"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `unknown command "bogus"`) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if len(sh.cart.State().Items) != 0 {
		t.Fatalf("commands after quit must not run")
	}
}

func TestNewSlot(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	if _, ok := newSlot(config.Client{CartSlot: config.SlotMemory}, logger).(*persist.MemorySlot); !ok {
		t.Fatalf("expected memory slot")
	}
	slot, ok := newSlot(config.Client{CartSlot: "floppy", CartFile: "/tmp/x.json"}, logger).(*persist.FileSlot)
	if !ok || slot.Path != "/tmp/x.json" {
		t.Fatalf("expected file slot fallback, got %#v", slot)
	}
}
