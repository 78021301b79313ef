package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"foodiegv/domain"
	"foodiegv/shop-cli/internal/api"
	"foodiegv/shop-cli/internal/browse"
	"foodiegv/shop-cli/internal/cart"
	"foodiegv/shop-cli/internal/reviews"

	"github.com/shopspring/decimal"
)

type storefrontAPI interface {
	browse.RestaurantAPI
	reviews.ReviewAPI
	Restaurant(ctx context.Context, id string) (*domain.Restaurant, error)
}

var _ storefrontAPI = (*api.Client)(nil)

const helpText = `Commands:
  list                          show restaurants for the current filters
  search <text>                 filter by name, cuisine or neighborhood
  cuisine <name>|-              filter by cuisine
  hood <name>|-                 filter by neighborhood
  rating <min>|-                minimum rating
  price <max>|-                 maximum average price
  reset                         clear all filters
  menu <restaurant>             show a restaurant menu
  add <restaurant> <item>       add one item to the cart
  remove <item>                 remove an item from the cart
  qty <item> <n>                set the quantity of an item
  cart | open | close | toggle  show or hide the cart
  clear                         empty the cart
  checkout                      place the order
  reviews <restaurant>          list reviews
  review <restaurant> <1-5> <name> [| comment]
  quit`

type shell struct {
	out     io.Writer
	api     storefrontAPI
	cart    *cart.Store
	browser *browse.Browser
	timeout time.Duration
	logger  *log.Logger

	outMu   sync.Mutex
	reviews map[string]*reviews.Store
}

func newShell(out io.Writer, client storefrontAPI, store *cart.Store, timeout time.Duration, logger *log.Logger) *shell {
	sh := &shell{
		out:     out,
		api:     client,
		cart:    store,
		timeout: timeout,
		logger:  logger,
		reviews: make(map[string]*reviews.Store),
	}
	sh.browser = browse.NewBrowser(client, timeout, logger, sh.printResult)
	return sh
}

func (s *shell) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func money(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}

func price(v float64) string {
	return money(decimal.NewFromFloat(v))
}

// run reads commands until quit, EOF or ctx is done.
func (s *shell) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-scanErr:
			return err
		case line := <-lines:
			if s.exec(ctx, line) {
				return nil
			}
		}
	}
}

func (s *shell) close() {
	s.browser.Stop()
}

func (s *shell) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// exec runs one command line and reports whether the session should end.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "help", "?":
		s.printf("%s\n", helpText)
	case "quit", "exit":
		return true

	case "list":
		s.browser.Refresh()
	case "search":
		s.browser.SetSearch(rest)
	case "cuisine":
		s.browser.SetCuisine(optionalText(rest))
	case "hood":
		s.browser.SetNeighborhood(optionalText(rest))
	case "rating":
		if v, ok := s.parseBound(rest); ok {
			s.browser.SetMinRating(v)
		}
	case "price":
		if v, ok := s.parseBound(rest); ok {
			s.browser.SetMaxPrice(v)
		}
	case "reset":
		s.browser.ClearFilters()

	case "menu":
		if len(args) != 1 {
			s.printf("usage: menu <restaurant>\n")
			return false
		}
		s.showMenu(ctx, args[0])
	case "add":
		if len(args) != 2 {
			s.printf("usage: add <restaurant> <item>\n")
			return false
		}
		s.addItem(ctx, args[0], args[1])
	case "remove":
		if len(args) != 1 {
			s.printf("usage: remove <item>\n")
			return false
		}
		s.dispatch(ctx, cart.RemoveItem{ItemID: args[0]})
	case "qty":
		if len(args) != 2 {
			s.printf("usage: qty <item> <n>\n")
			return false
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			s.printf("quantity must be a whole number\n")
			return false
		}
		s.dispatch(ctx, cart.UpdateQuantity{ItemID: args[0], Quantity: n})
	case "cart":
		s.printCart(s.cart.State())
	case "open":
		s.dispatch(ctx, cart.OpenCart{})
	case "close":
		s.dispatch(ctx, cart.CloseCart{})
	case "toggle":
		s.dispatch(ctx, cart.ToggleCart{})
	case "clear":
		s.dispatch(ctx, cart.ClearCart{})
	case "checkout":
		s.checkout(ctx)

	case "reviews":
		if len(args) != 1 {
			s.printf("usage: reviews <restaurant>\n")
			return false
		}
		s.showReviews(ctx, args[0])
	case "review":
		s.submitReview(ctx, rest)

	default:
		s.printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func optionalText(v string) string {
	if v == "-" {
		return ""
	}
	return v
}

func (s *shell) parseBound(raw string) (*float64, bool) {
	if raw == "" || raw == "-" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.printf("%q is not a number\n", raw)
		return nil, false
	}
	return &v, true
}

func (s *shell) printResult(result browse.Result) {
	if result.Loading {
		return
	}
	if result.Err != nil {
		s.printf("Could not load restaurants (%v). Try \"list\" again.\n", result.Err)
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	if n := result.Criteria.ActiveCount(); n > 0 {
		fmt.Fprintf(s.out, "%d restaurants (%d filters active)\n", len(result.Restaurants), n)
	} else {
		fmt.Fprintf(s.out, "%d restaurants\n", len(result.Restaurants))
	}
	for _, r := range result.Restaurants {
		fmt.Fprintf(s.out, "  [%s] %s  %s, %s  ★ %.1f  ~%s  %s\n",
			r.ID, r.Name, r.Cuisine, r.Neighborhood, r.Rating, price(r.AveragePrice), r.DeliveryTime)
	}
}

func (s *shell) loadRestaurant(ctx context.Context, id string) (*domain.Restaurant, bool) {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	restaurant, err := s.api.Restaurant(reqCtx, id)
	switch {
	case err == nil:
		return restaurant, true
	case errors.Is(err, api.ErrNotFound):
		s.printf("Restaurant not found\n")
	default:
		s.printf("Could not load restaurant (%v). Try again.\n", err)
	}
	return nil, false
}

func (s *shell) showMenu(ctx context.Context, id string) {
	restaurant, ok := s.loadRestaurant(ctx, id)
	if !ok {
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, "%s (%s, %s) ★ %.1f · %d reviews · %s · delivery %s\n",
		restaurant.Name, restaurant.Cuisine, restaurant.Neighborhood, restaurant.Rating,
		restaurant.ReviewCount, restaurant.DeliveryTime, price(restaurant.DeliveryFee))
	for _, section := range restaurant.MenuByCategory() {
		fmt.Fprintf(s.out, "%s\n", section.Category)
		for _, item := range section.Items {
			fmt.Fprintf(s.out, "  [%s] %s  %s\n", item.ID, item.Name, price(item.Price))
			if item.Description != "" {
				fmt.Fprintf(s.out, "      %s\n", item.Description)
			}
		}
	}
}

func (s *shell) addItem(ctx context.Context, restaurantID, itemID string) {
	restaurant, ok := s.loadRestaurant(ctx, restaurantID)
	if !ok {
		return
	}
	item, ok := restaurant.MenuItem(itemID)
	if !ok {
		s.printf("%s has no item %s\n", restaurant.Name, itemID)
		return
	}
	if err := s.cart.Add(ctx, item, restaurant.ID); err != nil {
		s.printf("Could not update cart: %v\n", err)
		return
	}
	s.printf("Added %s. Cart: %d items\n", item.Name, s.cart.State().TotalItems())
}

func (s *shell) dispatch(ctx context.Context, action cart.Action) {
	state, err := s.cart.Dispatch(ctx, action)
	if err != nil {
		s.printf("Could not update cart: %v\n", err)
		return
	}
	if state.IsOpen {
		s.printCart(state)
	}
}

func (s *shell) printCart(state cart.State) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if len(state.Items) == 0 {
		fmt.Fprintf(s.out, "Your cart is empty\n")
		return
	}
	for _, item := range state.Items {
		fmt.Fprintf(s.out, "  %dx [%s] %s  %s\n", item.Quantity, item.MenuItem.ID, item.MenuItem.Name, money(cart.LineTotal(item)))
	}
	fmt.Fprintf(s.out, "Subtotal  %s\nDelivery  %s\nTotal     %s\n",
		money(state.TotalPrice()), money(state.DeliveryFee()), money(state.FinalTotal()))
}

func (s *shell) checkout(ctx context.Context) {
	summary, err := s.cart.Checkout(ctx)
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		s.printf("Your cart is empty\n")
	case err != nil:
		s.printf("Could not place order: %v\n", err)
	default:
		s.printf("Order placed! %d items, total %s. Estimated delivery: %s\n",
			summary.TotalItems, money(summary.Total), summary.EstimatedDelivery)
	}
}

func (s *shell) reviewStore(restaurantID string) *reviews.Store {
	store, ok := s.reviews[restaurantID]
	if !ok {
		store = reviews.NewStore(restaurantID, s.api, s.logger)
		s.reviews[restaurantID] = store
	}
	return store
}

func (s *shell) showReviews(ctx context.Context, restaurantID string) {
	store := s.reviewStore(restaurantID)

	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()
	if err := store.Load(reqCtx); err != nil {
		s.printf("Could not load reviews (%v). Try again.\n", err)
		return
	}
	s.printReviews(store)
}

func (s *shell) printReviews(store *reviews.Store) {
	list := store.Reviews()

	s.outMu.Lock()
	defer s.outMu.Unlock()
	if len(list) == 0 {
		fmt.Fprintf(s.out, "No reviews yet\n")
		return
	}
	fmt.Fprintf(s.out, "%d reviews, average %.1f\n", len(list), store.Average())
	for _, review := range list {
		fmt.Fprintf(s.out, "  %s  %s  %s\n", strings.Repeat("★", review.Rating), review.UserName, review.Date)
		if review.Comment != "" {
			fmt.Fprintf(s.out, "      %s\n", review.Comment)
		}
	}
}

// submitReview parses "<restaurant> <rating> <name...> [| comment]".
func (s *shell) submitReview(ctx context.Context, rest string) {
	head, comment, _ := strings.Cut(rest, "|")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		s.printf("usage: review <restaurant> <1-5> <name> [| comment]\n")
		return
	}
	rating, err := strconv.Atoi(fields[1])
	if err != nil {
		s.printf("rating must be a whole number from 1 to 5\n")
		return
	}
	input := domain.ReviewInput{
		UserName: strings.Join(fields[2:], " "),
		Rating:   rating,
		Comment:  comment,
	}

	store := s.reviewStore(fields[0])
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	review, err := store.Submit(reqCtx, input)
	if err != nil {
		s.printf("Could not submit review: %v\n", err)
		return
	}
	s.printf("Thanks, %s! Review saved.\n", review.UserName)
	s.printReviews(store)
}
