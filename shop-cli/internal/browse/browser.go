package browse

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"foodiegv/catalog"
	"foodiegv/domain"
)

type RestaurantAPI interface {
	Restaurants(ctx context.Context, criteria catalog.Criteria) ([]domain.Restaurant, error)
}

// Result is the latest catalog listing. Loading is set while a request for
// Criteria is outstanding.
type Result struct {
	Criteria    catalog.Criteria
	Restaurants []domain.Restaurant
	Err         error
	Loading     bool
}

// Browser re-fetches the listing after the filters settle. Typing in the
// search box waits longer than changing a control.
type Browser struct {
	api      RestaurantAPI
	timeout  time.Duration
	logger   *log.Logger
	onResult func(Result)

	search   *Debouncer
	controls *Debouncer

	mu       sync.Mutex
	criteria catalog.Criteria
	result   Result
	seq      uint64
}

// NewBrowser calls onResult, from a timer goroutine, every time the result
// changes. onResult may be nil.
func NewBrowser(restaurantAPI RestaurantAPI, timeout time.Duration, logger *log.Logger, onResult func(Result)) *Browser {
	if logger == nil {
		logger = log.Default()
	}
	if onResult == nil {
		onResult = func(Result) {}
	}
	return &Browser{
		api:      restaurantAPI,
		timeout:  timeout,
		logger:   logger,
		onResult: onResult,
		search:   NewDebouncer(SearchDelay),
		controls: NewDebouncer(ControlDelay),
	}
}

func (b *Browser) Criteria() catalog.Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.criteria
}

func (b *Browser) Result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

func (b *Browser) SetSearch(term string) {
	b.update(b.search, func(c *catalog.Criteria) { c.Search = term })
}

func (b *Browser) SetCuisine(cuisine string) {
	b.update(b.controls, func(c *catalog.Criteria) { c.Cuisine = strings.TrimSpace(cuisine) })
}

func (b *Browser) SetNeighborhood(neighborhood string) {
	b.update(b.controls, func(c *catalog.Criteria) { c.Neighborhood = strings.TrimSpace(neighborhood) })
}

func (b *Browser) SetMinRating(v *float64) {
	b.update(b.controls, func(c *catalog.Criteria) { c.MinRating = v })
}

func (b *Browser) SetMaxPrice(v *float64) {
	b.update(b.controls, func(c *catalog.Criteria) { c.MaxPrice = v })
}

func (b *Browser) ClearFilters() {
	b.update(b.controls, func(c *catalog.Criteria) { *c = catalog.Criteria{} })
}

// Refresh fetches the current criteria right away.
func (b *Browser) Refresh() {
	b.update(b.controls, func(*catalog.Criteria) {})
	b.controls.Flush()
}

// Stop cancels pending and in-flight requests.
func (b *Browser) Stop() {
	b.search.Stop()
	b.controls.Stop()
}

func (b *Browser) update(d *Debouncer, apply func(*catalog.Criteria)) {
	b.mu.Lock()
	apply(&b.criteria)
	b.mu.Unlock()

	// Whichever debouncer fires last reads the full criteria, so a pending
	// run on the other one is redundant.
	if d == b.search {
		b.controls.Stop()
	} else {
		b.search.Stop()
	}
	d.Trigger(b.fetch)
}

func (b *Browser) fetch(ctx context.Context) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	criteria := b.criteria
	b.result.Criteria = criteria
	b.result.Loading = true
	loading := b.result
	b.mu.Unlock()
	b.onResult(loading)

	reqCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	restaurants, err := b.api.Restaurants(reqCtx, criteria)

	if ctx.Err() != nil {
		// Superseded or stopped. Only the latest request owns the flag.
		b.mu.Lock()
		if seq == b.seq {
			b.result.Loading = false
		}
		b.mu.Unlock()
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		b.logger.Printf("Restaurant listing timed out after %s", b.timeout)
	}

	b.mu.Lock()
	if seq != b.seq {
		b.mu.Unlock()
		return
	}
	b.result = Result{Criteria: criteria, Restaurants: restaurants, Err: err}
	if err != nil {
		// keep the last good listing visible next to the error
		b.result.Restaurants = loading.Restaurants
	}
	result := b.result
	b.mu.Unlock()
	b.onResult(result)
}
