// Package listing implements the one paginated list controller every
// entity screen shares: debounced search, infinite scroll, refresh on
// focus, per-row deletes. One generic implementation replaces the
// near-identical copies the per-screen approach breeds, and it is the
// single place where stale responses are discarded.
package listing

import (
	"context"
	"sync"
	"time"

	"modavintage/internal/apierror"
	"modavintage/internal/model"
)

// FetchFunc loads one page of T, optionally filtered by a search term.
type FetchFunc[T any] func(ctx context.Context, page, size int, search string) (model.Page[T], error)

// DeleteFunc removes one row by id.
type DeleteFunc func(ctx context.Context, id int64) error

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot[T any] struct {
	Items        []T
	CurrentPage  int
	HasMore      bool
	Fetching     bool
	LoadingMore  bool
	ErrMessage   string // empty when there is nothing to show
	ActiveSearch string
}

// Controller drives one entity list. Safe for concurrent use: the
// debounce timer, a refresh and a load-more may overlap, and a
// monotonically increasing generation counter guarantees that a
// fresh page-0 result always supersedes any in-flight older-page
// append — responses from stale generations are discarded
// unconditionally.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	pageSize int
	debounce time.Duration

	mu            sync.Mutex
	items         []T
	currentPage   int
	hasMore       bool
	fetching      bool
	loadingMore   bool
	errMsg        string
	searchInput   string
	activeSearch  string
	generation    uint64
	debounceTimer *time.Timer
	deleting      map[int64]bool
}

// New builds a controller with an empty state; nothing is fetched
// until Refresh/OnFocus.
func New[T any](fetch FetchFunc[T], pageSize int, debounce time.Duration) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Controller[T]{
		fetch:    fetch,
		pageSize: pageSize,
		debounce: debounce,
		hasMore:  true,
		deleting: make(map[int64]bool),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:        items,
		CurrentPage:  c.currentPage,
		HasMore:      c.hasMore,
		Fetching:     c.fetching,
		LoadingMore:  c.loadingMore,
		ErrMessage:   c.errMsg,
		ActiveSearch: c.activeSearch,
	}
}

// SetSearchInput stages a search term. After the debounce interval
// with no further input it is promoted to the active term, which
// triggers a fresh page-0 fetch.
func (c *Controller[T]) SetSearchInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchInput = text
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.promoteSearch(context.Background())
	})
}

// SubmitSearch promotes the staged term immediately (explicit submit,
// no debounce). When the term did not change it refreshes instead.
func (c *Controller[T]) SubmitSearch(ctx context.Context) {
	c.mu.Lock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.mu.Unlock()
	c.promoteSearch(ctx)
}

func (c *Controller[T]) promoteSearch(ctx context.Context) {
	c.mu.Lock()
	changed := c.searchInput != c.activeSearch
	if changed {
		c.activeSearch = c.searchInput
	}
	c.mu.Unlock()
	// A changed term and a plain re-submit both mean: fresh page 0.
	c.Refresh(ctx)
}

// Refresh discards accumulated pages and fetches page 0 with the
// active search term. Allowed to supersede an in-flight pagination.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.currentPage = 0
	c.hasMore = true
	search := c.activeSearch
	c.mu.Unlock()
	c.fetchPage(ctx, 0, search, true)
}

// OnFocus re-fetches page 0 — called whenever the list screen regains
// focus, so edits made on other screens show up.
func (c *Controller[T]) OnFocus(ctx context.Context) { c.Refresh(ctx) }

// LoadMore appends the next page unless a fetch is already running or
// the last page was reached.
func (c *Controller[T]) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.fetching || !c.hasMore {
		c.mu.Unlock()
		return
	}
	page := c.currentPage + 1
	search := c.activeSearch
	c.mu.Unlock()
	c.fetchPage(ctx, page, search, false)
}

// fetchPage is the single fetch path. fresh requests always proceed
// (and invalidate whatever is in flight); pagination requests are
// dropped while another fetch runs.
func (c *Controller[T]) fetchPage(ctx context.Context, page int, search string, fresh bool) {
	c.mu.Lock()
	if c.fetching && !fresh {
		c.mu.Unlock()
		return
	}
	if !fresh && !c.hasMore {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.fetching = true
	c.loadingMore = !fresh
	if fresh {
		c.errMsg = ""
	}
	c.mu.Unlock()

	result, err := c.fetch(ctx, page, c.pageSize, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer fetch superseded this one; its state wins.
		return
	}
	c.fetching = false
	c.loadingMore = false

	if err != nil {
		if !apierror.IsSessionInvalid(err) {
			// Session-invalid is handled globally; everything else
			// becomes the inline error banner.
			c.errMsg = apierror.UserMessage(err)
		}
		if fresh || page == 0 {
			c.items = nil
		}
		if !fresh {
			// A failed pagination never advances; stop the walk until
			// the next refresh re-arms it.
			c.hasMore = false
		}
		return
	}

	if fresh || page == 0 {
		c.items = result.Content
	} else {
		c.items = append(c.items, result.Content...)
	}
	c.hasMore = !result.Last
	c.currentPage = result.Number
	c.errMsg = ""
}

// Deleting reports the per-row busy flag.
func (c *Controller[T]) Deleting(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[id]
}

// Delete removes one row through deleteFn. On success the row
// disappears locally at once (idOf locates it) and the list is
// refreshed from the server. Session-invalid failures stay silent;
// any other failure is returned for the caller to surface.
func (c *Controller[T]) Delete(ctx context.Context, id int64, idOf func(T) int64, deleteFn DeleteFunc) error {
	c.mu.Lock()
	if c.deleting[id] {
		c.mu.Unlock()
		return nil
	}
	c.deleting[id] = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.deleting, id)
		c.mu.Unlock()
	}()

	if err := deleteFn(ctx, id); err != nil {
		if apierror.IsSessionInvalid(err) {
			return nil
		}
		return err
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}
