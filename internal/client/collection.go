package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Record is anything with a server-assigned identifier
type Record interface {
	GetID() string
}

// Endpoints are the API paths of one resource. Item paths are formed by appending
// "/{id}" to One (reads) and Write (updates and deletes).
type Endpoints struct {
	List  string
	One   string
	Write string
}

// Names produces the messages surfaced on failure
type Names struct {
	Singular string
	Plural   string
}

func (n Names) failed(verb string, plural bool) string {
	if plural {
		return "Failed to " + verb + " " + n.Plural
	}
	return "Failed to " + verb + " " + n.Singular
}

// StoreOption configures a store
type StoreOption func(*storeConfig)

type storeConfig struct {
	notifier Notifier
}

// WithNotifier sends a destructive toast for every failed operation.
func WithNotifier(n Notifier) StoreOption {
	return func(c *storeConfig) { c.notifier = n }
}

// Collection caches a list of records of one resource type together with the
// loading flag and the last error. Requests are never serialised: overlapping
// operations each apply their own result when they complete.
type Collection[T Record] struct {
	api      *API
	ep       Endpoints
	names    Names
	notifier Notifier

	mu       sync.Mutex
	items    []T
	selected *T
	loading  bool
	err      string
}

// NewCollection creates an empty collection
func NewCollection[T Record](api *API, ep Endpoints, names Names, opts ...StoreOption) *Collection[T] {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Collection[T]{api: api, ep: ep, names: names, notifier: cfg.notifier}
}

// Items returns a copy of the cached records in order
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// IDs returns the ids of the cached records in order
func (c *Collection[T]) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.GetID()
	}
	return ids
}

// Selected returns the record loaded by the last FetchOne
func (c *Collection[T]) Selected() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

// Loading reports whether an operation is in flight
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message of the last failed operation, empty after a success.
func (c *Collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

// finish ends an operation, applying mutate on success or recording the failure.
func (c *Collection[T]) finish(message string, err error, mutate func()) error {
	c.mu.Lock()
	c.loading = false
	if err != nil {
		re := newRequestError(message, err)
		c.err = re.Error()
		c.mu.Unlock()
		notifyError(c.notifier, re.Error())
		return re
	}
	if mutate != nil {
		mutate()
	}
	c.mu.Unlock()
	return nil
}

func itemPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}

// FetchAll replaces the collection with the API's list. On failure the previous
// items are kept.
func (c *Collection[T]) FetchAll(ctx context.Context) error {
	c.begin()
	var items []T
	err := c.api.Do(ctx, http.MethodGet, c.ep.List, nil, &items)
	return c.finish(c.names.failed("fetch", true), err, func() {
		c.items = items
	})
}

// FetchOne loads a single record for a detail view.
func (c *Collection[T]) FetchOne(ctx context.Context, id string) (T, error) {
	var item T
	if id == "" {
		return item, c.finish(c.names.failed("fetch", false), ErrMissingID, nil)
	}
	c.begin()
	err := c.api.Do(ctx, http.MethodGet, itemPath(c.ep.One, id), nil, &item)
	return item, c.finish(c.names.failed("fetch", false), err, func() {
		c.selected = &item
	})
}

// Create posts payload and appends the record the API returns.
func (c *Collection[T]) Create(ctx context.Context, payload interface{}) (T, error) {
	c.begin()
	var item T
	err := c.api.Do(ctx, http.MethodPost, c.ep.Write, payload, &item)
	return item, c.finish(c.names.failed("create", false), err, func() {
		c.items = append(c.items, item)
	})
}

// Update puts payload to the record id and replaces the cached copy. hint is the
// caller's view of the record's position; it is used when it still points at id,
// otherwise the record is found by id.
func (c *Collection[T]) Update(ctx context.Context, id string, payload interface{}, hint *int) (T, error) {
	var item T
	if id == "" {
		return item, c.finish(c.names.failed("update", false), ErrMissingID, nil)
	}
	c.begin()
	err := c.api.Do(ctx, http.MethodPut, itemPath(c.ep.Write, id), payload, &item)
	return item, c.finish(c.names.failed("update", false), err, func() {
		c.replace(id, item, hint)
	})
}

// Patch sends body to {Write}/{id}/{suffix} and replaces the cached copy by id.
func (c *Collection[T]) Patch(ctx context.Context, id, suffix string, body interface{}, failMessage string) (T, error) {
	var item T
	if id == "" {
		return item, c.finish(failMessage, ErrMissingID, nil)
	}
	c.begin()
	err := c.api.Do(ctx, http.MethodPatch, itemPath(c.ep.Write, id)+"/"+suffix, body, &item)
	return item, c.finish(failMessage, err, func() {
		c.replace(id, item, nil)
	})
}

// Remove deletes the record and filters it out of the collection.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if id == "" {
		return c.finish(c.names.failed("delete", false), ErrMissingID, nil)
	}
	c.begin()
	err := c.api.Do(ctx, http.MethodDelete, itemPath(c.ep.Write, id), nil, nil)
	return c.finish(c.names.failed("delete", false), err, func() {
		kept := c.items[:0:0]
		for _, item := range c.items {
			if item.GetID() != id {
				kept = append(kept, item)
			}
		}
		c.items = kept
		if c.selected != nil && (*c.selected).GetID() == id {
			c.selected = nil
		}
	})
}

// replace must be called with c.mu held.
func (c *Collection[T]) replace(id string, item T, hint *int) {
	if c.selected != nil && (*c.selected).GetID() == id {
		c.selected = &item
	}
	if hint != nil && *hint >= 0 && *hint < len(c.items) && c.items[*hint].GetID() == id {
		c.items[*hint] = item
		return
	}
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = item
			return
		}
	}
}
