package client

import (
	"context"
	"net/http"
	"sync"
)

// Document caches a singleton resource such as the about page.
type Document[T any] struct {
	api       *API
	readPath  string
	writePath string
	name      string
	notifier  Notifier

	mu      sync.Mutex
	data    *T
	loading bool
	err     string
}

// NewDocument creates an empty document. writePath may be empty for read-only resources.
func NewDocument[T any](api *API, readPath, writePath, name string, opts ...StoreOption) *Document[T] {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Document[T]{api: api, readPath: readPath, writePath: writePath, name: name, notifier: cfg.notifier}
}

// Data returns the cached value
func (d *Document[T]) Data() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		var zero T
		return zero, false
	}
	return *d.data, true
}

// Loading reports whether an operation is in flight
func (d *Document[T]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Err returns the message of the last failed operation
func (d *Document[T]) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Document[T]) run(ctx context.Context, method, path string, payload interface{}, message string) (T, error) {
	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()

	var value T
	err := d.api.Do(ctx, method, path, payload, &value)

	if err != nil {
		return value, d.fail(message, err)
	}
	d.mu.Lock()
	d.loading = false
	d.data = &value
	d.mu.Unlock()
	return value, nil
}

// fail records a failed operation and raises the error toast.
func (d *Document[T]) fail(message string, err error) error {
	re := newRequestError(message, err)
	d.mu.Lock()
	d.loading = false
	d.err = re.Error()
	d.mu.Unlock()
	notifyError(d.notifier, re.Error())
	return re
}

// Fetch loads the document. On failure the cached value is kept.
func (d *Document[T]) Fetch(ctx context.Context) (T, error) {
	return d.run(ctx, http.MethodGet, d.readPath, nil, "Failed to fetch "+d.name)
}

// Update replaces the document and caches what the API returns.
func (d *Document[T]) Update(ctx context.Context, payload interface{}) (T, error) {
	if d.writePath == "" {
		var zero T
		return zero, d.fail("Failed to update "+d.name, ErrReadOnly)
	}
	return d.run(ctx, http.MethodPut, d.writePath, payload, "Failed to update "+d.name)
}
