package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

// CallSite is one logical (method, path) pairing with its own loading, data,
// and error state. Sites never interfere with each other; their state resets
// only per site, not globally.
type CallSite struct {
	gateway     *Gateway
	defaultPath string

	mu         sync.Mutex
	loading    bool
	data       json.RawMessage
	errMessage string
}

// Get issues a GET against the site's default path with optional query
// parameters.
func (c *CallSite) Get(ctx context.Context, params map[string]string) Result {
	return c.request(ctx, http.MethodGet, c.defaultPath, nil, params)
}

// GetPath is Get with a per-call path override.
func (c *CallSite) GetPath(ctx context.Context, path string, params map[string]string) Result {
	return c.request(ctx, http.MethodGet, path, nil, params)
}

// Post issues a POST with a JSON payload against the default path.
func (c *CallSite) Post(ctx context.Context, payload any) Result {
	return c.request(ctx, http.MethodPost, c.defaultPath, payload, nil)
}

// PostPath is Post with a per-call path override.
func (c *CallSite) PostPath(ctx context.Context, path string, payload any) Result {
	return c.request(ctx, http.MethodPost, path, payload, nil)
}

// Put issues a PUT with a JSON payload against the default path.
func (c *CallSite) Put(ctx context.Context, payload any) Result {
	return c.request(ctx, http.MethodPut, c.defaultPath, payload, nil)
}

// PutPath is Put with a per-call path override.
func (c *CallSite) PutPath(ctx context.Context, path string, payload any) Result {
	return c.request(ctx, http.MethodPut, path, payload, nil)
}

// Delete issues a DELETE against the default path.
func (c *CallSite) Delete(ctx context.Context) Result {
	return c.request(ctx, http.MethodDelete, c.defaultPath, nil, nil)
}

// DeletePath is Delete with a per-call path override.
func (c *CallSite) DeletePath(ctx context.Context, path string) Result {
	return c.request(ctx, http.MethodDelete, path, nil, nil)
}

// Loading reports whether a request is in flight; true strictly between
// request start and completion.
func (c *CallSite) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Data returns the last successful response body for this site, or nil.
func (c *CallSite) Data() json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Err returns the last recorded failure message for this site, or "".
func (c *CallSite) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

func (c *CallSite) request(ctx context.Context, method, path string, payload any, params map[string]string) Result {
	c.mu.Lock()
	c.loading = true
	c.errMessage = ""
	c.mu.Unlock()

	result := c.gateway.do(ctx, method, path, payload, params)

	c.mu.Lock()
	c.loading = false
	if result.Ok() {
		c.data = result.Data()
	} else {
		c.errMessage = result.ErrMessage()
	}
	c.mu.Unlock()

	return result
}
