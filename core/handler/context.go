package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts.
// BaseContext is the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// BaseContext delegates to the request's context. SetValue replaces the
// request with one carrying the new value, so later Request calls see it.
type BaseContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

// NewContext creates a BaseContext for one request.
func NewContext(w http.ResponseWriter, r *http.Request) *BaseContext {
	return &BaseContext{w: w, r: r}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *BaseContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *BaseContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *BaseContext) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key.
func (c *BaseContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the HTTP request associated with this context.
func (c *BaseContext) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *BaseContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the URL parameter for the given key.
// Values set with SetParam take precedence over http.Request.PathValue.
func (c *BaseContext) Param(key string) string {
	if v, ok := c.params[key]; ok {
		return v
	}
	return c.r.PathValue(key)
}

// SetParam sets a URL parameter.
func (c *BaseContext) SetParam(key, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[key] = value
}

// SetValue stores val under key in the request context.
func (c *BaseContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
