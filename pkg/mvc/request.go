// Package mvc is the runtime used by code that mvcgen generates.
//
// Generated dispatch code receives a *Request per inbound HTTP request,
// matches it against routed actions, and hands the action's ViewResult back to
// the Server, which renders the selected view.
package mvc

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Method is a set of HTTP verbs an action accepts.
type Method uint8

const (
	MethodGet Method = 1 << iota
	MethodPost
	MethodPut
	MethodDelete
)

// String lists the verbs in the set, e.g. "GET|POST".
func (m Method) String() string {
	var verbs []string
	for _, v := range []struct {
		m    Method
		name string
	}{
		{MethodGet, http.MethodGet},
		{MethodPost, http.MethodPost},
		{MethodPut, http.MethodPut},
		{MethodDelete, http.MethodDelete},
	} {
		if m&v.m != 0 {
			verbs = append(verbs, v.name)
		}
	}
	if len(verbs) == 0 {
		return "NONE"
	}
	return strings.Join(verbs, "|")
}

// ParseMethod maps an HTTP verb to its Method. HEAD is treated as GET.
// Unknown verbs map to 0.
func ParseMethod(verb string) Method {
	switch strings.ToUpper(verb) {
	case http.MethodGet, http.MethodHead:
		return MethodGet
	case http.MethodPost:
		return MethodPost
	case http.MethodPut:
		return MethodPut
	case http.MethodDelete:
		return MethodDelete
	}
	return 0
}

// Request is the per-request value passed to generated dispatch code.
type Request struct {
	r   *http.Request
	ctx *ViewContext
}

// NewRequest wraps r.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

// HTTP returns the underlying request.
func (r *Request) HTTP() *http.Request {
	return r.r
}

// Path returns the request path without query string.
func (r *Request) Path() string {
	return r.r.URL.Path
}

// URLMatch reports whether the request path equals path exactly.
func (r *Request) URLMatch(path string) bool {
	return r.r.URL.Path == path
}

// Match reports whether the request path equals path and its verb is in
// methods.
func (r *Request) Match(path string, methods Method) bool {
	return r.URLMatch(path) && methods&ParseMethod(r.r.Method) != 0
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.r.Context()
}

// Query returns the parsed query string.
func (r *Request) Query() url.Values {
	return r.r.URL.Query()
}

// ViewContext returns the view context of this request. Every call returns
// the same value.
func (r *Request) ViewContext() *ViewContext {
	if r.ctx == nil {
		r.ctx = newViewContext()
	}
	return r.ctx
}
