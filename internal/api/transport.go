package api

import (
	"net/http"

	"driftboard-client/internal/observability/requestid"
)

// RequestIDTransport is an http.RoundTripper that automatically propagates
// X-Request-Id from context to outbound HTTP requests.
//
// WHY: Without automatic propagation, every call site must remember to set
// the header manually, which is error-prone and non-deterministic.
type RequestIDTransport struct {
	base http.RoundTripper
}

// NewRequestIDTransport creates a new RequestIDTransport wrapping the base
// transport. If base is nil, defaults to http.DefaultTransport.
func NewRequestIDTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RequestIDTransport{base: base}
}

// RoundTrip implements http.RoundTripper. It extracts the request ID from
// the request context and sets X-Request-Id if not already present.
//
// IMPORTANT: Does NOT overwrite an existing X-Request-Id header; explicit
// header values set by the caller take precedence.
func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-Id") != "" {
		return t.base.RoundTrip(req)
	}

	reqID := requestid.GetRequestID(req.Context())
	if reqID == "" {
		// No request ID in context; proceed without the header
		return t.base.RoundTrip(req)
	}

	// Clone request to avoid mutating the original.
	// WHY: http.Request.Header is shared; mutating it races with retries.
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("X-Request-Id", reqID)

	return t.base.RoundTrip(clonedReq)
}

// bearerTransport injects the session token on every outbound request.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func newBearerTransport(base http.RoundTripper, token string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{base: base, token: token}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}

	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("Authorization", "Bearer "+t.token)

	return t.base.RoundTrip(clonedReq)
}
