package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotMember marks a 404 from a "members/me" endpoint: the caller simply
// has no membership record at that scope. Absence is not a failure; the
// permission store represents it as an unknown role, never as an error
// surfaced to lookups.
var ErrNotMember = errors.New("no membership at this scope")

// errorEnvelope is the standard error body the API emits:
// {"ok": false, "error": {"code": "...", "message": "..."}}
type errorEnvelope struct {
	OK    bool `json:"ok"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}

// Error is a remote rejection decoded from the API's error envelope.
// Transport failures are NOT wrapped in Error; they surface as the
// underlying *url.Error from the http client.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// IsAuthFailure reports whether err is a remote authorization rejection
// (401 or 403).
func IsAuthFailure(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound
}

// decodeError turns a non-2xx response into an *Error. Bodies that do not
// match the envelope (proxies, HTML error pages) still yield a usable
// status-only Error.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return apiErr
	}

	apiErr.Code = envelope.Error.Code
	apiErr.Message = envelope.Error.Message
	return apiErr
}
