package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"driftboard-client/internal/observability/logger"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// validate checks decoded service responses at the boundary. Responses are
// parsed and validated, never trusted as-is.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the shared JSON-over-HTTPS client all services are built on.
//
// Transport chain: otelhttp instrumentation → bearer token → request ID
// propagation → pooled base transport. Timeouts are enforced here; callers
// get no infinite waits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewClient creates a Client for the given API base URL.
// WHY explicit timeout: http.DefaultClient has zero timeouts, which can
// hang a CLI indefinitely on a stalled connection.
func NewClient(baseURL, token string, timeout time.Duration, log *logger.Logger) *Client {
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	var transport http.RoundTripper = NewRequestIDTransport(baseTransport)
	transport = newBearerTransport(transport, token)
	transport = otelhttp.NewTransport(transport)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Limit redirects to prevent infinite loops
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// do performs one request/response cycle: marshal, send, map non-2xx to
// *Error, decode, validate. It never retries; retry policy belongs to the
// caller or the transport.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Authorization and X-Request-Id are added by the transport chain

	c.log.Debug(ctx, "api request",
		logger.Module("api"),
		logger.Action("request"),
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		c.log.Debug(ctx, "api request rejected",
			logger.Module("api"),
			logger.Action("request"),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Code),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if err := validateResponse(out); err != nil {
		return err
	}

	return nil
}

// validateResponse runs struct validation on decoded payloads. Non-struct
// targets (role maps, slices) rely on their element types' UnmarshalJSON.
func validateResponse(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	if err := validate.Struct(v.Interface()); err != nil {
		return fmt.Errorf("validate response: %w", err)
	}
	return nil
}
