package rezdy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rezdyLink/internal/platform/metrics"
	"rezdyLink/internal/shared/normalization"
)

const defaultTimeout = 10 * time.Second

// Client wraps http.Client with base URL handling, the apiKey header, and
// upstream error classification so adapters do not repeat the boilerplate.
// One Client is built per call from the caller-supplied token; it holds no
// mutable state.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		httpClient.Timeout = timeout
	}
	return &Client{baseURL: trimmed, apiKey: strings.TrimSpace(apiKey), client: httpClient}
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return defaultTimeout
	}
	return value
}

// FetchProducts lists the supplier catalogue, optionally scoped to one id.
func (c *Client) FetchProducts(ctx context.Context, productID string) (any, error) {
	return c.get(ctx, productsPath(productID), nil, true)
}

// FetchSessions returns the raw availability payload for one product and
// date window. The body is returned unclassified: the availability extractor
// owns distinguishing "no data" envelopes from real records.
func (c *Client) FetchSessions(ctx context.Context, productCode, startTimeLocal, endTimeLocal string) (any, error) {
	query := url.Values{}
	query.Set("productCode", productCode)
	if startTimeLocal != "" {
		query.Set("startTimeLocal", startTimeLocal)
	}
	if endTimeLocal != "" {
		query.Set("endTimeLocal", endTimeLocal)
	}
	return c.get(ctx, "/availability", query, false)
}

// FetchPickups returns the pickup locations configured for a product.
func (c *Client) FetchPickups(ctx context.Context, productCode string) (any, error) {
	return c.get(ctx, pickupsPath(productCode), nil, false)
}

// CreateBooking submits a booking-creation payload.
func (c *Client) CreateBooking(ctx context.Context, request any) (any, error) {
	return c.do(ctx, http.MethodPost, "/bookings", nil, request, true)
}

// FetchBooking looks an order up by its direct identifier.
func (c *Client) FetchBooking(ctx context.Context, id string) (any, error) {
	return c.get(ctx, bookingPath(id), nil, true)
}

// SearchBookingsByReference looks orders up by reseller reference.
func (c *Client) SearchBookingsByReference(ctx context.Context, reference string) (any, error) {
	query := url.Values{}
	query.Set("resellerReference", reference)
	return c.get(ctx, "/bookings", query, true)
}

// SearchBookingsByText runs the generic free-text order search.
func (c *Client) SearchBookingsByText(ctx context.Context, term string) (any, error) {
	query := url.Values{}
	query.Set("search", term)
	return c.get(ctx, "/bookings", query, true)
}

// SearchBookingsByDateRange lists orders by tour start window.
func (c *Client) SearchBookingsByDateRange(ctx context.Context, minTourStart, maxTourStart string) (any, error) {
	query := url.Values{}
	if minTourStart != "" {
		query.Set("minTourStartTime", minTourStart)
	}
	if maxTourStart != "" {
		query.Set("maxTourStartTime", maxTourStart)
	}
	return c.get(ctx, "/bookings", query, true)
}

// CancelBooking cancels an order.
func (c *Client) CancelBooking(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodDelete, cancelPath(id), nil, nil, true)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, classified bool) (any, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, classified)
}

// do issues one upstream request and decodes the JSON body. When classified
// is set, a requestStatus.success=false body becomes an error (ErrNotFound
// for the no-order sentinel, *APIError otherwise); unclassified calls hand
// the raw payload back for the caller's own shape handling.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, classified bool) (any, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apiKey", c.apiKey)
	}

	// The apiKey header stays out of every log line; only method and path
	// are safe to emit.
	slog.Debug("rezdy request", slog.String("method", method), slog.String("path", path))

	started := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(method, path, 0, time.Since(started))
		return nil, fmt.Errorf("rezdy request failed: %w", err)
	}
	defer res.Body.Close()
	metrics.ObserveUpstream(method, path, res.StatusCode, time.Since(started))
	slog.Debug("rezdy response", slog.String("method", method), slog.String("path", path), slog.Int("status", res.StatusCode))

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		if apiErr := classifyBody(decodeLoose(detail)); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("unexpected rezdy response %d: %s", res.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if classified {
		if apiErr := classifyBody(payload); apiErr != nil {
			if apiErr.NotFound() {
				return payload, fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
			}
			return payload, apiErr
		}
	}
	return payload, nil
}

func decodeLoose(data []byte) any {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}

// classifyBody extracts the upstream business error from a requestStatus
// wrapper, or nil when the body reports success (or carries no wrapper).
func classifyBody(payload any) *APIError {
	record := normalization.AsMap(payload)
	status := normalization.AsMap(record["requestStatus"])
	if status == nil {
		return nil
	}
	if success, ok := status["success"].(bool); !ok || success {
		return nil
	}
	detail := normalization.AsMap(status["error"])
	return &APIError{
		Code:    normalization.FirstString(detail, []string{"errorCode", "code"}),
		Message: normalization.FirstString(detail, []string{"errorMessage", "message"}),
	}
}
