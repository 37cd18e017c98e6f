// Package sustentabag is the HTTP client for the remote Sustenta Bag
// marketplace API. It owns the transport error taxonomy: callers never see a
// raw network or decode error, only ErrUnavailable, ErrMalformed or *APIError.
package sustentabag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrUnavailable signals a transport-level failure reaching the API.
	ErrUnavailable = errors.New("marketplace API unavailable")
	// ErrMalformed signals an undecodable response body.
	ErrMalformed = errors.New("marketplace API returned a malformed response")
)

// APIError is a non-2xx response with a decoded message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("marketplace API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("marketplace API error (status %d)", e.StatusCode)
}

// Client talks to the marketplace REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("marketplace base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// Login exchanges merchant credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a merchant account plus its business entity.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOrders fetches every order belonging to the business. Reads are
// idempotent, so transient failures are retried with fibonacci backoff.
func (c *Client) ListOrders(ctx context.Context, token string, businessID int64) ([]OrderRecord, error) {
	path := "/orders?idBusiness=" + url.QueryEscape(formatID(businessID))
	var envelope struct {
		Data []OrderRecord `json:"data"`
	}
	if err := c.getWithRetry(ctx, path, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateOrderStatus patches the order status. The backend is the authority:
// callers must not mutate local state unless this returns nil.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	return c.do(ctx, http.MethodPatch, path, token, map[string]string{"status": status}, nil)
}

// CreateBag registers a new bag listing. Some backend deployments answer a
// create with an empty body; that still counts as success and the submitted
// payload is echoed back.
func (c *Client) CreateBag(ctx context.Context, token string, payload BagPayload) (*BagRecord, error) {
	var record BagRecord
	err := c.do(ctx, http.MethodPost, "/bags", token, payload, &record)
	if errors.Is(err, ErrMalformed) {
		return &BagRecord{
			Type:        payload.Type,
			Price:       payload.Price,
			Description: payload.Description,
			IDBusiness:  payload.IDBusiness,
			Status:      payload.Status,
			Tags:        payload.Tags,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListBags fetches the business's bag listings.
func (c *Client) ListBags(ctx context.Context, token string, businessID int64) ([]BagRecord, error) {
	path := "/bags?idBusiness=" + url.QueryEscape(formatID(businessID))
	var envelope struct {
		Data []BagRecord `json:"data"`
	}
	if err := c.getWithRetry(ctx, path, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateBag replaces a bag listing.
func (c *Client) UpdateBag(ctx context.Context, token string, id int64, payload BagPayload) (*BagRecord, error) {
	var record BagRecord
	if err := c.do(ctx, http.MethodPut, "/bags/"+formatID(id), token, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteBag removes a bag listing.
func (c *Client) DeleteBag(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/bags/"+formatID(id), token, nil, nil)
}

// GetBusiness fetches the merchant profile.
func (c *Client) GetBusiness(ctx context.Context, token string, id int64) (*BusinessRecord, error) {
	var record BusinessRecord
	if err := c.getWithRetry(ctx, "/businesses/"+formatID(id), token, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateBusiness replaces the merchant profile.
func (c *Client) UpdateBusiness(ctx context.Context, token string, id int64, payload BusinessPayload) (*BusinessRecord, error) {
	var record BusinessRecord
	if err := c.do(ctx, http.MethodPut, "/businesses/"+formatID(id), token, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) getWithRetry(ctx context.Context, path, token string, out any) error {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, token, nil, out)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrMalformed
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<20)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
