package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/common"
)

const (
	// AuthTokenHeader carries the credential on authenticated requests.
	AuthTokenHeader = common.AuthTokenHeaderName

	profilePath = "/api/auth/profile"
	healthPath  = "/api/health"

	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

// HTTPClient talks to the identity service over HTTP/JSON.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.client = hc }
}

// WithUserAgent sets the User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// NewHTTPClient returns a client for the service at baseURL
// (e.g. "http://localhost:3001").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: "gophprofile-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// profileResponse is the envelope of every profile endpoint.
type profileResponse struct {
	Success bool             `json:"success"`
	User    *models.Identity `json:"user,omitempty"`
	Token   string           `json:"token,omitempty"`
	Msg     string           `json:"msg,omitempty"`
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, displayName string, credential models.Credential) (models.ProfileUpdate, error) {
	body, err := json.Marshal(updateProfileRequest{Name: displayName})
	if err != nil {
		return models.ProfileUpdate{}, err
	}

	resp, err := c.do(ctx, http.MethodPut, profilePath, credential, body)
	if err != nil {
		return models.ProfileUpdate{}, err
	}

	if resp.User == nil || resp.Token == "" {
		return models.ProfileUpdate{}, fmt.Errorf("%w: success without user or token", ErrMalformedResponse)
	}

	return models.ProfileUpdate{Identity: *resp.User, Credential: models.Credential(resp.Token)}, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, credential models.Credential) (models.Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, profilePath, credential, nil)
	if err != nil {
		return models.Identity{}, err
	}
	if resp.User == nil {
		return models.Identity{}, fmt.Errorf("%w: success without user", ErrMalformedResponse)
	}
	return *resp.User, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// do performs an authenticated JSON call and returns the decoded envelope
// of a successful response. Every failure is mapped by mapResponse.
func (c *HTTPClient) do(ctx context.Context, method, path string, credential models.Credential, body []byte) (*profileResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(AuthTokenHeader, string(credential))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	return mapResponse(resp)
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func mapResponse(resp *http.Response) (*profileResponse, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var envelope profileResponse
	decodeErr := json.Unmarshal(raw, &envelope)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && decodeErr == nil && envelope.Success {
		return &envelope, nil
	}

	if decodeErr == nil && envelope.Msg != "" {
		return nil, &RejectionError{Status: resp.StatusCode, Reason: envelope.Msg}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case decodeErr != nil:
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	default:
		return nil, &RejectionError{Status: resp.StatusCode}
	}
}
