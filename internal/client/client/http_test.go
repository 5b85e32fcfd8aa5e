package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// recordedRequest is what the fake service saw.
type recordedRequest struct {
	Method string
	Path   string
	Token  string
	Body   string
}

func newServer(t *testing.T, status int, body string) (*HTTPClient, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{Method: r.Method, Path: r.URL.Path, Token: r.Header.Get(AuthTokenHeader), Body: string(b)})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/"), &seen
}

func TestUpdateProfile_Success(t *testing.T) {
	c, seen := newServer(t, http.StatusOK,
		`{"success":true,"user":{"id":"u1","name":"Alex Doe","email":"a@example.com"},"token":"tok2"}`)

	got, err := c.UpdateProfile(context.Background(), "Alex Doe", "tok1")
	require.NoError(t, err)

	want := models.ProfileUpdate{
		Identity:   models.Identity{ID: "u1", DisplayName: "Alex Doe", Email: "a@example.com"},
		Credential: "tok2",
	}
	assert.Empty(t, cmp.Diff(want, got))

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/auth/profile", req.Path)
	assert.Equal(t, "tok1", req.Token)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.Equal(t, map[string]string{"name": "Alex Doe"}, body)
}

func TestUpdateProfile_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantIs     error
		wantReason string
	}{
		{name: "rejection with reason", status: http.StatusBadRequest, body: `{"success":false,"msg":"Name already taken"}`, wantReason: "Name already taken"},
		{name: "200 but success=false", status: http.StatusOK, body: `{"success":false,"msg":"Nope"}`, wantReason: "Nope"},
		{name: "401 with reason", status: http.StatusUnauthorized, body: `{"msg":"Token is not valid"}`, wantIs: ErrUnauthorized, wantReason: "Token is not valid"},
		{name: "401 without body", status: http.StatusUnauthorized, body: ``, wantIs: ErrUnauthorized},
		{name: "500 html", status: http.StatusInternalServerError, body: `<html>oops</html>`, wantIs: ErrUnavailable},
		{name: "200 garbage", status: http.StatusOK, body: `not json`, wantIs: ErrMalformedResponse},
		{name: "success without token", status: http.StatusOK, body: `{"success":true,"user":{"id":"u1"}}`, wantIs: ErrMalformedResponse},
		{name: "success without user", status: http.StatusOK, body: `{"success":true,"token":"t"}`, wantIs: ErrMalformedResponse},
		{name: "400 without reason", status: http.StatusBadRequest, body: `{"success":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newServer(t, tt.status, tt.body)

			_, err := c.UpdateProfile(context.Background(), "Alex", "tok1")
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			var rej *RejectionError
			if tt.wantReason != "" {
				require.ErrorAs(t, err, &rej)
				assert.Equal(t, tt.wantReason, rej.Reason)
				assert.Equal(t, tt.status, rej.Status)
			}
		})
	}
}

func TestUpdateProfile_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url)
	_, err := c.UpdateProfile(context.Background(), "Alex", "tok1")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateProfile_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.UpdateProfile(context.Background(), "Alex", "tok1")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateProfile_CanceledContextIsNotUnavailable(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.UpdateProfile(ctx, "Alex", "tok1")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, errors.Is(err, ErrUnavailable))
}

func TestGetProfile(t *testing.T) {
	c, seen := newServer(t, http.StatusOK, `{"success":true,"user":{"id":"u1","name":"Alex","email":"a@example.com","avatar":"a.png"}}`)

	id, err := c.GetProfile(context.Background(), "tok1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", id.DisplayName)
	require.NotNil(t, id.AvatarRef)
	assert.Equal(t, "a.png", *id.AvatarRef)

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodGet, (*seen)[0].Method)
	assert.Equal(t, "tok1", (*seen)[0].Token)
	assert.Empty(t, (*seen)[0].Body)
}

func TestGetProfile_Unauthorized(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, `{"msg":"Token is not valid"}`)

	_, err := c.GetProfile(context.Background(), "stale")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPing(t *testing.T) {
	c, seen := newServer(t, http.StatusOK, `{"status":"ok"}`)
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "/api/health", (*seen)[0].Path)

	down, _ := newServer(t, http.StatusServiceUnavailable, ``)
	require.ErrorIs(t, down.Ping(context.Background()), ErrUnavailable)
}

func TestRejectionError(t *testing.T) {
	assert.Equal(t, "request rejected: status 400: bad", (&RejectionError{Status: 400, Reason: "bad"}).Error())
	assert.Equal(t, "request rejected: status 409", (&RejectionError{Status: 409}).Error())
	assert.ErrorIs(t, &RejectionError{Status: http.StatusForbidden}, ErrUnauthorized)
	assert.NotErrorIs(t, &RejectionError{Status: http.StatusConflict}, ErrUnauthorized)
}

func TestClose(t *testing.T) {
	require.NoError(t, NewHTTPClient("http://127.0.0.1:1").Close())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestOptions_HTTPClientAndUserAgent(t *testing.T) {
	var got *http.Request
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"success":true,"user":{"id":"u1","name":"Alex"}}`)),
			Request:    r,
		}, nil
	})}

	c := NewHTTPClient("http://identity.test", WithHTTPClient(hc), WithUserAgent("gophprofile-cli/v1.2.3"))
	id, err := c.GetProfile(context.Background(), "tok1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", id.DisplayName)

	require.NotNil(t, got)
	assert.Equal(t, "http://identity.test/api/auth/profile", got.URL.String())
	assert.Equal(t, "gophprofile-cli/v1.2.3", got.Header.Get("User-Agent"))
	assert.Equal(t, "tok1", got.Header.Get(AuthTokenHeader))
}

func TestDefaultUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, NewHTTPClient(srv.URL).Ping(context.Background()))
	assert.Equal(t, "gophprofile-cli", ua)
}
