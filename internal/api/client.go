// Package api implements the typed HTTP transport for the hiwar
// backend. Every call carries the bearer token and the active display
// language; expired tokens are refreshed transparently, with a single
// refresh in flight at a time.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"hiwar/internal/debug"
)

const maxResponseSize = 10 * 1024 * 1024

// expiryLeeway refreshes tokens slightly before their actual expiry so
// a request does not race the backend's clock.
const expiryLeeway = 30 * time.Second

// Credentials abstracts the durable token cache.
type Credentials interface {
	Tokens() (access, refresh string, ok bool)
	SetTokens(access, refresh string) error
	ClearTokens() error
}

// Client is a typed client for the backend API.
type Client struct {
	baseURL     string
	language    string
	httpClient  *http.Client
	credentials Credentials

	// Serializes token refreshes. Requests that 401 while a refresh is
	// in flight wait here and find fresh tokens already in place.
	refreshMu sync.Mutex
}

// New instantiates a client.
func New(baseURL, language string, timeout time.Duration, credentials Credentials) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		language:    language,
		httpClient:  &http.Client{Timeout: timeout},
		credentials: credentials,
	}
}

// SetLanguage sets the display language sent with every request.
func (c *Client) SetLanguage(language string) {
	c.language = language
}

// Language returns the display language sent with every request.
func (c *Client) Language() string {
	return c.language
}

// Authenticated reports whether credentials are available.
func (c *Client) Authenticated() bool {
	_, _, ok := c.credentials.Tokens()
	return ok
}

// Login authenticates and caches the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	request := &LoginRequest{Email: email, Password: password}
	tokens := &TokenPair{}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, request, tokens); err != nil {
		return err
	}
	return errors.Wrap(c.credentials.SetTokens(tokens.AccessToken, tokens.RefreshToken), "caching tokens")
}

// Logout drops the cached tokens.
func (c *Client) Logout() error {
	return c.credentials.ClearTokens()
}

// do performs a request and decodes the enveloped response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request body")
		}
	}

	access, _, ok := c.credentials.Tokens()
	if ok && !isAuthPath(path) && tokenExpired(access) {
		// Best effort. A failed refresh still lets the request run; the
		// backend's 401 then drives the retry path below.
		if err := c.refresh(ctx, access); err != nil {
			logger := debug.GetLogger()
			logger.Warn().Err(err).Msg("pre-emptive token refresh failed")
		}
	}

	response, err := c.roundTrip(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if response.StatusCode == http.StatusUnauthorized && ok && !isAuthPath(path) {
		response.Body.Close()
		if err := c.refresh(ctx, access); err != nil {
			return errors.Wrap(err, "refreshing token")
		}
		response, err = c.roundTrip(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		if response.StatusCode >= 400 {
			return errors.Errorf("request failed with status %d", response.StatusCode)
		}
		return errors.Wrap(err, "unmarshaling response envelope")
	}
	if !env.Success {
		if env.Error != "" {
			return errors.New(env.Error)
		}
		return errors.Errorf("request failed with status %d", response.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "unmarshaling response data")
		}
	}
	return nil
}

// roundTrip builds and executes a single HTTP request.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Response, error) {
	values := url.Values{}
	for key, list := range query {
		for _, value := range list {
			values.Add(key, value)
		}
	}
	values.Set("language_code", c.language)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	request.Header.Set("Content-Type", "application/json")
	if access, _, ok := c.credentials.Tokens(); ok {
		request.Header.Set("Authorization", "Bearer "+access)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "executing request")
	}
	return response, nil
}

// refresh exchanges the refresh token for a new token pair. staleAccess
// is the access token the caller saw fail; when another request already
// rotated the tokens, the refresh is skipped.
func (c *Client) refresh(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refreshToken, ok := c.credentials.Tokens()
	if !ok {
		return errors.New("no cached credentials")
	}
	if access != staleAccess {
		return nil
	}
	if refreshToken == "" {
		return errors.New("no refresh token")
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return errors.Wrap(err, "marshaling refresh request")
	}
	response, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh/", nil, payload)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "reading refresh response")
	}
	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil || !env.Success {
		// An invalid refresh token is terminal: drop the session.
		c.credentials.ClearTokens()
		if err != nil {
			return errors.Wrap(err, "unmarshaling refresh response")
		}
		return errors.New(env.Error)
	}
	tokens := &TokenPair{}
	if err := json.Unmarshal(env.Data, tokens); err != nil {
		return errors.Wrap(err, "unmarshaling token pair")
	}
	return errors.Wrap(c.credentials.SetTokens(tokens.AccessToken, tokens.RefreshToken), "caching tokens")
}

// isAuthPath reports whether a path belongs to the authentication flow
// itself, which must never trigger a token refresh.
func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/register") || strings.Contains(path, "/auth/refresh")
}

// tokenExpired reports whether a JWT access token is expired or about
// to expire. The signature is not verified; only the backend can do that.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return time.Until(expiry.Time) < expiryLeeway
}
