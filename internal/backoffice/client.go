package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// ErrSessionLost occurs when a request could not reach the API or was rejected as unauthenticated.
// Callers are expected to treat it as "the user was redirected to login" and change nothing else.
var ErrSessionLost = errors.New("the session is no longer valid")

// CSRFHeaderName is the header mutating requests carry the CSRF token in
const CSRFHeaderName = "X-CSRF-Token"

const csrfCookieName = "csrf_token"

// Client is a thin HTTP client for the back office admin API.
// It holds the session cookie in a cookie jar and mirrors the readable CSRF
// cookie into the CSRF header on every mutating request.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client for the given base URL (e.g. 'https://backoffice.example.com')
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// List performs a GET request against a paginated list endpoint and returns the
// raw rows plus the total amount of matching rows
func (client *Client) List(ctx context.Context, path string, query url.Values) (json.RawMessage, uint64, error) {
	body, err := client.do(ctx, http.MethodGet, path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}

	envelope := struct {
		Data  json.RawMessage `json:"data"`
		Total uint64          `json:"total"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, err
	}
	return envelope.Data, envelope.Total, nil
}

// Get performs a GET request and returns the raw response body
func (client *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return client.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with an optional JSON body and returns the raw response body
func (client *Client) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return client.do(ctx, http.MethodPost, path, payload)
}

// Patch performs a PATCH request with a JSON body and returns the raw response body
func (client *Client) Patch(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return client.do(ctx, http.MethodPatch, path, payload)
}

// Delete performs a DELETE request
func (client *Client) Delete(ctx context.Context, path string) error {
	_, err := client.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (client *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := client.csrfToken(); token != "" {
			request.Header.Set(CSRFHeaderName, token)
		}
	}

	response, err := client.http.Do(request)
	if err != nil {
		// The request never reached the API; the session may be gone entirely
		return nil, ErrSessionLost
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, ErrSessionLost
	}

	if response.StatusCode == http.StatusUnauthorized {
		return nil, ErrSessionLost
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, errorFromResponse(response.StatusCode, body)
	}
	return body, nil
}

// errorFromResponse turns a non-2xx response into an error. If the body carries
// the API's error envelope, the contained message is used verbatim; otherwise a
// generic message naming the HTTP status is returned.
func errorFromResponse(status int, body []byte) error {
	envelope := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return errors.New(envelope.Message)
	}
	return fmt.Errorf("HTTP error! status: %d", status)
}

// csrfToken reads the CSRF token out of the readable cookie the API set at login
func (client *Client) csrfToken() string {
	base, err := url.Parse(client.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range client.http.Jar.Cookies(base) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}
