package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/transactions", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page"))

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"data":  []map[string]string{{"id": "a"}, {"id": "b"}},
			"total": 42,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	query := url.Values{}
	query.Set("page", "2")
	rows, total, err := client.List(context.Background(), "/v1/transactions", query)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), total)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(rows, &decoded))
	assert.Len(t, decoded, 2)
}

func TestClientErrorMessagePassedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnprocessableEntity)
		writer.Write([]byte(`{"status":422,"message":"the unsettled commission total (4000) is below the method's minimum settlement amount (5000)"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, _, err = client.List(context.Background(), "/v1/settlements", url.Values{})
	require.Error(t, err)
	assert.Equal(t, "the unsettled commission total (4000) is below the method's minimum settlement amount (5000)", err.Error())
}

func TestClientErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("<html>upstream broke</html>"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/v1/me")
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 502", err.Error())
}

func TestClientUnauthorizedMeansSessionLost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"status":401,"message":"Unauthorized"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/v1/me")
	assert.ErrorIs(t, err, ErrSessionLost)
}

func TestClientTransportFailureMeansSessionLost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/v1/me")
	assert.ErrorIs(t, err, ErrSessionLost)
}

func TestClientMirrorsCSRFCookieIntoHeader(t *testing.T) {
	var seenHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(writer http.ResponseWriter, _ *http.Request) {
		http.SetCookie(writer, &http.Cookie{Name: "csrf_token", Value: "token-123"})
	})
	mux.HandleFunc("/v1/merchants", func(writer http.ResponseWriter, request *http.Request) {
		seenHeader = request.Header.Get(CSRFHeaderName)
		writer.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/login")
	require.NoError(t, err)

	_, err = client.Post(context.Background(), "/v1/merchants", map[string]string{"name": "ACME"})
	require.NoError(t, err)
	assert.Equal(t, "token-123", seenHeader)
}
