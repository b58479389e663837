package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Estimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/estimate", r.URL.Path)
		assert.Equal(t, "red shoes", r.URL.Query().Get("keyword"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"keyword":"red shoes","score":4}`))
	}))
	defer server.Close()

	client := NewAPIClientWithConfig(server.URL + "/")
	resp, err := client.Estimate(context.Background(), "red shoes")

	require.NoError(t, err)
	assert.Equal(t, "red shoes", resp.Keyword)
	assert.Equal(t, 4, resp.Score)
}

func TestAPIClient_Estimate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"[NETWORK_ERROR] vendor returned 503 Service Unavailable"}`))
	}))
	defer server.Close()

	_, err := NewAPIClientWithConfig(server.URL).Estimate(context.Background(), "shoes")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "503")
}

func TestAPIClient_Estimate_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream proxy failure", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewAPIClientWithConfig(server.URL).Estimate(context.Background(), "shoes")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "upstream proxy failure", apiErr.Message)
}

func TestAPIClient_Estimate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewAPIClientWithConfig(server.URL).Estimate(context.Background(), "shoes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestAPIClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"data":{"status":"ok"}}`))
	}))
	defer server.Close()

	status, err := NewAPIClientWithConfig(server.URL).Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}

func TestNewAPIClientWithCmd_Cascade(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(envAPIURL, "")
		assert.Equal(t, defaultAPIURL, NewAPIClientWithCmd(nil).BaseURL())
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(envAPIURL, "http://env.example:9000")
		assert.Equal(t, "http://env.example:9000", NewAPIClientWithCmd(nil).BaseURL())
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(envAPIURL, "http://env.example:9000")
		cmd := &cobra.Command{Use: "estimate"}
		cmd.Flags().String("api-url", "", "")
		require.NoError(t, cmd.Flags().Set("api-url", "http://flag.example:7000/"))

		assert.Equal(t, "http://flag.example:7000", NewAPIClientWithCmd(cmd).BaseURL())
	})
}
