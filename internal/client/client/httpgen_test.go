package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGenerator_Success(t *testing.T) {
	var got shared.GenerateRequest
	var auth, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(shared.GenerateResponse{ImageURL: "https://img/u1.png"})
	}))
	defer ts.Close()

	g := NewHTTPGenerator(ts.URL+"/", 0, func() string { return "tok" })
	resp, err := g.Generate(context.Background(), shared.GenerateRequest{Topic: "X", Style: "vibrant"})
	require.NoError(t, err)

	assert.Equal(t, "https://img/u1.png", resp.ImageURL)
	assert.Equal(t, shared.GeneratePath, path)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, shared.GenerateRequest{Topic: "X", Context: "", Style: "vibrant"}, got)
}

func TestHTTPGenerator_ErrorPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(shared.GenerateResponse{Error: "Topic is required"})
	}))
	defer ts.Close()

	resp, err := NewHTTPGenerator(ts.URL, 0, nil).Generate(context.Background(), shared.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Topic is required", resp.Error)
}

func TestHTTPGenerator_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewHTTPGenerator(ts.URL, 0, nil).Generate(context.Background(), shared.GenerateRequest{Topic: "X"})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPGenerator_NoTokenNoHeader(t *testing.T) {
	auth := "unset"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(shared.GenerateResponse{})
	}))
	defer ts.Close()

	resp, err := NewHTTPGenerator(ts.URL, 0, func() string { return "" }).Generate(context.Background(), shared.GenerateRequest{Topic: "X"})
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Empty(t, resp.ImageURL)
}

func TestHTTPGenerator_RateLimitHonorsContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(shared.GenerateResponse{ImageURL: "u"})
	}))
	defer ts.Close()

	g := NewHTTPGenerator(ts.URL, 0.01, nil)
	_, err := g.Generate(context.Background(), shared.GenerateRequest{Topic: "X"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = g.Generate(ctx, shared.GenerateRequest{Topic: "X"})
	require.Error(t, err)
}

func TestDownloader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	n, err := NewDownloader().Download(context.Background(), ts.URL+"/a.png", &buf)
	require.NoError(t, err)
	assert.EqualValues(t, 9, n)
	assert.Equal(t, "png-bytes", buf.String())
}
