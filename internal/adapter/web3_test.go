// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passnode/passnode/internal/config"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/models"
)

// newTestStore builds an httpRemoteStore pointed at test servers.
func newTestStore(t *testing.T, apiURL, gatewayURL string) *httpRemoteStore {
	t.Helper()
	cfg := config.ClientRemote{
		APIURL:         apiURL,
		GatewayURL:     gatewayURL,
		RequestTimeout: 5 * time.Second,
	}
	s, err := NewHTTPRemoteStore(cfg, logger.Nop())
	require.NoError(t, err)
	return s.(*httpRemoteStore)
}

// ── Upload ──────────────────────────────────────────────────────────────────

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "Websites", r.Header.Get("X-NAME"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"cid": "bafybeigdyr"})
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	cid, err := s.Upload(context.Background(), "test-token", "Websites", []byte(`[]`))

	require.NoError(t, err)
	assert.Equal(t, models.CID("bafybeigdyr"), cid)
}

func TestUpload_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	_, err := s.Upload(context.Background(), "bad-token", "Websites", []byte(`[]`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	_, err := s.Upload(context.Background(), "token", "Websites", []byte(`[]`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestUpload_MissingCIDInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	_, err := s.Upload(context.Background(), "token", "Websites", []byte(`[]`))

	require.Error(t, err)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestList_FiltersByName(t *testing.T) {
	uploads := []models.Upload{
		{CID: "cid-1", Name: "Websites", UploadedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{CID: "cid-2", Name: "Cards", UploadedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{CID: "cid-3", Name: "Websites", UploadedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/uploads", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(uploads)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	got, err := s.List(context.Background(), "token", "Websites")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.CID("cid-1"), got[0].CID)
	assert.Equal(t, models.CID("cid-3"), got[1].CID)
}

func TestList_EmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	got, err := s.List(context.Background(), "token", "Notes")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := newTestStore(t, srv.URL, srv.URL)
	_, err := s.List(context.Background(), "token", "Notes")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

// ── Fetch ───────────────────────────────────────────────────────────────────

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ipfs/bafybeigdyr", r.URL.Path)
		_, _ = w.Write([]byte(`[{"website":"ciphertext"}]`))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	got, err := s.Fetch(context.Background(), "token", "bafybeigdyr")

	require.NoError(t, err)
	assert.Equal(t, `[{"website":"ciphertext"}]`, string(got))
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, srv.URL)
	_, err := s.Fetch(context.Background(), "token", "missing-cid")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNewHTTPRemoteStore_RejectsBadURLs(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ClientRemote
	}{
		{name: "empty api url", cfg: config.ClientRemote{GatewayURL: "https://w3s.link"}},
		{name: "empty gateway url", cfg: config.ClientRemote{APIURL: "https://api.web3.storage"}},
		{name: "bad scheme", cfg: config.ClientRemote{APIURL: "ftp://api", GatewayURL: "https://w3s.link"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPRemoteStore(tt.cfg, logger.Nop())
			assert.Error(t, err)
		})
	}
}
