// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

// Package adapter implements the outbound transport of the client: an HTTP
// adapter for the content-addressed storage service (web3.storage-style API)
// the vault snapshots are persisted to.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/passnode/passnode/internal/config"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/utils"
	"github.com/passnode/passnode/models"
)

type httpRemoteStore struct {
	api     *utils.HTTPClient
	gateway *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP implementation of [RemoteStore]
// against a web3.storage-compatible API. It validates and normalises the API
// and gateway base URLs from cfg and configures both underlying clients with
// the request timeout.
func NewHTTPRemoteStore(cfg config.ClientRemote, log *logger.Logger) (RemoteStore, error) {
	apiURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("remote api url: %w", err)
	}
	gatewayURL, err := normalizeBaseURL(cfg.GatewayURL)
	if err != nil {
		return nil, fmt.Errorf("remote gateway url: %w", err)
	}

	return &httpRemoteStore{
		api:     utils.NewHTTPClient(apiURL, cfg.RequestTimeout),
		gateway: utils.NewHTTPClient(gatewayURL, cfg.RequestTimeout),
		logger:  log,
	}, nil
}

// Upload implements [RemoteStore]. The blob is posted as-is; the X-NAME
// header tags the upload so List can find it later. The store answers with
// the freshly minted content identifier.
func (h *httpRemoteStore) Upload(ctx context.Context, credential, name string, data []byte) (models.CID, error) {
	resp, err := h.api.R().
		SetContext(ctx).
		SetAuthToken(credential).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("X-NAME", url.QueryEscape(name)).
		SetBody(data).
		Post("/upload")
	if err != nil {
		return "", mapTransportError("upload", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var out struct {
		CID models.CID `json:"cid"`
	}
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.CID == "" {
		return "", fmt.Errorf("upload response carries no cid")
	}

	h.logger.Debug().
		Str("name", name).
		Str("cid", string(out.CID)).
		Int("bytes", len(data)).
		Msg("uploaded snapshot blob")

	return out.CID, nil
}

// List implements [RemoteStore]. The storage service lists every upload of
// the account; entries are filtered down to the requested name here, in the
// order the store returned them.
func (h *httpRemoteStore) List(ctx context.Context, credential, name string) ([]models.Upload, error) {
	resp, err := h.api.R().
		SetContext(ctx).
		SetAuthToken(credential).
		Get("/user/uploads")
	if err != nil {
		return nil, mapTransportError("list uploads", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var all []models.Upload
	if err = json.Unmarshal(resp.Body(), &all); err != nil {
		return nil, fmt.Errorf("decode uploads listing: %w", err)
	}

	matched := make([]models.Upload, 0, len(all))
	for _, u := range all {
		if u.Name == name {
			matched = append(matched, u)
		}
	}

	h.logger.Debug().
		Str("name", name).
		Int("total", len(all)).
		Int("matched", len(matched)).
		Msg("listed remote uploads")

	return matched, nil
}

// Fetch implements [RemoteStore]. Blobs are retrieved through the public
// gateway by content identifier; content addressing makes the response
// immutable regardless of which gateway serves it.
func (h *httpRemoteStore) Fetch(ctx context.Context, credential string, cid models.CID) ([]byte, error) {
	resp, err := h.gateway.R().
		SetContext(ctx).
		SetAuthToken(credential).
		Get("/ipfs/" + url.PathEscape(string(cid)))
	if err != nil {
		return nil, mapTransportError("fetch blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", raw)
	}
	return raw, nil
}
