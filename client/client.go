// Package client implements the store contract over the shared-card HTTP
// API, so a TUI session can point at a remote keepsake server instead of a
// local database.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/store"
)

// Client talks to a keepsake server. It satisfies store.Store.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against baseURL (e.g. https://keepsake.example).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Close() error { return nil }

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("keepsake server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		if ae.Error != "" {
			return fmt.Errorf("keepsake server: %s", ae.Error)
		}
		return fmt.Errorf("keepsake server returned status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode server response: %w", err)
		}
	}
	return nil
}

func (c *Client) Create(ctx context.Context, m model.Message) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/cards", m, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("server assigned no identifier")
	}
	return out.ID, nil
}

func (c *Client) Get(ctx context.Context, id string) (model.Message, error) {
	var m model.Message
	err := c.do(ctx, http.MethodGet, "/v1/cards/"+url.PathEscape(id), nil, &m)
	return m, err
}

func (c *Client) List(ctx context.Context, pageToken string, limit int) (store.Page, error) {
	q := url.Values{}
	if pageToken != "" {
		q.Set("page", pageToken)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/v1/cards"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out struct {
		Cards     []model.Message `json:"cards"`
		NextToken string          `json:"next_token"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return store.Page{}, err
	}
	return store.Page{Messages: out.Cards, NextToken: out.NextToken}, nil
}

func (c *Client) IncrementView(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/v1/cards/"+url.PathEscape(id)+"/view", nil, nil)
}

func (c *Client) ToggleLike(ctx context.Context, id, deviceID string) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	body := map[string]string{"device_id": deviceID}
	if err := c.do(ctx, http.MethodPost, "/v1/cards/"+url.PathEscape(id)+"/like", body, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}
