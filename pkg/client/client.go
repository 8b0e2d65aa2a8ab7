// Package client is a small Go client for the navdeck REST API. The
// reorder controller consumes it through the reorder.API interface; a
// host process constructs one client and passes it down explicitly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Group struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	OrderNum int    `json:"order_num"`
}

type Site struct {
	ID          uint   `json:"id"`
	GroupID     uint   `json:"group_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    int    `json:"order_num"`
}

// Assignment mirrors the body element of the order endpoints.
type Assignment struct {
	ID       uint `json:"id"`
	OrderNum int  `json:"order_num"`
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type statusResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login fetches and stores a bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return err
	}
	if !resp.Success || resp.Token == "" {
		return fmt.Errorf("client: login failed: %s", resp.Message)
	}
	c.Token = resp.Token
	return nil
}

func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) ListSites(ctx context.Context, groupID uint) ([]Site, error) {
	var sites []Site
	path := fmt.Sprintf("/api/sites?groupId=%d", groupID)
	if err := c.do(ctx, http.MethodGet, path, nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (c *Client) SaveGroupOrder(ctx context.Context, assignments []Assignment) error {
	return c.saveOrder(ctx, "/api/group-orders", assignments)
}

func (c *Client) SaveSiteOrder(ctx context.Context, assignments []Assignment) error {
	return c.saveOrder(ctx, "/api/site-orders", assignments)
}

func (c *Client) saveOrder(ctx context.Context, path string, assignments []Assignment) error {
	var resp statusResponse
	if err := c.do(ctx, http.MethodPut, path, assignments, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("client: reorder rejected: %s", resp.Message)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		// Order and login endpoints return {success,message} bodies on
		// failure; anything else carries an {error} body.
		if out != nil && json.Unmarshal(data, out) == nil {
			return nil
		}
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &e)
		msg := e.Error
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("client: %s %s: %s", method, path, msg)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("client: %s %s: bad response: %w", method, path, err)
		}
	}
	return nil
}
