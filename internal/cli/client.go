package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clickship/internal/game"

	"github.com/gorilla/websocket"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type TechnologyView struct {
	game.Technology
	LevelName   string `json:"level_name"`
	UpgradeCost int64  `json:"upgrade_cost"`
}

func (c *Client) State(ctx context.Context) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", nil, &out)
	return out, err
}

func (c *Client) CreateBusiness(ctx context.Context, name, productType string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/businesses", map[string]any{
		"name":         name,
		"product_type": productType,
	}, &out)
	return out, err
}

func (c *Client) SelectBusiness(ctx context.Context, id string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/businesses/"+url.PathEscape(id)+"/select", nil, &out)
	return out, err
}

func (c *Client) UpdateBusiness(ctx context.Context, id, name, productType string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPut, "/v1/businesses/"+url.PathEscape(id), map[string]any{
		"name":         name,
		"product_type": productType,
	}, &out)
	return out, err
}

func (c *Client) DeleteBusiness(ctx context.Context, id string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodDelete, "/v1/businesses/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) SetGameState(ctx context.Context, state game.GameState) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game/state", map[string]any{
		"state": state,
	}, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game/reset", nil, &out)
	return out, err
}

func (c *Client) StartProduction(ctx context.Context) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/production/start", nil, &out)
	return out, err
}

func (c *Client) StartShipping(ctx context.Context) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/shipping/start", nil, &out)
	return out, err
}

func (c *Client) Orders(ctx context.Context, status string) ([]game.Order, error) {
	path := "/v1/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out struct {
		Orders []game.Order `json:"orders"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out)
	return out.Orders, err
}

func (c *Client) Technologies(ctx context.Context) ([]TechnologyView, error) {
	var out struct {
		Technologies []TechnologyView `json:"technologies"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/technologies", nil, &out)
	return out.Technologies, err
}

func (c *Client) PurchaseTechnology(ctx context.Context, id string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/technologies/"+url.PathEscape(id)+"/purchase", nil, &out)
	return out, err
}

func (c *Client) UpgradeTechnology(ctx context.Context, id string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/technologies/"+url.PathEscape(id)+"/upgrade", nil, &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context, kind string) ([]game.LeaderboardEntry, error) {
	var out struct {
		Entries []game.LeaderboardEntry `json:"entries"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/leaderboard/"+url.PathEscape(kind), nil, &out)
	return out.Entries, err
}

func (c *Client) RefreshLeaderboard(ctx context.Context) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/leaderboard/refresh", nil, &out)
	return out, err
}

func (c *Client) Save(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/snapshot", nil, nil)
}

// Watch streams state snapshots until ctx ends or the connection drops.
func (c *Client) Watch(ctx context.Context, fn func(game.State)) error {
	u, err := url.Parse(c.BaseURL + "/v1/stream")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		var msg struct {
			Type  string     `json:"type"`
			State game.State `json:"state"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if msg.Type == "state" {
			fn(msg.State)
		}
	}
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
