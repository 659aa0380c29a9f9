// Package client talks to the HTTP API of communication/server.
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

	"ringrush/communication"
	"ringrush/game"
	"ringrush/gamemaster"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ communication.Communicator = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateGame(ctx context.Context, seed uint64) (gamemaster.Session, error) {
	var s gamemaster.Session
	err := c.apiCall(ctx, http.MethodPost, "/api/games", communication.CreateGameRequest{Seed: seed}, &s)
	return s, err
}

func (c *Client) ListGames(ctx context.Context) ([]gamemaster.Session, error) {
	var resp communication.ListGamesResponse
	if err := c.apiCall(ctx, http.MethodGet, "/api/games", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}

func (c *Client) GetGame(ctx context.Context, id string) (gamemaster.Session, error) {
	var s gamemaster.Session
	err := c.apiCall(ctx, http.MethodGet, "/api/games/"+id, nil, &s)
	return s, err
}

func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.apiCall(ctx, http.MethodDelete, "/api/games/"+id, nil, nil)
}

func (c *Client) Play(ctx context.Context, id string, action game.Action) (gamemaster.Update, error) {
	var u gamemaster.Update
	err := c.apiCall(ctx, http.MethodPost, "/api/games/"+id+"/actions", communication.PlayRequest{Action: action}, &u)
	return u, err
}

func (c *Client) Legal(ctx context.Context, id string) (communication.LegalResponse, error) {
	var legal communication.LegalResponse
	err := c.apiCall(ctx, http.MethodGet, "/api/games/"+id+"/legal", nil, &legal)
	return legal, err
}

func (c *Client) Render(ctx context.Context, id string) (string, error) {
	var render communication.RenderResponse
	err := c.apiCall(ctx, http.MethodGet, "/api/games/"+id+"/render", nil, &render)
	return render.Board, err
}

// apiCall returns the server's error message wrapped around the sentinel
// error matching the status code, when there is one.
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp communication.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		if sentinel := communication.ErrorOf(resp.StatusCode); sentinel != nil {
			return fmt.Errorf("%w: %s", sentinel, errResp.Error)
		}
		return fmt.Errorf("API error %d: %s", resp.StatusCode, errResp.Error)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
