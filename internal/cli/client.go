package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mcoot/playerroster/internal/api/apierr"
	"github.com/mcoot/playerroster/internal/api/request"
	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/model"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Status int
	API    apierr.APIError
}

func (e *StatusError) Error() string {
	if e.API.Code != "" {
		return fmt.Sprintf("%s (%s)", e.API.Message, e.API.Code)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Do performs an HTTP request
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{Status: resp.StatusCode}
		var errResp apierr.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.API = errResp.Error
		}
		return statusErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPatch, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Create posts a new player, letting the client stand in for the
// player service when seeding a remote roster
func (c *Client) Create(ctx context.Context, input model.PlayerInput) (*model.Player, error) {
	var created response.Player
	if err := c.Post(ctx, "/api/v1/players", playerRequest(input), &created); err != nil {
		return nil, err
	}
	return playerFromResponse(created), nil
}

func playersPath(suffix string, q url.Values) string {
	path := "/api/v1/players" + suffix
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return path
}

func playerPath(id int64) string {
	return "/api/v1/players/" + strconv.FormatInt(id, 10)
}

func playerRequest(input model.PlayerInput) request.PlayerRequest {
	req := request.PlayerRequest{
		Name:       input.Name,
		Title:      input.Title,
		Experience: input.Experience,
		Banned:     input.Banned,
	}
	if input.Race != nil {
		race := string(*input.Race)
		req.Race = &race
	}
	if input.Profession != nil {
		profession := string(*input.Profession)
		req.Profession = &profession
	}
	if input.Birthday != nil {
		ms := model.Millis(*input.Birthday)
		req.Birthday = &ms
	}
	return req
}

func playerFromResponse(p response.Player) *model.Player {
	return &model.Player{
		ID:             model.PlayerID(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           model.Race(p.Race),
		Profession:     model.Profession(p.Profession),
		Birthday:       model.FromMillis(p.Birthday),
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Banned:         p.Banned,
	}
}
