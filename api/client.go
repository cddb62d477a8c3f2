package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrStatus is returned for non-2xx responses
var ErrStatus = errors.New("unexpected status")

// DefaultLeaderboardLimit matches the server default
const DefaultLeaderboardLimit = 10

// Client talks to the score backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SubmitScore posts a finished session for userID
func (c *Client) SubmitScore(ctx context.Context, userID int, sub Submission) (*Session, error) {
	endpoint := fmt.Sprintf("%s/score?user_id=%d", c.baseURL, userID)

	var session Session
	if err := c.do(ctx, http.MethodPost, endpoint, sub, &session); err != nil {
		return nil, fmt.Errorf("submit score: %w", err)
	}
	c.logger.Info("Score submitted", "user", userID, "score", sub.Score, "songs", len(sub.EatenSongs), "session", session.ID)
	return &session, nil
}

// Leaderboard fetches the top limit players
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	endpoint := c.baseURL + "/leaderboard?" + q.Encode()

	var entries []LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return entries, nil
}

// History fetches the songs eaten in a session
func (c *Client) History(ctx context.Context, sessionID int) ([]Song, error) {
	endpoint := fmt.Sprintf("%s/history/%d", c.baseURL, sessionID)

	var songs []Song
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &songs); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return songs, nil
}

// RegisterUser creates the user or returns the existing one
func (c *Client) RegisterUser(ctx context.Context, u NewUser) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/users", u, &user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
