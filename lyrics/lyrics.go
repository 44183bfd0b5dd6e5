// Package lyrics looks up song lyrics over a simple HTTP JSON API.
package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// ErrNotFound is returned when no lyrics exist for the title.
var ErrNotFound = errors.New("lyrics: not found")

type Result struct {
	Title  string `json:"title"`
	Lyrics string `json:"lyrics"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: viper.GetString("lyrics.api"),
	}
}

// Fetch retrieves lyrics for a song title.
func (c *Client) Fetch(ctx context.Context, title string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?title="+url.QueryEscape(title), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, ErrNotFound
	}

	var body struct {
		Error  string `json:"error"`
		Title  string `json:"title"`
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, ErrNotFound
	}
	if body.Error != "" || body.Lyrics == "" {
		return Result{}, ErrNotFound
	}

	return Result{Title: body.Title, Lyrics: body.Lyrics}, nil
}
