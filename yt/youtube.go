// Package yt resolves queries, video URLs and playlists into playable
// tracks, backed by the YouTube Data API for search and the youtube client
// library for metadata and stream extraction.
package yt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"Muse/queue"
	"Muse/redis_client"

	"github.com/kkdai/youtube/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var (
	// ErrNotFound means the query or reference matched nothing.
	ErrNotFound = errors.New("yt: no results")
	// ErrUnavailable means a match existed but its metadata or stream could
	// not be extracted (restricted, private, removed).
	ErrUnavailable = errors.New("yt: video unavailable")
)

const searchEndpoint = "https://www.googleapis.com/youtube/v3/search"

// Client resolves tracks, caching metadata in redis with a TTL.
type Client struct {
	apiKey string
	yt     youtube.Client
	http   *http.Client
	cache  *redis.Client
	ttl    time.Duration
}

// NewClient creates a Client using the configured API key and cache TTL.
func NewClient(rdb *redis.Client) *Client {
	return &Client{
		apiKey: viper.GetString("youtube.api.key"),
		http:   &http.Client{Timeout: 10 * time.Second},
		cache:  rdb,
		ttl:    time.Duration(viper.GetInt("cache.youtube")) * time.Second,
	}
}

// SearchOne returns the best match for a free-text query.
func (c *Client) SearchOne(ctx context.Context, query string) (queue.Track, error) {
	q := url.Values{}
	q.Set("part", "id")
	q.Set("type", "video")
	q.Set("maxResults", "1")
	q.Set("q", query)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return queue.Track{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return queue.Track{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return queue.Track{}, fmt.Errorf("%w: search returned %d", ErrNotFound, resp.StatusCode)
	}

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return queue.Track{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(result.Items) == 0 || result.Items[0].ID.VideoID == "" {
		return queue.Track{}, ErrNotFound
	}

	track, err := c.metadata(ctx, result.Items[0].ID.VideoID)
	if err != nil {
		return queue.Track{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return track, nil
}

// GetByURL extracts a track directly from a video URL.
func (c *Client) GetByURL(ctx context.Context, videoURL string) (queue.Track, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return queue.Track{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	track, err := c.metadata(ctx, videoID)
	if err != nil {
		return queue.Track{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return track, nil
}

// ResolvePlaylist expands a playlist reference into its title and the URLs
// of its items, in playlist order.
func (c *Client) ResolvePlaylist(ctx context.Context, ref string) (string, []string, error) {
	playlist, err := c.yt.GetPlaylistContext(ctx, ref)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	urls := make([]string, 0, len(playlist.Videos))
	for _, entry := range playlist.Videos {
		urls = append(urls, WatchURL(entry.ID))
	}
	return playlist.Title, urls, nil
}

// StreamURL picks the best audio format for the track and returns its
// stream URL.
func (c *Client) StreamURL(track queue.Track) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	video, err := c.yt.GetVideoContext(ctx, track.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", fmt.Errorf("%w: no audio formats", ErrUnavailable)
	}
	streamURL, err := c.yt.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return streamURL, nil
}

// metadata fetches a track's metadata, consulting the redis cache first.
func (c *Client) metadata(ctx context.Context, videoID string) (queue.Track, error) {
	key := "ytmeta:" + videoID

	if c.cache != nil {
		if cached, err := c.cache.Get(redis_client.Ctx, key).Result(); err == nil && cached != "" {
			var track queue.Track
			if err := json.Unmarshal([]byte(cached), &track); err == nil {
				return track, nil
			}
		}
	}

	video, err := c.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return queue.Track{}, err
	}
	track := trackFromVideo(video)

	if c.cache != nil {
		if data, err := json.Marshal(track); err == nil {
			c.cache.Set(redis_client.Ctx, key, data, c.ttl)
		}
	}

	return track, nil
}

func trackFromVideo(v *youtube.Video) queue.Track {
	thumbnail := ""
	if n := len(v.Thumbnails); n > 0 {
		thumbnail = v.Thumbnails[n-1].URL
	}
	return queue.Track{
		ID:           v.ID,
		Title:        v.Title,
		URL:          WatchURL(v.ID),
		Author:       v.Author,
		AuthorURL:    "https://www.youtube.com/channel/" + v.ChannelID,
		Duration:     v.Duration,
		ThumbnailURL: thumbnail,
		Published:    v.PublishDate.Format("2006-01-02"),
		Views:        uint64(v.Views),
	}
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
