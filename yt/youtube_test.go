package yt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}

func TestGetByURL_InvalidReference(t *testing.T) {
	c := &Client{}

	_, err := c.GetByURL(context.Background(), "not a video url")

	assert.ErrorIs(t, err, ErrUnavailable)
}
