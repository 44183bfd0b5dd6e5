package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Start(t *testing.T) {
	bar := ProgressBar(100*time.Second, 0, 10)

	assert.True(t, strings.HasPrefix(bar, progressSlider))
	assert.Equal(t, 9, strings.Count(bar, progressLine))
}

func TestProgressBar_Midway(t *testing.T) {
	bar := ProgressBar(100*time.Second, 50*time.Second, 10)

	assert.Equal(t, strings.Repeat(progressLine, 5)+progressSlider+strings.Repeat(progressLine, 4), bar)
}

func TestProgressBar_Complete(t *testing.T) {
	bar := ProgressBar(100*time.Second, 100*time.Second, 10)

	assert.Equal(t, strings.Repeat(progressLine, 10), bar)
	assert.NotContains(t, bar, progressSlider)
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	bar := ProgressBar(0, 10*time.Second, 10)

	assert.Equal(t, strings.Repeat(progressLine, 10), bar)
}

func TestProgressBar_ZeroSize(t *testing.T) {
	assert.Equal(t, "", ProgressBar(time.Minute, 0, 0))
}
