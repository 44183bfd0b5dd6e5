package utils

import (
	"strings"
	"time"
)

const (
	progressLine   = "▬"
	progressSlider = "🔘"
)

// ProgressBar renders a playback position bar of size segments.
func ProgressBar(total, current time.Duration, size int) string {
	if size <= 0 {
		return ""
	}
	if total <= 0 || current >= total {
		return strings.Repeat(progressLine, size)
	}
	filled := int(float64(size) * (float64(current) / float64(total)))
	if filled >= size {
		filled = size - 1
	}
	bar := strings.Repeat(progressLine, filled) + progressSlider + strings.Repeat(progressLine, size-filled-1)
	return bar
}
