package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:00:42", FormatDuration(42*time.Second))
	assert.Equal(t, "00:03:05", FormatDuration(3*time.Minute+5*time.Second))
	assert.Equal(t, "01:00:00", FormatDuration(time.Hour))
	assert.Equal(t, "27:46:39", FormatDuration(99999*time.Second))
}

func TestFormatDuration_Negative(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(-time.Minute))
}
