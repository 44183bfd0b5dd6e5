package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0.0, ClampVolume(-0.5))
	assert.Equal(t, 0.0, ClampVolume(0))
	assert.Equal(t, 0.5, ClampVolume(0.5))
	assert.Equal(t, 1.0, ClampVolume(1))
	assert.Equal(t, 1.0, ClampVolume(1.5))
}

func TestScaleSamples_Silence(t *testing.T) {
	buf := []int16{1000, -1000, 32767, -32768}

	scaleSamples(buf, 0)

	for _, s := range buf {
		assert.Equal(t, int16(0), s)
	}
}

func TestScaleSamples_FullVolumeUntouched(t *testing.T) {
	buf := []int16{1000, -1000, 32767}

	scaleSamples(buf, 1)

	assert.Equal(t, []int16{1000, -1000, 32767}, buf)
}

func TestScaleSamples_ReducesMagnitude(t *testing.T) {
	buf := []int16{10000, -10000}

	scaleSamples(buf, 0.5)

	assert.Less(t, buf[0], int16(10000))
	assert.Greater(t, buf[0], int16(0))
	assert.Greater(t, buf[1], int16(-10000))
	assert.Less(t, buf[1], int16(0))
}

func TestStream_PauseResume(t *testing.T) {
	d := newStream(nil, "input", 0.5)

	assert.False(t, d.paused)

	d.Pause()
	assert.True(t, d.paused)
	assert.NotNil(t, d.resume)

	d.Resume()
	assert.False(t, d.paused)
	assert.Nil(t, d.resume)
}

func TestStream_PauseTwice(t *testing.T) {
	d := newStream(nil, "input", 0.5)

	d.Pause()
	first := d.resume
	d.Pause()

	assert.Equal(t, first, d.resume)
	assert.True(t, d.paused)
}

func TestStream_ResumeWithoutPause(t *testing.T) {
	d := newStream(nil, "input", 0.5)

	d.Resume()

	assert.False(t, d.paused)
}

func TestStream_EndTwice(t *testing.T) {
	d := newStream(nil, "input", 0.5)

	d.End()
	d.End()

	select {
	case <-d.stop:
	default:
		t.Fatal("stop channel not closed")
	}
}

func TestStream_Position(t *testing.T) {
	d := newStream(nil, "input", 0.5)

	assert.Equal(t, time.Duration(0), d.Position())

	d.frames = 150
	assert.Equal(t, 3*time.Second, d.Position())
}

func TestStream_VolumeClampedOnCreate(t *testing.T) {
	d := newStream(nil, "input", 2.5)
	assert.Equal(t, 1.0, d.volume)

	d.SetVolume(-1)
	assert.Equal(t, 0.0, d.volume)
}
