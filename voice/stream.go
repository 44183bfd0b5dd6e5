package voice

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os/exec"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const (
	sampleRate       = 48000
	channels         = 2
	frameSize        = 960 // samples per channel per opus frame
	maxOpusFrameSize = 4000
	frameDuration    = 20 * time.Millisecond
)

// stream pipes ffmpeg's PCM output through a gopus encoder into the voice
// connection's opus channel.
type stream struct {
	vc    *discordgo.VoiceConnection
	input string

	mu     sync.Mutex
	paused bool
	resume chan struct{}
	volume float64
	frames int64
	cmd    *exec.Cmd

	stopOnce sync.Once
	stop     chan struct{}
	done     chan error
}

func newStream(vc *discordgo.VoiceConnection, input string, volume float64) *stream {
	return &stream{
		vc:     vc,
		input:  input,
		volume: ClampVolume(volume),
		stop:   make(chan struct{}),
		done:   make(chan error, 1),
	}
}

func (d *stream) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused {
		return
	}
	d.paused = true
	d.resume = make(chan struct{})
}

func (d *stream) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return
	}
	d.paused = false
	close(d.resume)
	d.resume = nil
}

func (d *stream) End() {
	d.stopOnce.Do(func() { close(d.stop) })
}

func (d *stream) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = ClampVolume(v)
}

func (d *stream) Position() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return time.Duration(d.frames) * frameDuration
}

func (d *stream) Done() <-chan error {
	return d.done
}

func (d *stream) run() {
	err := d.play()
	d.mu.Lock()
	if d.cmd != nil && d.cmd.Process != nil {
		d.cmd.Process.Kill()
		d.cmd.Wait()
	}
	d.mu.Unlock()
	d.done <- err
}

func (d *stream) play() error {
	if !d.vc.Ready {
		for i := 0; i < 20; i++ {
			time.Sleep(250 * time.Millisecond)
			if d.vc.Ready {
				break
			}
		}
		if !d.vc.Ready {
			return fmt.Errorf("voice connection never became ready")
		}
	}

	d.vc.Speaking(true)
	defer d.vc.Speaking(false)

	cmd := exec.Command("ffmpeg",
		"-i", d.input,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	d.mu.Lock()
	d.cmd = cmd
	d.mu.Unlock()

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return err
	}

	buf := make([]int16, frameSize*channels)

	for {
		select {
		case <-d.stop:
			return nil
		default:
		}

		d.mu.Lock()
		paused := d.paused
		resume := d.resume
		vol := d.volume
		d.mu.Unlock()

		if paused {
			// Only the resume channel wakes a paused stream; End is not
			// observed until playback resumes.
			<-resume
			continue
		}

		err := binary.Read(stdout, binary.LittleEndian, buf)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return err
		}

		scaleSamples(buf, vol)

		opus, err := encoder.Encode(buf, frameSize, maxOpusFrameSize)
		if err != nil {
			return err
		}

		if len(opus) > 0 {
			select {
			case d.vc.OpusSend <- opus:
				d.mu.Lock()
				d.frames++
				d.mu.Unlock()
			case <-time.After(time.Second):
				return fmt.Errorf("timeout sending opus frame")
			case <-d.stop:
				return nil
			}
		}
	}

	return cmd.Wait()
}

// scaleSamples applies logarithmic volume scaling in place. The exponent
// approximates a perceived-loudness curve.
func scaleSamples(buf []int16, volume float64) {
	if volume >= 1 {
		return
	}
	gain := math.Pow(volume, 1.661)
	for i, s := range buf {
		buf[i] = int16(float64(s) * gain)
	}
}

// ClampVolume bounds v to [0,1].
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
