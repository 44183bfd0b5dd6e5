// Package voice abstracts the guild voice transport: joining channels,
// streaming audio into them and controlling the stream in flight.
package voice

import "time"

// Transport joins guild voice channels.
type Transport interface {
	Join(guildID, channelID string) (Connection, error)
}

// Connection is an established voice session for one guild.
type Connection interface {
	// Play starts streaming the audio at input (a URL or file path) at the
	// given volume and returns the dispatcher controlling the stream.
	Play(input string, volume float64) (Dispatcher, error)
	ChannelID() string
	Leave() error
}

// Dispatcher controls a single in-flight audio stream.
type Dispatcher interface {
	Pause()
	Resume()
	// End terminates the stream early. A paused stream does not observe End:
	// callers tearing down a paused dispatcher must Resume first.
	End()
	SetVolume(v float64)
	Position() time.Duration
	// Done yields exactly once, when the stream finishes, is ended, or fails.
	Done() <-chan error
}
