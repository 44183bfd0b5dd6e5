package queue

import (
	"context"
	"time"

	"Muse/voice"
)

// Track is the resolved metadata for a single playable item. It is never
// mutated after resolution.
type Track struct {
	ID           string
	Title        string
	URL          string
	Author       string
	AuthorURL    string
	Duration     time.Duration // 0 means live or unknown length
	ThumbnailURL string
	Published    string
	Views        uint64
}

// GuildQueue is the playback session for one guild. The head of Songs is the
// track currently playing. Callers must hold the guild's serialization lock
// (Store.Do) for every read or write after the queue has been published to
// the Store.
type GuildQueue struct {
	GuildID        string
	TextChannelID  string
	VoiceChannelID string
	Songs          []Track
	Volume         float64 // fraction in [0,1]
	Playing        bool    // false while paused
	Connection     voice.Connection
	Dispatcher     voice.Dispatcher

	// CancelIngest stops any in-flight playlist resolution for this guild.
	CancelIngest context.CancelFunc
}

// Head returns the currently playing track.
func (q *GuildQueue) Head() (Track, bool) {
	if len(q.Songs) == 0 {
		return Track{}, false
	}
	return q.Songs[0], true
}

// RemoveAt removes the track at index i. The head track is protected: only
// indices between 1 and len(Songs)-1 are valid.
func (q *GuildQueue) RemoveAt(i int) (Track, bool) {
	if i < 1 || i >= len(q.Songs) {
		return Track{}, false
	}
	t := q.Songs[i]
	q.Songs = append(q.Songs[:i], q.Songs[i+1:]...)
	return t, true
}
