// Package player drives per-guild playback: it streams the head of a guild's
// queue through the voice transport, advances the queue when a track ends and
// tears the session down when the queue empties.
package player

import (
	"sync"
	"time"

	"Muse/queue"
	"Muse/voice"

	"github.com/Strum355/log"
)

// State is the playback engine's per-guild state.
type State int

const (
	Idle State = iota
	Starting
	Streaming
	Paused
	Advancing
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Streaming:
		return "streaming"
	case Paused:
		return "paused"
	case Advancing:
		return "advancing"
	default:
		return "idle"
	}
}

// StreamSource yields a streamable input for a resolved track.
type StreamSource interface {
	StreamURL(track queue.Track) (string, error)
}

// Notifier renders engine events to the guild's text channel.
type Notifier interface {
	// NowPlaying announces the first track of a fresh session and returns
	// the sent message's ID, or "" if nothing was sent.
	NowPlaying(channelID string, track queue.Track) string
	PlayerDestroyed(channelID string)
	PlaybackError(channelID string, err error)
}

// ReactionBinder attaches and revokes the emoji controls on a now-playing
// message.
type ReactionBinder interface {
	Bind(guildID, channelID, messageID string, trackDuration time.Duration)
	Revoke(guildID string)
}

type Engine struct {
	store   *queue.Store
	voice   voice.Transport
	streams StreamSource
	notify  Notifier
	binder  ReactionBinder

	mu     sync.Mutex
	states map[string]State
}

func New(store *queue.Store, transport voice.Transport, streams StreamSource, notify Notifier) *Engine {
	if store == nil || transport == nil || streams == nil || notify == nil {
		panic("player: nil collaborator")
	}
	return &Engine{
		store:   store,
		voice:   transport,
		streams: streams,
		notify:  notify,
		states:  make(map[string]State),
	}
}

// BindReactions wires the reaction control system in after construction.
func (e *Engine) BindReactions(b ReactionBinder) {
	e.binder = b
}

// State reports the engine's current state for a guild.
func (e *Engine) State(guildID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[guildID]
}

func (e *Engine) setState(guildID string, s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s == Idle {
		delete(e.states, guildID)
		return
	}
	e.states[guildID] = s
}

// StartSession joins the queue's voice channel and begins streaming its
// first track. It must be called from within Store.Do for the guild, with
// the queue freshly created. On a join failure the caller owns the rollback.
func (e *Engine) StartSession(q *queue.GuildQueue) error {
	e.setState(q.GuildID, Starting)
	conn, err := e.voice.Join(q.GuildID, q.VoiceChannelID)
	if err != nil {
		e.setState(q.GuildID, Idle)
		return err
	}
	q.Connection = conn
	go e.run(q.GuildID)
	return nil
}

// run is the per-session playback loop. Each iteration streams the current
// head track, waits for it to finish and advances the queue.
func (e *Engine) run(guildID string) {
	first := true
	for {
		var (
			disp          voice.Dispatcher
			track         queue.Track
			textChannelID string
			startErr      error
			alive         bool
		)
		e.store.Do(guildID, func() {
			q := e.store.Get(guildID)
			if q == nil {
				return
			}
			textChannelID = q.TextChannelID
			if len(q.Songs) == 0 || q.Connection == nil {
				e.destroyLocked(q)
				return
			}
			track = q.Songs[0]
			input, err := e.streams.StreamURL(track)
			if err != nil {
				startErr = err
				e.destroyLocked(q)
				return
			}
			disp, err = q.Connection.Play(input, q.Volume)
			if err != nil {
				startErr = err
				e.destroyLocked(q)
				return
			}
			q.Dispatcher = disp
			q.Playing = true
			e.setState(guildID, Streaming)
			alive = true
		})
		if startErr != nil {
			log.WithError(startErr).WithFields(log.Fields{"guild": guildID}).Error("failed to start track")
			e.notify.PlaybackError(textChannelID, startErr)
			return
		}
		if !alive {
			return
		}

		if first {
			first = false
			if msgID := e.notify.NowPlaying(textChannelID, track); msgID != "" && e.binder != nil {
				e.binder.Bind(guildID, textChannelID, msgID, track.Duration)
			}
		}

		if err := <-disp.Done(); err != nil {
			log.WithError(err).WithFields(log.Fields{"guild": guildID, "track": track.ID}).Error("playback error")
		}

		done := false
		e.store.Do(guildID, func() {
			q := e.store.Get(guildID)
			if q == nil {
				// Torn down by an explicit stop while we were streaming.
				done = true
				return
			}
			e.setState(guildID, Advancing)
			if len(q.Songs) > 0 {
				q.Songs = q.Songs[1:]
			}
			q.Dispatcher = nil
			if len(q.Songs) == 0 {
				e.destroyLocked(q)
				done = true
			}
		})
		if done {
			return
		}
	}
}

// destroyLocked releases the voice connection and removes the queue. The
// caller must hold the guild's serialization lock.
func (e *Engine) destroyLocked(q *queue.GuildQueue) {
	if q.CancelIngest != nil {
		q.CancelIngest()
	}
	if q.Connection != nil {
		q.Connection.Leave()
	}
	e.store.Remove(q.GuildID)
	e.setState(q.GuildID, Idle)
	if e.binder != nil {
		e.binder.Revoke(q.GuildID)
	}
	e.notify.PlayerDestroyed(q.TextChannelID)
}

// Pause suspends the current stream. Returns false if nothing is playing.
func (e *Engine) Pause(guildID string) bool {
	ok := false
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil || q.Dispatcher == nil || !q.Playing {
			return
		}
		q.Playing = false
		q.Dispatcher.Pause()
		e.setState(guildID, Paused)
		ok = true
	})
	return ok
}

// Resume restarts a paused stream. Returns false if nothing is paused.
func (e *Engine) Resume(guildID string) bool {
	ok := false
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil || q.Dispatcher == nil || q.Playing {
			return
		}
		q.Playing = true
		q.Dispatcher.Resume()
		e.setState(guildID, Streaming)
		ok = true
	})
	return ok
}

// Toggle flips between Streaming and Paused.
func (e *Engine) Toggle(guildID string) {
	if !e.Pause(guildID) {
		e.Resume(guildID)
	}
}

// Skip ends the current track early so the loop advances to the next one.
// It refuses when there is no next track, leaving the queue untouched.
func (e *Engine) Skip(guildID string) (queue.Track, bool) {
	var skipped queue.Track
	ok := false
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil || q.Dispatcher == nil || len(q.Songs) < 2 {
			return
		}
		skipped = q.Songs[0]
		if !q.Playing {
			// The transport cannot end a paused stream.
			q.Dispatcher.Resume()
			q.Playing = true
		}
		q.Dispatcher.End()
		ok = true
	})
	if ok && e.binder != nil {
		e.binder.Revoke(guildID)
	}
	return skipped, ok
}

// Stop clears the queue and ends the current stream; the playback loop then
// performs the teardown on its advance. Returns false if no session exists.
func (e *Engine) Stop(guildID string) bool {
	stopped := false
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil {
			return
		}
		stopped = true
		q.Songs = nil
		if q.CancelIngest != nil {
			q.CancelIngest()
		}
		if q.Dispatcher == nil {
			e.destroyLocked(q)
			return
		}
		if !q.Playing {
			// The transport cannot end a paused stream: resume, then end.
			q.Dispatcher.Resume()
			q.Playing = true
		}
		q.Dispatcher.End()
	})
	return stopped
}

// SetVolume stores the new volume and propagates it to the live stream if
// one exists. Returns the previous volume.
func (e *Engine) SetVolume(guildID string, v float64) (float64, bool) {
	var old float64
	ok := false
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil {
			return
		}
		old = q.Volume
		q.Volume = voice.ClampVolume(v)
		if q.Dispatcher != nil {
			q.Dispatcher.SetVolume(q.Volume)
		}
		ok = true
	})
	return old, ok
}

// VolumeDelta nudges the volume by delta, clamped to [0,1].
func (e *Engine) VolumeDelta(guildID string, delta float64) {
	e.store.Do(guildID, func() {
		q := e.store.Get(guildID)
		if q == nil {
			return
		}
		q.Volume = voice.ClampVolume(q.Volume + delta)
		if q.Dispatcher != nil {
			q.Dispatcher.SetVolume(q.Volume)
		}
	})
}

// StopAll tears down every live session; used during shutdown.
func (e *Engine) StopAll() {
	for _, guildID := range e.store.Guilds() {
		e.Stop(guildID)
	}
}
