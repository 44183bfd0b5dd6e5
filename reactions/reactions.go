// Package reactions binds emoji playback controls to now-playing messages
// and translates reaction events into engine operations.
package reactions

import (
	"sync"
	"time"

	"Muse/queue"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
)

const (
	toggleEmoji     = "⏯"
	skipEmoji       = "⏭"
	volumeDownEmoji = "🔈"
	volumeUpEmoji   = "🔊"
	stopEmoji       = "⏹"

	volumeStep = 0.1
)

var controlEmojis = []string{toggleEmoji, skipEmoji, volumeDownEmoji, volumeUpEmoji, stopEmoji}

// Controls is the subset of the playback engine the reaction panel drives.
type Controls interface {
	Toggle(guildID string)
	Skip(guildID string) (queue.Track, bool)
	VolumeDelta(guildID string, delta float64)
	Stop(guildID string) bool
}

// messenger wraps the Discord calls the panel makes, for testability.
type messenger interface {
	ReactionAdd(channelID, messageID, emoji string) error
	ReactionRemove(channelID, messageID, emoji, userID string) error
	ReactionsRemoveAll(channelID, messageID string) error
	UserVoiceChannel(guildID, userID string) string
}

type session struct {
	guildID   string
	channelID string
	messageID string
	timer     *time.Timer
}

// System tracks at most one live control panel per guild.
type System struct {
	store    *queue.Store
	controls Controls
	msgr     messenger

	mu        sync.Mutex
	byGuild   map[string]*session
	byMessage map[string]*session
}

func NewSystem(store *queue.Store, controls Controls, msgr messenger) *System {
	return &System{
		store:     store,
		controls:  controls,
		msgr:      msgr,
		byGuild:   make(map[string]*session),
		byMessage: make(map[string]*session),
	}
}

// Bind attaches the control emojis to a now-playing message. The panel stays
// live for the track's duration, or a configured fallback window when the
// duration is unknown. A new Bind supersedes the guild's previous panel.
func (s *System) Bind(guildID, channelID, messageID string, trackDuration time.Duration) {
	window := trackDuration
	if window <= 0 {
		window = viper.GetDuration("reaction.window")
	}

	sess := &session{guildID: guildID, channelID: channelID, messageID: messageID}
	sess.timer = time.AfterFunc(window, func() { s.expire(messageID) })

	s.mu.Lock()
	if old := s.byGuild[guildID]; old != nil {
		old.timer.Stop()
		delete(s.byMessage, old.messageID)
	}
	s.byGuild[guildID] = sess
	s.byMessage[messageID] = sess
	s.mu.Unlock()

	for _, emoji := range controlEmojis {
		if err := s.msgr.ReactionAdd(channelID, messageID, emoji); err != nil {
			log.WithError(err).WithFields(log.Fields{"guild": guildID}).Error("failed to add control reaction")
			return
		}
	}
}

// Revoke removes the guild's control panel, if any.
func (s *System) Revoke(guildID string) {
	s.mu.Lock()
	sess := s.byGuild[guildID]
	if sess != nil {
		sess.timer.Stop()
		delete(s.byGuild, guildID)
		delete(s.byMessage, sess.messageID)
	}
	s.mu.Unlock()
	if sess != nil {
		s.msgr.ReactionsRemoveAll(sess.channelID, sess.messageID)
	}
}

func (s *System) expire(messageID string) {
	s.mu.Lock()
	sess := s.byMessage[messageID]
	if sess != nil {
		delete(s.byGuild, sess.guildID)
		delete(s.byMessage, messageID)
	}
	s.mu.Unlock()
	if sess != nil {
		s.msgr.ReactionsRemoveAll(sess.channelID, sess.messageID)
	}
}

// HandleReaction processes one user reaction. Reactions from users outside
// the player's voice channel, and unknown emojis, are retracted without
// effect. Control reactions are retracted after acting so the panel can be
// used repeatedly.
func (s *System) HandleReaction(guildID, channelID, messageID, userID, emoji string) {
	s.mu.Lock()
	_, bound := s.byMessage[messageID]
	s.mu.Unlock()
	if !bound {
		return
	}

	defer s.msgr.ReactionRemove(channelID, messageID, emoji, userID)

	if !isControlEmoji(emoji) || !s.canReact(guildID, userID) {
		return
	}

	switch emoji {
	case toggleEmoji:
		s.controls.Toggle(guildID)
	case skipEmoji:
		s.controls.Skip(guildID)
	case volumeDownEmoji:
		s.controls.VolumeDelta(guildID, -volumeStep)
	case volumeUpEmoji:
		s.controls.VolumeDelta(guildID, volumeStep)
	case stopEmoji:
		s.controls.Stop(guildID)
	}
}

// canReact requires the reacting user to share the player's voice channel.
func (s *System) canReact(guildID, userID string) bool {
	userChannel := s.msgr.UserVoiceChannel(guildID, userID)
	if userChannel == "" {
		return false
	}
	ok := false
	s.store.Do(guildID, func() {
		q := s.store.Get(guildID)
		ok = q != nil && q.VoiceChannelID == userChannel
	})
	return ok
}

func isControlEmoji(emoji string) bool {
	for _, e := range controlEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}
