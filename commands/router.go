// Package commands parses chat commands, runs their precondition checks and
// executes them against the playback engine.
package commands

import (
	"context"
	"strings"
	"time"

	"Muse/lyrics"
	"Muse/player"
	"Muse/queue"
)

// Context carries everything a command handler needs about the invoking
// message, resolved once by the message handler.
type Context struct {
	GuildID         string
	ChannelID       string
	AuthorID        string
	AuthorName      string
	AuthorAvatarURL string

	// VoiceChannelID is the author's current voice channel, or "".
	VoiceChannelID string
	// CanConnect reports whether the bot may connect and speak in that
	// voice channel.
	CanConnect bool

	Command string
	Args    []string
	DM      bool
}

// Resolver turns user input into playable tracks.
type Resolver interface {
	SearchOne(ctx context.Context, query string) (queue.Track, error)
	GetByURL(ctx context.Context, videoURL string) (queue.Track, error)
	ResolvePlaylist(ctx context.Context, ref string) (title string, urls []string, err error)
}

// LyricsSource fetches lyrics for a track title.
type LyricsSource interface {
	Fetch(ctx context.Context, title string) (lyrics.Result, error)
}

// Notifier renders command outcomes to the guild's text channel.
type Notifier interface {
	CommandError(channelID string, kind Kind)
	PlayerCreated(channelID string)
	TrackAdded(ctx *Context, track queue.Track, lucky bool)
	PlaylistAdded(ctx *Context, title string, count int)
	TrackSkipped(channelID string, track queue.Track)
	TrackRemoved(ctx *Context, track queue.Track)
	VolumeChanged(channelID string, from, to int)
	Paused(channelID string)
	Resumed(channelID string)
	NowPlayingStatus(channelID string, track queue.Track, position time.Duration, volume float64)
	QueueListing(channelID string, tracks []queue.Track)
	Searching(channelID string)
	Lyrics(ctx *Context, title, text string)
	Help(channelID string, entries []HelpEntry)
}

// HelpEntry is one row of the help panel.
type HelpEntry struct {
	Name    string
	Aliases []string
	Help    string
}

type checkFunc func(r *Router, ctx *Context) (Kind, bool)

type command struct {
	name    string
	aliases []string
	help    string
	checks  []checkFunc
	run     func(r *Router, ctx *Context)
}

// Router owns the command table and dispatches incoming commands.
type Router struct {
	store    *queue.Store
	engine   *player.Engine
	resolver Resolver
	lyrics   LyricsSource
	notify   Notifier

	table  []*command
	byName map[string]*command
}

func NewRouter(store *queue.Store, engine *player.Engine, resolver Resolver, lyr LyricsSource, notify Notifier) *Router {
	r := &Router{
		store:    store,
		engine:   engine,
		resolver: resolver,
		lyrics:   lyr,
		notify:   notify,
		byName:   make(map[string]*command),
	}
	r.table = []*command{
		{
			name:    "play",
			aliases: []string{"add", "join"},
			help:    "Play a song or playlist from YouTube, by URL or search term.",
			checks:  []checkFunc{requireVoice, requirePermissions, requireArgs},
			run:     (*Router).play,
		},
		{
			name:    "stop",
			aliases: []string{"kill", "destroy", "leave"},
			help:    "Stop the music and destroy the player.",
			checks:  []checkFunc{requireVoice, requireQueue, requireSameChannel},
			run:     (*Router).stop,
		},
		{
			name:    "skip",
			aliases: []string{"next"},
			help:    "Skip to the next song in the queue.",
			checks:  []checkFunc{requireVoice, requireQueue, requireSameChannel, requireNextTrack},
			run:     (*Router).skip,
		},
		{
			name:   "pause",
			help:   "Pause the current song.",
			checks: []checkFunc{requireVoice, requireQueue, requireSameChannel},
			run:    (*Router).pause,
		},
		{
			name:   "resume",
			help:   "Resume the paused song.",
			checks: []checkFunc{requireVoice, requireQueue, requireSameChannel},
			run:    (*Router).resume,
		},
		{
			name:    "volume",
			aliases: []string{"setvolume"},
			help:    "Set the player volume, between 0 and 100.",
			checks:  []checkFunc{requireVoice, requireArgs, requireQueue, requireSameChannel},
			run:     (*Router).volume,
		},
		{
			name:    "queue",
			aliases: []string{"list", "show"},
			help:    "Show the songs waiting in the queue.",
			checks:  []checkFunc{requireVoice, requireQueue, requireSameChannel, requireNextTrack},
			run:     (*Router).queueList,
		},
		{
			name:    "np",
			aliases: []string{"nowplaying", "current"},
			help:    "Show the song currently playing.",
			checks:  []checkFunc{requireVoice, requireQueue, requireSameChannel},
			run:     (*Router).nowPlaying,
		},
		{
			name:    "remove",
			aliases: []string{"delete"},
			help:    "Remove a song from the queue by its position.",
			checks:  []checkFunc{requireVoice, requireArgs, requireQueue, requireSameChannel, requireNextTrack},
			run:     (*Router).remove,
		},
		{
			name: "lyrics",
			help: "Fetch the lyrics of the current song, or of a given title.",
			run:  (*Router).lyricsCmd,
		},
		{
			name: "help",
			help: "Show this panel.",
			run:  (*Router).help,
		},
	}
	for _, cmd := range r.table {
		r.byName[cmd.name] = cmd
		for _, alias := range cmd.aliases {
			r.byName[alias] = cmd
		}
	}
	return r
}

// Dispatch runs the command named in ctx. Unknown commands are ignored,
// private messages are rejected, and precondition checks run in table order
// before the handler.
func (r *Router) Dispatch(ctx *Context) {
	if ctx.DM {
		r.notify.CommandError(ctx.ChannelID, PrivateMessageUnsupported)
		return
	}
	cmd, ok := r.byName[strings.ToLower(ctx.Command)]
	if !ok {
		return
	}
	for _, check := range cmd.checks {
		if kind, ok := check(r, ctx); !ok {
			r.notify.CommandError(ctx.ChannelID, kind)
			return
		}
	}
	cmd.run(r, ctx)
}

func requireVoice(r *Router, ctx *Context) (Kind, bool) {
	if ctx.VoiceChannelID == "" {
		return NoVoiceChannel, false
	}
	return 0, true
}

func requirePermissions(r *Router, ctx *Context) (Kind, bool) {
	if !ctx.CanConnect {
		return InsufficientPermission, false
	}
	return 0, true
}

func requireArgs(r *Router, ctx *Context) (Kind, bool) {
	if len(ctx.Args) == 0 {
		return MissingArgument, false
	}
	return 0, true
}

func requireQueue(r *Router, ctx *Context) (Kind, bool) {
	if r.store.Get(ctx.GuildID) == nil {
		return QueueEmpty, false
	}
	return 0, true
}

func requireSameChannel(r *Router, ctx *Context) (Kind, bool) {
	same := true
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q != nil && q.VoiceChannelID != ctx.VoiceChannelID {
			same = false
		}
	})
	if !same {
		return DifferentVoiceChannel, false
	}
	return 0, true
}

func requireNextTrack(r *Router, ctx *Context) (Kind, bool) {
	enough := false
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		enough = q != nil && len(q.Songs) >= 2
	})
	if !enough {
		return InsufficientQueueLength, false
	}
	return 0, true
}

func (r *Router) help(ctx *Context) {
	entries := make([]HelpEntry, 0, len(r.table))
	for _, cmd := range r.table {
		entries = append(entries, HelpEntry{Name: cmd.name, Aliases: cmd.aliases, Help: cmd.help})
	}
	r.notify.Help(ctx.ChannelID, entries)
}
