package commands

import (
	"context"
	"strconv"
	"strings"
	"time"

	"Muse/db_client"
	"Muse/queue"
)

func (r *Router) stop(ctx *Context) {
	// The playback loop announces the destroyed player on teardown.
	r.engine.Stop(ctx.GuildID)
}

func (r *Router) skip(ctx *Context) {
	track, ok := r.engine.Skip(ctx.GuildID)
	if !ok {
		r.notify.CommandError(ctx.ChannelID, InsufficientQueueLength)
		return
	}
	r.notify.TrackSkipped(ctx.ChannelID, track)
}

func (r *Router) pause(ctx *Context) {
	if !r.engine.Pause(ctx.GuildID) {
		r.notify.CommandError(ctx.ChannelID, QueueEmpty)
		return
	}
	r.notify.Paused(ctx.ChannelID)
}

func (r *Router) resume(ctx *Context) {
	if !r.engine.Resume(ctx.GuildID) {
		r.notify.CommandError(ctx.ChannelID, QueueEmpty)
		return
	}
	r.notify.Resumed(ctx.ChannelID)
}

func (r *Router) volume(ctx *Context) {
	n, err := strconv.Atoi(ctx.Args[0])
	if err != nil || n < 0 || n > 100 {
		r.notify.CommandError(ctx.ChannelID, VolumeOutOfRange)
		return
	}
	old, ok := r.engine.SetVolume(ctx.GuildID, float64(n)/100)
	if !ok {
		r.notify.CommandError(ctx.ChannelID, QueueEmpty)
		return
	}
	db_client.SaveDefaultVolume(ctx.GuildID, n)
	r.notify.VolumeChanged(ctx.ChannelID, int(old*100+0.5), n)
}

func (r *Router) remove(ctx *Context) {
	i, err := strconv.Atoi(ctx.Args[0])
	if err != nil || i < 1 {
		r.notify.CommandError(ctx.ChannelID, InvalidIndex)
		return
	}
	var removed queue.Track
	ok := false
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			return
		}
		removed, ok = q.RemoveAt(i)
	})
	if !ok {
		r.notify.CommandError(ctx.ChannelID, InvalidIndex)
		return
	}
	r.notify.TrackRemoved(ctx, removed)
}

func (r *Router) nowPlaying(ctx *Context) {
	var (
		track    queue.Track
		position time.Duration
		volume   float64
		ok       bool
	)
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			return
		}
		track, ok = q.Head()
		volume = q.Volume
		if q.Dispatcher != nil {
			position = q.Dispatcher.Position()
		}
	})
	if !ok {
		r.notify.CommandError(ctx.ChannelID, QueueEmpty)
		return
	}
	r.notify.NowPlayingStatus(ctx.ChannelID, track, position, volume)
}

func (r *Router) queueList(ctx *Context) {
	var tracks []queue.Track
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			return
		}
		tracks = append(tracks, q.Songs...)
	})
	if len(tracks) == 0 {
		r.notify.CommandError(ctx.ChannelID, QueueEmpty)
		return
	}
	r.notify.QueueListing(ctx.ChannelID, tracks)
}

// lyricsCmd looks up the current track's lyrics, or a named title when
// nothing is playing.
func (r *Router) lyricsCmd(ctx *Context) {
	var title string
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			return
		}
		if head, ok := q.Head(); ok {
			title = head.Title
		}
	})
	if title == "" {
		title = strings.Join(ctx.Args, " ")
	}
	if title == "" {
		r.notify.CommandError(ctx.ChannelID, MissingArgument)
		return
	}

	r.notify.Searching(ctx.ChannelID)
	fetchCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := r.lyrics.Fetch(fetchCtx, title)
	if err != nil {
		r.notify.CommandError(ctx.ChannelID, LyricsNotFound)
		return
	}
	r.notify.Lyrics(ctx, result.Title, result.Lyrics)
}
