package commands

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"Muse/db_client"
	"Muse/queue"
	"Muse/voice"
	"Muse/yt"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
)

var (
	playlistRe = regexp.MustCompile(`(?i)[?&]list=([^#&?]+)`)
	videoRe    = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(m\.)?(youtube\.com|youtu\.be)/.+$`)
)

// play classifies its argument and routes it. A playlist reference wins over
// a plain video URL so that a watch URL carrying a list parameter enqueues
// the whole playlist exactly once.
func (r *Router) play(ctx *Context) {
	query := strings.Join(ctx.Args, " ")
	switch {
	case playlistRe.MatchString(query):
		r.playPlaylist(ctx, query)
	case videoRe.MatchString(query):
		r.playURL(ctx, query)
	default:
		r.playQuery(ctx, query)
	}
}

func (r *Router) playQuery(ctx *Context, query string) {
	track, err := r.resolver.SearchOne(context.Background(), query)
	if err != nil {
		if errors.Is(err, yt.ErrUnavailable) {
			r.notify.CommandError(ctx.ChannelID, TrackRestricted)
			return
		}
		r.notify.CommandError(ctx.ChannelID, TrackNotFound)
		return
	}
	if created, ok := r.attach(ctx, track, nil); ok && !created {
		r.notify.TrackAdded(ctx, track, true)
	}
}

func (r *Router) playURL(ctx *Context, videoURL string) {
	track, err := r.resolver.GetByURL(context.Background(), videoURL)
	if err != nil {
		r.notify.CommandError(ctx.ChannelID, TrackRestricted)
		return
	}
	if created, ok := r.attach(ctx, track, nil); ok && !created {
		r.notify.TrackAdded(ctx, track, false)
	}
}

// playPlaylist resolves the playlist's first playable item synchronously so
// the session can start straight away, then ingests the rest in the
// background. Stop cancels the ingestion through the queue's CancelIngest.
func (r *Router) playPlaylist(ctx *Context, ref string) {
	ictx, cancel := context.WithCancel(context.Background())
	title, urls, err := r.resolver.ResolvePlaylist(ictx, ref)
	if err != nil || len(urls) == 0 {
		cancel()
		r.notify.CommandError(ctx.ChannelID, PlaylistParseError)
		return
	}

	var first queue.Track
	found := false
	rest := urls
	for len(rest) > 0 {
		track, err := r.resolver.GetByURL(ictx, rest[0])
		rest = rest[1:]
		if err != nil {
			r.notify.CommandError(ctx.ChannelID, PlaylistItemParseError)
			continue
		}
		first = track
		found = true
		break
	}
	if !found {
		cancel()
		r.notify.CommandError(ctx.ChannelID, PlaylistParseError)
		return
	}

	if _, ok := r.attach(ctx, first, cancel); !ok {
		cancel()
		return
	}
	r.notify.PlaylistAdded(ctx, title, len(urls))
	if len(rest) == 0 {
		cancel()
		return
	}
	go r.ingestRest(ictx, cancel, ctx, rest)
}

// ingestRest resolves the remaining playlist items with bounded concurrency,
// preserving playlist order, and appends the successes in one batch.
func (r *Router) ingestRest(ictx context.Context, cancel context.CancelFunc, ctx *Context, urls []string) {
	defer cancel()

	concurrency := viper.GetInt("playlist.concurrency")
	if concurrency <= 0 {
		concurrency = 4
	}
	sem := make(chan struct{}, concurrency)
	results := make([]*queue.Track, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		i, u := i, u
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ictx.Done():
				return
			}
			defer func() { <-sem }()
			track, err := r.resolver.GetByURL(ictx, u)
			if err != nil {
				if ictx.Err() == nil {
					r.notify.CommandError(ctx.ChannelID, PlaylistItemParseError)
				}
				return
			}
			results[i] = &track
		}()
	}
	wg.Wait()
	if ictx.Err() != nil {
		return
	}

	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			return
		}
		for _, track := range results {
			if track != nil {
				q.Songs = append(q.Songs, *track)
			}
		}
		q.CancelIngest = nil
	})
}

// attach enqueues the track, creating the playback session when the guild
// has none. Appending to an existing session requires the sender to share
// its voice channel; only the initial join is exempt from that check. A
// voice join failure is announced here.
func (r *Router) attach(ctx *Context, track queue.Track, cancelIngest context.CancelFunc) (created, ok bool) {
	otherChannel := false
	r.store.Do(ctx.GuildID, func() {
		q := r.store.Get(ctx.GuildID)
		if q == nil {
			q = r.newQueue(ctx)
			q.Songs = []queue.Track{track}
			q.CancelIngest = cancelIngest
			if err := r.store.Create(ctx.GuildID, q); err != nil {
				return
			}
			if err := r.engine.StartSession(q); err != nil {
				log.WithError(err).WithFields(log.Fields{"guild": ctx.GuildID}).Error("failed to join voice channel")
				r.store.Remove(ctx.GuildID)
				return
			}
			created, ok = true, true
			return
		}
		if q.VoiceChannelID != ctx.VoiceChannelID {
			otherChannel = true
			return
		}
		q.Songs = append(q.Songs, track)
		if cancelIngest != nil {
			q.CancelIngest = cancelIngest
		}
		ok = true
	})
	if otherChannel {
		r.notify.CommandError(ctx.ChannelID, DifferentVoiceChannel)
		return false, false
	}
	if !ok {
		r.notify.CommandError(ctx.ChannelID, CannotJoinVoice)
		return created, ok
	}
	if created {
		r.notify.PlayerCreated(ctx.ChannelID)
	}
	return created, ok
}

func (r *Router) newQueue(ctx *Context) *queue.GuildQueue {
	vol := db_client.DefaultVolume(ctx.GuildID)
	if vol <= 0 {
		vol = viper.GetInt("volume.default")
	}
	return &queue.GuildQueue{
		GuildID:        ctx.GuildID,
		TextChannelID:  ctx.ChannelID,
		VoiceChannelID: ctx.VoiceChannelID,
		Volume:         voice.ClampVolume(float64(vol) / 100),
		Playing:        true,
	}
}
