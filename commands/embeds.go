package commands

import (
	"fmt"
	"strings"
	"time"

	"Muse/locale"
	"Muse/queue"
	"Muse/utils"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

const (
	errorColor = 0xE74C3C

	maxLyricsLength = 2048
	maxQueueEntries = 25
	progressBarSize = 20
)

// Announcer renders player and command events as Discord embeds.
type Announcer struct {
	s     *discordgo.Session
	msgs  *locale.Messages
	theme int
}

func NewAnnouncer(s *discordgo.Session, msgs *locale.Messages) *Announcer {
	return &Announcer{s: s, msgs: msgs, theme: viper.GetInt("theme")}
}

func (a *Announcer) send(channelID string, embed *discordgo.MessageEmbed) *discordgo.Message {
	msg, err := a.s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"channel": channelID}).Error("failed to send embed")
		return nil
	}
	return msg
}

func (a *Announcer) info(channelID, title, description string) {
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       a.theme,
	})
}

func (a *Announcer) CommandError(channelID string, kind Kind) {
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       a.msgs.ErrorTitle,
		Description: kind.Message(a.msgs),
		Color:       errorColor,
	})
}

func (a *Announcer) PlayerCreated(channelID string) {
	a.info(channelID, a.msgs.CreatedPlayerTitle, a.msgs.CreatedPlayerDescription)
}

func (a *Announcer) TrackAdded(ctx *Context, track queue.Track, lucky bool) {
	description := fmt.Sprintf("[%s](%s) %s", track.Title, track.URL, a.msgs.HasBeenAdded)
	if lucky {
		description += " " + a.msgs.LuckySearch
	}
	a.send(ctx.ChannelID, &discordgo.MessageEmbed{
		Description: description,
		Color:       a.theme,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL},
		Author: &discordgo.MessageEmbedAuthor{
			Name:    a.msgs.AddedBy + " " + ctx.AuthorName,
			IconURL: ctx.AuthorAvatarURL,
		},
	})
}

func (a *Announcer) PlaylistAdded(ctx *Context, title string, count int) {
	a.send(ctx.ChannelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s **%s** (%d) %s", a.msgs.PlaylistPrefix, title, count, a.msgs.PlaylistHasBeenAdded),
		Color:       a.theme,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    a.msgs.AddedBy + " " + ctx.AuthorName,
			IconURL: ctx.AuthorAvatarURL,
		},
	})
}

func (a *Announcer) TrackSkipped(channelID string, track queue.Track) {
	a.send(channelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("⏭ [%s](%s) %s.", track.Title, track.URL, a.msgs.BeenSkipped),
		Color:       a.theme,
	})
}

func (a *Announcer) TrackRemoved(ctx *Context, track queue.Track) {
	a.send(ctx.ChannelID, &discordgo.MessageEmbed{
		Title:       a.msgs.RemoveTitle,
		Description: fmt.Sprintf("[%s](%s)", track.Title, track.URL),
		Color:       a.theme,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL},
		Fields: []*discordgo.MessageEmbedField{
			{Name: a.msgs.Published, Value: track.Published, Inline: true},
			{Name: a.msgs.Views, Value: fmt.Sprintf("%d", track.Views), Inline: true},
		},
		Author: &discordgo.MessageEmbedAuthor{
			Name:    a.msgs.RemovedBy + " " + ctx.AuthorName,
			IconURL: ctx.AuthorAvatarURL,
		},
	})
}

func (a *Announcer) VolumeChanged(channelID string, from, to int) {
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       a.msgs.VolumeTitle,
		Description: fmt.Sprintf("%s `%d` %s `%d`", a.msgs.ChangedFrom, from, a.msgs.To, to),
		Color:       a.theme,
	})
}

func (a *Announcer) Paused(channelID string) {
	a.info(channelID, a.msgs.PauseTitle, a.msgs.PauseDescription)
}

func (a *Announcer) Resumed(channelID string) {
	a.info(channelID, a.msgs.ResumeTitle, a.msgs.ResumeDescription)
}

func (a *Announcer) NowPlayingStatus(channelID string, track queue.Track, position time.Duration, volume float64) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s](%s)\n\n", track.Title, track.URL)
	if track.Duration <= 0 {
		b.WriteString(a.msgs.Live)
	} else {
		b.WriteString(utils.ProgressBar(track.Duration, position, progressBarSize))
		fmt.Fprintf(&b, "\n`%s / %s`\n%s %s",
			utils.FormatDuration(position),
			utils.FormatDuration(track.Duration),
			a.msgs.RemainingTime,
			utils.FormatDuration(track.Duration-position))
	}
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       a.msgs.NowPlayingTitle + " 🎵",
		Description: b.String(),
		Color:       a.theme,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("🔊 %d%%", int(volume*100+0.5)),
		},
	})
}

func (a *Announcer) QueueListing(channelID string, tracks []queue.Track) {
	var b strings.Builder
	for i, track := range tracks {
		if i >= maxQueueEntries {
			fmt.Fprintf(&b, "… (%d)", len(tracks)-maxQueueEntries)
			break
		}
		marker := fmt.Sprintf("`%d.`", i)
		if i == 0 {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s [%s](%s)", marker, track.Title, track.URL)
		if track.Duration > 0 {
			fmt.Fprintf(&b, " `%s`", utils.FormatDuration(track.Duration))
		}
		b.WriteString("\n")
	}
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       "🎶 " + a.msgs.QueueTitle,
		Description: b.String(),
		Color:       a.theme,
	})
}

func (a *Announcer) Searching(channelID string) {
	a.info(channelID, "🎤", a.msgs.LyricsSearching)
}

func (a *Announcer) Lyrics(ctx *Context, title, text string) {
	if len(text) > maxLyricsLength {
		text = text[:maxLyricsLength]
	}
	a.send(ctx.ChannelID, &discordgo.MessageEmbed{
		Title:       "🎤 " + title,
		Description: text,
		Color:       a.theme,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    a.msgs.LyricsAskedBy + " " + ctx.AuthorName,
			IconURL: ctx.AuthorAvatarURL,
		},
	})
}

func (a *Announcer) Help(channelID string, entries []HelpEntry) {
	prefix := viper.GetString("prefix")
	fields := make([]*discordgo.MessageEmbedField, 0, len(entries))
	for _, e := range entries {
		name := prefix + e.Name
		if len(e.Aliases) > 0 {
			name += " (" + strings.Join(e.Aliases, ", ") + ")"
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: e.Help})
	}
	a.send(channelID, &discordgo.MessageEmbed{
		Title:  a.msgs.HelpTitle,
		Color:  a.theme,
		Fields: fields,
	})
}

// NowPlaying announces a fresh session's first track and returns the message
// ID so the reaction controls can bind to it.
func (a *Announcer) NowPlaying(channelID string, track queue.Track) string {
	duration := a.msgs.Live
	if track.Duration > 0 {
		duration = utils.FormatDuration(track.Duration)
	}
	msg := a.send(channelID, &discordgo.MessageEmbed{
		Title:       a.msgs.NowPlayingTitle + " 🎵",
		Description: fmt.Sprintf("[%s](%s)", track.Title, track.URL),
		Color:       a.theme,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL},
		Fields: []*discordgo.MessageEmbedField{
			{Name: a.msgs.VideoLink, Value: fmt.Sprintf("[%s](%s)", track.Title, track.URL), Inline: true},
			{Name: a.msgs.ChannelLink, Value: fmt.Sprintf("[%s](%s)", track.Author, track.AuthorURL), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: duration},
	})
	if msg == nil {
		return ""
	}
	return msg.ID
}

func (a *Announcer) PlayerDestroyed(channelID string) {
	a.info(channelID, a.msgs.DestroyedPlayerTitle, a.msgs.DestroyedPlayerDescription)
}

func (a *Announcer) PlaybackError(channelID string, err error) {
	log.WithError(err).Error("playback failed")
	a.send(channelID, &discordgo.MessageEmbed{
		Title:       a.msgs.ErrorTitle,
		Description: a.msgs.ErrorWhileParsingVideo,
		Color:       errorColor,
	})
}
