package commands

import "Muse/locale"

// Kind identifies a user-facing command failure. Every Kind maps to a
// localized message; handlers never send raw error strings to Discord.
type Kind int

const (
	NoVoiceChannel Kind = iota
	InsufficientPermission
	MissingArgument
	QueueEmpty
	InsufficientQueueLength
	DifferentVoiceChannel
	VolumeOutOfRange
	InvalidIndex
	TrackNotFound
	TrackRestricted
	CannotJoinVoice
	PlaylistParseError
	PlaylistItemParseError
	LyricsNotFound
	PrivateMessageUnsupported
)

// Message returns the localized text for the failure.
func (k Kind) Message(m *locale.Messages) string {
	switch k {
	case NoVoiceChannel:
		return m.VoiceChannelNeeded
	case InsufficientPermission, CannotJoinVoice:
		return m.CannotConnect
	case MissingArgument:
		return m.NoArgs
	case QueueEmpty:
		return m.NothingPlaying
	case InsufficientQueueLength:
		return m.NoMoreSongs
	case DifferentVoiceChannel:
		return m.SameVoiceChannel
	case VolumeOutOfRange:
		return m.VolumeBetween
	case InvalidIndex:
		return m.ValidNumberPosition
	case TrackNotFound, LyricsNotFound:
		return m.CouldNotBeFound
	case TrackRestricted:
		return m.RestrictedOrNotFound
	case PlaylistParseError:
		return m.ErrorWhileParsingPlaylist
	case PlaylistItemParseError:
		return m.ErrorWhileParsingVideo
	case PrivateMessageUnsupported:
		return m.NoPrivateMessages
	default:
		return m.ErrorWhileParsingVideo
	}
}
