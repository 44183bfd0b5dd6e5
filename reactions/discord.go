package reactions

import (
	"Muse/queue"

	"github.com/bwmarrin/discordgo"
)

type discordMessenger struct {
	s *discordgo.Session
}

// New builds a reaction System backed by a live Discord session.
func New(s *discordgo.Session, store *queue.Store, controls Controls) *System {
	return NewSystem(store, controls, discordMessenger{s: s})
}

func (d discordMessenger) ReactionAdd(channelID, messageID, emoji string) error {
	return d.s.MessageReactionAdd(channelID, messageID, emoji)
}

func (d discordMessenger) ReactionRemove(channelID, messageID, emoji, userID string) error {
	return d.s.MessageReactionRemove(channelID, messageID, emoji, userID)
}

func (d discordMessenger) ReactionsRemoveAll(channelID, messageID string) error {
	return d.s.MessageReactionsRemoveAll(channelID, messageID)
}

func (d discordMessenger) UserVoiceChannel(guildID, userID string) string {
	vs, err := d.s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}
