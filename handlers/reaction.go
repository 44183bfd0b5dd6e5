package handlers

import (
	"Muse/reactions"

	"github.com/bwmarrin/discordgo"
)

// ReactionHandler forwards guild reactions to the control panel.
func ReactionHandler(panel *reactions.System) func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.GuildID == "" {
			return
		}
		if s.State.User != nil && r.UserID == s.State.User.ID {
			return
		}
		go panel.HandleReaction(r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji.Name)
	}
}
