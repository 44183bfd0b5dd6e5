package handlers

import (
	"Muse/commands"
	"Muse/reactions"

	"github.com/bwmarrin/discordgo"
)

// HandlerConfig handles configs for intents and handlers
func HandlerConfig(s *discordgo.Session, router *commands.Router, panel *reactions.System) {
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages
	s.AddHandler(MessageHandler(router))
	s.AddHandler(ReactionHandler(panel))
}
