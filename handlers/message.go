package handlers

import (
	"strings"

	"Muse/commands"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// MessageHandler turns prefixed messages into command dispatches.
func MessageHandler(router *commands.Router) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
			return
		}
		prefix := viper.GetString("prefix")
		if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
			return
		}
		fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
		if len(fields) == 0 {
			return
		}
		ctx := buildContext(s, m, fields[0], fields[1:])
		go router.Dispatch(ctx)
	}
}

// buildContext resolves the author's voice state and the bot's permissions
// in that channel once, so command checks stay free of gateway lookups.
func buildContext(s *discordgo.Session, m *discordgo.MessageCreate, command string, args []string) *commands.Context {
	ctx := &commands.Context{
		GuildID:         m.GuildID,
		ChannelID:       m.ChannelID,
		AuthorID:        m.Author.ID,
		AuthorName:      m.Author.Username,
		AuthorAvatarURL: m.Author.AvatarURL("64"),
		Command:         command,
		Args:            args,
		DM:              m.GuildID == "",
	}
	if ctx.DM {
		return ctx
	}
	vs, err := s.State.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs == nil {
		return ctx
	}
	ctx.VoiceChannelID = vs.ChannelID
	const needed = discordgo.PermissionVoiceConnect | discordgo.PermissionVoiceSpeak
	perms, err := s.State.UserChannelPermissions(s.State.User.ID, vs.ChannelID)
	if err == nil && perms&needed == needed {
		ctx.CanConnect = true
	}
	return ctx
}
