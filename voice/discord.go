package voice

import (
	"github.com/bwmarrin/discordgo"
)

// DiscordTransport streams audio over discordgo voice connections.
type DiscordTransport struct {
	s *discordgo.Session
}

func NewDiscordTransport(s *discordgo.Session) *DiscordTransport {
	return &DiscordTransport{s: s}
}

func (t *DiscordTransport) Join(guildID, channelID string) (Connection, error) {
	vc, err := t.s.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return &discordConnection{vc: vc}, nil
}

type discordConnection struct {
	vc *discordgo.VoiceConnection
}

func (c *discordConnection) ChannelID() string {
	return c.vc.ChannelID
}

func (c *discordConnection) Leave() error {
	return c.vc.Disconnect()
}

func (c *discordConnection) Play(input string, volume float64) (Dispatcher, error) {
	d := newStream(c.vc, input, volume)
	go d.run()
	return d, nil
}
