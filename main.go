package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Muse/commands"
	"Muse/config"
	"Muse/db_client"
	"Muse/handlers"
	"Muse/locale"
	"Muse/lyrics"
	"Muse/player"
	"Muse/queue"
	"Muse/reactions"
	"Muse/redis_client"
	"Muse/voice"
	"Muse/yt"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

var production *bool

func main() {
	production = flag.Bool("p", false, "enables production with json logging")
	flag.Parse()
	if *production {
		log.InitJSONLogger(&log.Config{Output: os.Stdout})
	} else {
		log.InitSimpleLogger(&log.Config{Output: os.Stdout})
	}

	config.InitConfig()
	redis_client.Init()
	db_client.Init()

	msgs := locale.Load(viper.GetString("locale"))

	s, err := discordgo.New("Bot " + viper.GetString("discord.token"))
	if err != nil {
		log.WithError(err).Error("Failed to create Discord session")
		return
	}

	store := queue.NewStore()
	resolver := yt.NewClient(redis_client.RDB)
	announcer := commands.NewAnnouncer(s, msgs)
	engine := player.New(store, voice.NewDiscordTransport(s), resolver, announcer)
	panel := reactions.New(s, store, engine)
	engine.BindReactions(panel)
	router := commands.NewRouter(store, engine, resolver, lyrics.NewClient(), announcer)

	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Bot has registered handlers")
	})
	handlers.HandlerConfig(s, router, panel)

	if err := s.Open(); err != nil {
		log.WithError(err).Error("Failed to open Discord session")
		return
	}
	log.Info("Bot is initialising")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
	gracefulShutdown(s, engine)
}

// gracefulShutdown tears down every live player before closing the gateway.
func gracefulShutdown(s *discordgo.Session, engine *player.Engine) {
	log.Info("Starting graceful shutdown...")

	engine.StopAll()

	for _, vc := range s.VoiceConnections {
		if vc != nil {
			vc.Disconnect()
		}
	}

	time.Sleep(time.Second)

	s.Close()

	log.Info("Cleanly exiting")
}
