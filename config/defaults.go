package config

import (
	"os"

	"github.com/spf13/viper"
)

func initDefaults() {
	viper.SetDefault("discord.token", os.Getenv("discord_token"))
	viper.SetDefault("youtube.api.key", os.Getenv("youtube_api_key"))
	viper.SetDefault("prefix", "!")
	viper.SetDefault("locale", "en")
	viper.SetDefault("theme", 0x9B59B6)
	viper.SetDefault("volume.default", 50)
	viper.SetDefault("reaction.window", "10m")
	viper.SetDefault("playlist.concurrency", 4)
	viper.SetDefault("cache.youtube", 3600)
	viper.SetDefault("redis.address", os.Getenv("redis_address"))
	viper.SetDefault("postgres.dsn", os.Getenv("postgres_dsn"))
	viper.SetDefault("lyrics.api", "https://some-random-api.ml/lyrics")
}
