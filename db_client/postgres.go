package db_client

import (
	"time"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GuildSettings holds per-guild preferences that survive restarts. The
// playback queue itself is deliberately in-memory only.
type GuildSettings struct {
	GuildID       string `gorm:"primaryKey"`
	DefaultVolume int
}

// Init connects to postgres and migrates the settings model. The bot runs
// without persistence when the database is unreachable.
func Init() {
	dsn := viper.GetString("postgres.dsn")
	if dsn == "" {
		log.Info("No postgres DSN configured, guild settings will not persist")
		return
	}

	var err error
	connected := false
	for attempt := 0; attempt < 10; attempt++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			if sqlDB, dbErr := DB.DB(); dbErr == nil && sqlDB.Ping() == nil {
				connected = true
				break
			}
		}
		log.Info("Waiting for Postgres to be ready...")
		time.Sleep(time.Second)
	}
	if !connected {
		log.WithError(err).Error("Unable to connect to database")
		DB = nil
		return
	}

	if err := DB.AutoMigrate(&GuildSettings{}); err != nil {
		log.WithError(err).Error("Unable to migrate guild settings")
	}
}

// DefaultVolume returns the guild's stored default volume (0-100), or 0 when
// no row exists or persistence is disabled.
func DefaultVolume(guildID string) int {
	if DB == nil {
		return 0
	}
	var s GuildSettings
	if err := DB.First(&s, "guild_id = ?", guildID).Error; err != nil {
		return 0
	}
	return s.DefaultVolume
}

// SaveDefaultVolume stores the guild's preferred volume (0-100).
func SaveDefaultVolume(guildID string, volume int) {
	if DB == nil {
		return
	}
	if err := DB.Save(&GuildSettings{GuildID: guildID, DefaultVolume: volume}).Error; err != nil {
		log.WithError(err).Error("Unable to save guild settings")
	}
}
