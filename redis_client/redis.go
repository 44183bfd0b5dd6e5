package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var (
	RDB *redis.Client
	Ctx = context.Background()
)

// Init connects the shared client; call after config.InitConfig.
func Init() {
	RDB = redis.NewClient(&redis.Options{
		Addr: viper.GetString("redis.address"),
	})
}
