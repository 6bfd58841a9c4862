package config

import (
	"os"
	"strconv"
)

type RedisConfig struct {
	Addr       string
	Password   string
	TtlMinutes int
}

// GetRedisConfig returns nil without error when REDIS_ADDR is unset; the
// search cache is optional.
func GetRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	ttlMinutes := 60
	if raw := os.Getenv("REDIS_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			ttlMinutes = parsed
		}
	}

	return &RedisConfig{
		Addr:       addr,
		Password:   os.Getenv("REDIS_PASSWORD"),
		TtlMinutes: ttlMinutes,
	}, nil
}
