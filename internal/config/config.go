package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env         string
	Port        string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	RefLinkBase string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:     getIntEnv("REDIS_DB", 0),
		RefLinkBase: getEnv("REF_LINK_BASE", "https://t.me/STARSBIGWIN_BOT?start="),
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
