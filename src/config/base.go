package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/snowledge/proposals/src/data"
	"gorm.io/gorm"
)

// Base contains common configuration fields
type Base struct {
	Token    string
	GuildID  string
	MySQLDSN string
	RedisURL string
}

// LoadBase loads common configuration (discord token, guild ID, MySQL DSN, Redis URL)
func LoadBase(db *gorm.DB) Base {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("config: settings table unavailable, using environment: %v", err)
		}
	}

	dsn, err := data.GetMySQLDSN()
	if err != nil {
		log.Printf("config: %v", err)
	}

	return Base{
		Token:    GetSetting("discord_token", "DISCORD_TOKEN", ""),
		GuildID:  GetSetting("guild_id", "GUILD_ID", ""),
		MySQLDSN: dsn,
		RedisURL: GetSetting("redis_url", "REDIS_URL", "redis://127.0.0.1:6379/0"),
	}
}

// GetSetting retrieves a setting with env fallback
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" && envKey != "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}

func getBoolSetting(settingKey, envKey string, defaultValue bool) bool {
	if v := data.GetSetting(settingKey); v != "" {
		return parseBoolDefault(v, defaultValue)
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return parseBoolDefault(v, defaultValue)
		}
	}
	return defaultValue
}

// getIntSetting reads a positive integer; anything else yields defaultValue.
func getIntSetting(settingKey, envKey string, defaultValue int) int {
	raw := GetSetting(settingKey, envKey, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		log.Printf("config: ignoring invalid %s=%q", settingKey, raw)
		return defaultValue
	}
	return v
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
