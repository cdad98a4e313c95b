package config

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PendingBackend selects where wizard state and finalization locks live.
type PendingBackend string

const (
	PendingMemory PendingBackend = "memory"
	PendingRedis  PendingBackend = "redis"
)

// ProposalsConfig holds proposal bot configuration
type ProposalsConfig struct {
	Base
	VotesRequired  int
	ReviewWindow   time.Duration
	PendingTTL     time.Duration
	PendingBackend PendingBackend
	Formats        []string
	Enabled        bool
}

// LoadProposalsConfig loads proposal bot configuration
func LoadProposalsConfig(db *gorm.DB) ProposalsConfig {
	base := LoadBase(db)

	backend := PendingBackend(strings.ToLower(GetSetting("proposals_pending_backend", "PROPOSALS_PENDING_BACKEND", string(PendingMemory))))
	if backend != PendingRedis {
		backend = PendingMemory
	}

	formats := splitList(GetSetting("proposals_formats", "PROPOSALS_FORMATS", "Whitepaper,Masterclass"))
	if len(formats) == 0 {
		formats = []string{"Whitepaper", "Masterclass"}
	}

	return ProposalsConfig{
		Base:           base,
		VotesRequired:  getIntSetting("proposals_votes_required", "PROPOSALS_VOTES_REQUIRED", 1),
		ReviewWindow:   time.Duration(getIntSetting("proposals_review_days", "PROPOSALS_REVIEW_DAYS", 5)) * 24 * time.Hour,
		PendingTTL:     time.Duration(getIntSetting("proposals_pending_ttl_minutes", "PROPOSALS_PENDING_TTL_MINUTES", 60)) * time.Minute,
		PendingBackend: backend,
		Formats:        formats,
		Enabled:        getBoolSetting("enable_proposals", "ENABLE_PROPOSALS", true),
	}
}

// APIConfig holds HTTP API configuration
type APIConfig struct {
	Port           string
	JWTSecret      string
	AllowedOrigins []string
	RateLimit      int
	Enabled        bool
}

// LoadAPIConfig loads HTTP API configuration. Call after LoadBase so the
// settings cache is populated.
func LoadAPIConfig(db *gorm.DB) APIConfig {
	return APIConfig{
		Port:           GetSetting("api_port", "API_PORT", "8080"),
		JWTSecret:      GetSetting("api_jwt_secret", "API_JWT_SECRET", ""),
		AllowedOrigins: splitList(GetSetting("api_allowed_origins", "API_ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimit:      getIntSetting("api_rate_limit_per_minute", "API_RATE_LIMIT_PER_MINUTE", 120),
		Enabled:        getBoolSetting("enable_api", "ENABLE_API", true),
	}
}
