package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sharedconfig "github.com/snowledge/proposals/src/config"
	"gorm.io/gorm"
)

// New builds the API engine. Admin routes are only mounted when a JWT secret is
// configured.
func New(ctx context.Context, cfg sharedconfig.APIConfig, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	attachRoutes(ctx, r, cfg, db)
	return r
}

func attachRoutes(ctx context.Context, r *gin.Engine, cfg sharedconfig.APIConfig, db *gorm.DB) {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "err": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := NewRateLimiter(ctx, cfg.RateLimit, time.Minute)
	proposalsH := NewProposals(db)

	v1 := r.Group("/v1")
	v1.Use(RateLimitMiddleware(limiter))
	{
		v1.GET("/communities/:slug/proposals", proposalsH.List)
		v1.GET("/proposals/:id", proposalsH.Get)
	}

	if cfg.JWTSecret == "" {
		return
	}

	admin := v1.Group("/admin")
	admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
	{
		adminH := NewAdmin(db)
		admin.PUT("/discord/:guild/channels", adminH.SetDiscordChannels)
	}
}
