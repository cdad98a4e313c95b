package actions

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	proposalsmodule "github.com/snowledge/proposals/src/actions/proposals"
	"github.com/snowledge/proposals/src/api/webserver"
	sharedconfig "github.com/snowledge/proposals/src/config"
	shareddata "github.com/snowledge/proposals/src/data"
	"gorm.io/gorm"
)

// StartAll wires up enabled action modules and starts the manager.
func StartAll(ctx context.Context, db *gorm.DB) (*Manager, error) {
	mgr := NewManager()

	proposalsCfg := sharedconfig.LoadProposalsConfig(db)
	log.Printf("actions: proposals module config - Enabled: %v, Backend: %s, VotesRequired: %d",
		proposalsCfg.Enabled, proposalsCfg.PendingBackend, proposalsCfg.VotesRequired)
	if proposalsCfg.Enabled {
		if proposalsCfg.Base.Token == "" {
			return nil, fmt.Errorf("actions: proposals module enabled but discord_token is not set")
		}

		var rdb *redis.Client
		if proposalsCfg.PendingBackend == sharedconfig.PendingRedis {
			client, err := shareddata.ConnectRedis(ctx, proposalsCfg.Base.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("actions: proposals redis backend: %w", err)
			}
			rdb = client
		}

		mod, err := proposalsmodule.NewModule(&proposalsCfg, db, rdb)
		if err != nil {
			return nil, fmt.Errorf("actions: init proposals module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add proposals module: %w", err)
		}
	} else {
		log.Printf("actions: proposals module disabled via configuration")
	}

	apiCfg := sharedconfig.LoadAPIConfig(db)
	if apiCfg.Enabled {
		if apiCfg.JWTSecret == "" {
			log.Printf("actions: api_jwt_secret not set, admin routes disabled")
		}
		if err := mgr.Add(webserver.NewModule(apiCfg, db)); err != nil {
			return nil, fmt.Errorf("actions: add api module: %w", err)
		}
	} else {
		log.Printf("actions: API module disabled via configuration")
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	log.Printf("actions: running modules %v", mgr.Names())

	return mgr, nil
}
