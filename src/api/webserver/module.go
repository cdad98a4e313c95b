package webserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/snowledge/proposals/src/actions/core"
	sharedconfig "github.com/snowledge/proposals/src/config"
	"gorm.io/gorm"
)

var _ core.Module = (*Module)(nil)

// Module serves the HTTP API alongside the bot.
type Module struct {
	cfg    sharedconfig.APIConfig
	db     *gorm.DB
	srv    *http.Server
	cancel context.CancelFunc
}

func NewModule(cfg sharedconfig.APIConfig, db *gorm.DB) *Module {
	return &Module{cfg: cfg, db: db}
}

// Name implements core.Module.
func (m *Module) Name() string { return "api" }

func (m *Module) Start(ctx context.Context) error {
	runtimeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	ln, err := net.Listen("tcp", ":"+m.cfg.Port)
	if err != nil {
		cancel()
		return fmt.Errorf("api: listen on %s: %w", m.cfg.Port, err)
	}

	m.srv = &http.Server{
		Handler:           New(runtimeCtx, m.cfg, m.db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("api: server stopped: %v", err)
		}
	}()
	log.Printf("api: listening on %s", ln.Addr())
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	if m.srv == nil {
		return
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(shutCtx); err != nil {
		log.Printf("api: shutdown: %v", err)
	}
}
