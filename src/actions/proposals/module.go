package proposals

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/snowledge/proposals/src/actions/core"
	sharedconfig "github.com/snowledge/proposals/src/config"
	"github.com/snowledge/proposals/src/data/locks"
	"github.com/snowledge/proposals/src/data/pending"
	shareddiscord "github.com/snowledge/proposals/src/discord"
	"gorm.io/gorm"
)

var _ core.Module = (*Module)(nil)

const (
	eventTimeout = 30 * time.Second
	reapInterval = time.Minute
	redisLockTTL = 30 * time.Second
)

type Module struct {
	config  *sharedconfig.ProposalsConfig
	session *discordgo.Session
	handler *Handler
	reaper  *pending.MemoryStore

	runtimeCtx context.Context
	cancel     context.CancelFunc
}

// NewModule builds the proposals module. rdb is required for the redis pending
// backend and ignored otherwise.
func NewModule(cfg *sharedconfig.ProposalsConfig, db *gorm.DB, rdb *redis.Client) (*Module, error) {
	session, err := discordgo.New("Bot " + cfg.Base.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	module := &Module{config: cfg, session: session}

	var (
		store  pending.Store
		locker locks.Locker
	)
	switch cfg.PendingBackend {
	case sharedconfig.PendingRedis:
		if rdb == nil {
			return nil, fmt.Errorf("proposals: redis backend selected without a redis client")
		}
		store = pending.NewRedisStore(rdb, cfg.PendingTTL)
		locker = locks.NewRedisLocker(rdb, redisLockTTL)
	default:
		mem := pending.NewMemoryStore(cfg.PendingTTL)
		module.reaper = mem
		store = mem
		locker = locks.NewMemoryLocker()
	}

	gw := NewSessionGateway(session)
	module.handler = NewHandler(cfg, db, gw, store, NewFinalizer(db, gw, locker))

	module.initHandlers()
	return module, nil
}

// Name implements core.Module.
func (m *Module) Name() string { return "proposals" }

func (m *Module) initHandlers() {
	m.session.AddHandler(m.onReady)
	m.session.AddHandler(m.onInteractionCreate)
	m.session.AddHandler(m.onReactionAdd)
}

func (m *Module) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("proposals: logged in as %s", s.State.User.Username)

	guildIDs := []string{m.config.Base.GuildID}
	if m.config.Base.GuildID == "" {
		guildIDs = guildIDs[:0]
		for _, g := range r.Guilds {
			guildIDs = append(guildIDs, g.ID)
		}
	}
	for _, guildID := range guildIDs {
		if err := shareddiscord.RegisterSlashCommands(s, guildID, shareddiscord.CommandProposalsSetup); err != nil {
			log.Printf("proposals: failed to register slash commands in %s: %v", guildID, err)
		}
	}
}

func (m *Module) eventContext() (context.Context, context.CancelFunc) {
	parent := m.runtimeCtx
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, eventTimeout)
}

func recoverEvent(kind string) {
	if r := recover(); r != nil {
		log.Printf("proposals: panic handling %s: %v\n%s", kind, r, debug.Stack())
	}
}

func (m *Module) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer recoverEvent("interaction")

	ctx, cancel := m.eventContext()
	defer cancel()

	if err := m.handler.HandleInteraction(ctx, i.Interaction); err != nil {
		log.Printf("proposals: interaction %s failed: %v", i.ID, err)
	}
}

func (m *Module) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	defer recoverEvent("reaction")

	isBot := s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		isBot = true
	}

	ctx, cancel := m.eventContext()
	defer cancel()

	err := m.handler.HandleReaction(ctx, ReactionEvent{
		UserID:    r.UserID,
		IsBot:     isBot,
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Emoji:     r.Emoji.Name,
	})
	if err != nil {
		log.Printf("proposals: error: reaction on message %s failed: %v", r.MessageID, err)
	}
}

func (m *Module) Start(ctx context.Context) error {
	runtimeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.runtimeCtx = runtimeCtx

	if err := m.session.Open(); err != nil {
		cancel()
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if m.reaper != nil {
		go m.reaper.Run(runtimeCtx, reapInterval)
	}

	log.Printf("proposals: started (backend=%s votesRequired=%d)", m.config.PendingBackend, m.config.VotesRequired)
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	m.runtimeCtx = nil

	if m.session != nil {
		if err := m.session.Close(); err != nil {
			log.Printf("proposals: failed to close session: %v", err)
		}
	}
}
