package bot

import (
	"context"
	"database/sql"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nvara/voicebox/config"
	"github.com/nvara/voicebox/internal/database"
	"github.com/nvara/voicebox/internal/features"
	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/redis"
	"github.com/nvara/voicebox/internal/search"
	"github.com/nvara/voicebox/internal/telegram"
	"github.com/nvara/voicebox/internal/voice"
)

const (
	bridgeConnectAttempts = 15
	dispatchTimeout       = 2 * time.Minute
)

// Bot owns every long-lived component and the update loop. Postgres and
// Redis are optional: a failed init is a warning, the bot degrades to
// re-sent panels and uncached search.
type Bot struct {
	cfg *config.Config
	log *zap.Logger

	tg       *telegram.Client
	bridge   *voice.Bridge
	handlers *features.Handlers
	orch     *player.Orchestrator

	db    *sql.DB
	redis *redislib.Client

	cancel context.CancelFunc
}

func New(cfg *config.Config, log *zap.Logger) (*Bot, error) {
	var db *sql.DB
	if cfg.HasDatabase() {
		dbConfig := &database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}

		handle, err := database.Open(dbConfig, log)
		if err != nil {
			log.Warn("database initialization failed, panels will not persist", zap.Error(err))
		} else {
			db = handle
		}
	}

	var redisClient *redislib.Client
	if cfg.HasRedis() {
		client, err := redis.Connect(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log)
		if err != nil {
			log.Warn("redis initialization failed, search results will not be cached", zap.Error(err))
		} else {
			redisClient = client
		}
	}

	tg := telegram.NewClient(cfg.BotToken, log)
	bridge := voice.NewBridge(cfg.VoiceBridgeURL, time.Duration(cfg.VoiceBridgeTimeout)*time.Second, log)

	registry := player.NewRegistry()
	panels := database.NewPanelRepository(db)
	notify := &announcer{tg: tg, panels: panels, log: log}
	orch := player.NewOrchestrator(registry, bridge, notify, cfg.MaxQueueSize, log)

	searchClient := search.NewYouTubeClient(cfg.YouTubeAPIKey, redisClient, log)
	handlers := features.New(tg, orch, registry, searchClient, panels, log)

	return &Bot{
		cfg:      cfg,
		log:      log,
		tg:       tg,
		bridge:   bridge,
		handlers: handlers,
		orch:     orch,
		db:       db,
		redis:    redisClient,
	}, nil
}

// Start connects the voice bridge and begins long-polling for updates.
// It blocks until the poll loop exits.
func (b *Bot) Start() error {
	b.bridge.OnStreamEnded(b.orch.OnStreamEnded)
	if err := b.bridge.Connect(bridgeConnectAttempts); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.pollLoop(ctx)
	})

	b.log.Info("bot running")
	return g.Wait()
}

func (b *Bot) pollLoop(ctx context.Context) error {
	var offset int64

	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := b.tg.GetUpdates(ctx, offset, b.cfg.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Warn("getUpdates failed, backing off", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(2 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}

			// Updates run concurrently: per-conversation locks already
			// serialize same-chat work, and one slow transport call must
			// not stall every other conversation.
			go func(upd telegram.Update) {
				dispatchCtx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
				defer cancel()
				b.handlers.Dispatch(dispatchCtx, upd)
			}(upd)
		}
	}
}

func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}

	if err := b.bridge.Close(); err != nil {
		b.log.Warn("failed to close voice bridge", zap.Error(err))
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			b.log.Warn("failed to close database", zap.Error(err))
		}
	}

	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			b.log.Warn("failed to close redis", zap.Error(err))
		}
	}

	b.log.Info("bot stopped")
	return nil
}
