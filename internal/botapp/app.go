package botapp

import (
	"context"
	"fmt"
	"time"

	"github.com/vyborpervykh/estatebot/core/bootstrap"
	coreconfig "github.com/vyborpervykh/estatebot/core/config"
	"github.com/vyborpervykh/estatebot/core/logger"
	coretelegram "github.com/vyborpervykh/estatebot/core/telegram"
	"github.com/vyborpervykh/estatebot/core/telegram/commands"
	"github.com/vyborpervykh/estatebot/core/telegram/router"
	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/reports"

	"github.com/redis/go-redis/v9"
)

var _ router.Conversation = (*conversation)(nil)

// App wires the lead intake bot: sessions, client registry, dialog engine,
// and the staff report channel.
type App struct {
	cfg  *Config
	conv *conversation
}

// Bootstrap initializes logging, connects to Postgres, applies migrations,
// and assembles the application.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	sessions, err := buildSessions(&cfg.Core)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg}
	app.conv = &conversation{
		app:      app,
		sessions: sessions,
		store:    clients.NewPostgresStore(res.DB),
	}
	return app, nil
}

func buildSessions(cfg *coreconfig.Config) (state.Manager, error) {
	switch cfg.Session.Driver {
	case coreconfig.SessionDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("session redis ping failed: %w", err)
		}
		ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
		return state.NewRedisManager(client, ttl), nil
	default:
		return state.NewMemoryManager(), nil
	}
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.conv.HandleStart,
		Description: "Запустить бота / Главное меню",
	})

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes: append(
			router.CommandRoutes(reg),
			router.MessageRoutes(a.conv, reg)...,
		),
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.conv.notifier = reports.NewChatNotifier(rt.Bot, a.cfg.Agency.AgentChatID, reports.Renderer{
				HRTag: a.cfg.Agency.HRTag,
				IBTag: a.cfg.Agency.IBTag,
			})
			logger.TG.Info("agency bot ready",
				"event", "bot.ready",
				"agent_chat_id", a.cfg.Agency.AgentChatID,
				"session_driver", a.cfg.Core.Session.Driver,
			)
			return nil
		},
	}, nil
}
