package router

import (
	"github.com/vyborpervykh/estatebot/core/logger"
	tg "github.com/vyborpervykh/estatebot/core/telegram"
	"github.com/vyborpervykh/estatebot/core/telegram/middleware"
	"log/slog"
)

// CommandRoutes prepares slash-command handlers wrapped with shared
// middleware. Binding each command as its own endpoint lets the transport
// split off the deep-link payload before the handler runs.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		if def.Handler == nil {
			continue
		}
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
	)

	return routes
}
