package router

import (
	"time"

	tg "github.com/vyborpervykh/estatebot/core/telegram"
	"github.com/vyborpervykh/estatebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface for a per-user dialog engine.
// Handle receives every update that belongs to an ongoing or new dialog.
type Conversation interface {
	InProgress(userID int64) bool
	Handle(c tele.Context) error
}

// MessageRoutes builds handlers for text, contact, and media routing.
//
// Text updates go to the dialog engine when the user has an active
// conversation, otherwise registered commands are tried, then the dialog
// engine handles the update as a fresh (idle) turn. Contact and media
// updates always go to the dialog engine: whether they are expected depends
// on the conversation step.
func MessageRoutes(conv Conversation, reg *tg.Registry) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if conv != nil && conv.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "dialog", start, "", "", func() error {
				return conv.Handle(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if conv != nil {
			return handleWithSummary(c, "dialog_idle", start, "", "", func() error {
				return conv.Handle(c)
			})
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	mediaHandler := func(name string) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			if conv != nil {
				return handleWithSummary(c, name, start, "", "", func() error {
					return conv.Handle(c)
				})
			}
			logHandlerSummary(c, name, start, "skip", "ok", nil)
			return nil
		}
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
		{Endpoint: tele.OnContact, Handler: wrap(mediaHandler("dialog_contact"))},
		{Endpoint: tele.OnPhoto, Handler: wrap(mediaHandler("dialog_photo"))},
		{Endpoint: tele.OnDocument, Handler: wrap(mediaHandler("dialog_document"))},
		{Endpoint: tele.OnVideo, Handler: wrap(mediaHandler("dialog_video"))},
		{Endpoint: tele.OnSticker, Handler: wrap(mediaHandler("dialog_sticker"))},
		{Endpoint: tele.OnVoice, Handler: wrap(mediaHandler("dialog_voice"))},
	}
}
