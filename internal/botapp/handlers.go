package botapp

import (
	"context"
	"log/slog"

	"github.com/vyborpervykh/estatebot/core/logger"
	"github.com/vyborpervykh/estatebot/core/telegram/helpers"
	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/flow"
	"github.com/vyborpervykh/estatebot/internal/reports"

	tele "gopkg.in/telebot.v4"
)

// conversation drives the per-user dialog: it builds a flow.Turn from the
// incoming update, asks flow.Decide for the outcome, and applies it.
type conversation struct {
	app      *App
	sessions state.Manager
	store    clients.Store
	// notifier becomes available once the bot is connected.
	notifier reports.Notifier
}

func (cv *conversation) InProgress(userID int64) bool {
	return cv.sessions.InProgress(userID)
}

// HandleStart serves the /start command, including deep-link referrer
// payloads.
func (cv *conversation) HandleStart(c tele.Context) error {
	t := buildTurn(c)
	t.IsStart = true
	if m := c.Message(); m != nil {
		t.StartPayload = m.Payload
	}
	return cv.run(c, t)
}

// Handle serves every non-command update routed to the dialog engine.
func (cv *conversation) Handle(c tele.Context) error {
	return cv.run(c, buildTurn(c))
}

func buildTurn(c tele.Context) flow.Turn {
	t := flow.Turn{Text: c.Text()}
	if sender := c.Sender(); sender != nil {
		t.UserID = sender.ID
		t.Username = sender.Username
	}
	m := c.Message()
	if m == nil {
		return t
	}
	t.Caption = m.Caption
	if m.Photo != nil {
		t.PhotoID = m.Photo.FileID
	}
	if m.Document != nil {
		t.DocumentID = m.Document.FileID
	}
	if m.Contact != nil {
		t.ContactPhone = m.Contact.PhoneNumber
	}
	if m.Video != nil || m.VideoNote != nil || m.Audio != nil || m.Voice != nil || m.Sticker != nil || m.Animation != nil {
		t.OtherMedia = true
	}
	return t
}

func (cv *conversation) run(c tele.Context, t flow.Turn) error {
	ctx := helpers.BuildContext(c)

	st, data := cv.sessions.Get(t.UserID)

	profile, err := cv.store.Get(ctx, t.UserID)
	if err != nil {
		logger.Warn(ctx, "service.clients", "client.lookup_failed",
			slog.Int64("user_id", t.UserID),
			slog.String("err", err.Error()),
		)
		return cv.reply(c, []flow.Message{{Text: flow.TextTryLater}})
	}

	d := flow.Decide(t, st, data, profile)

	// A failed registry write aborts the turn before any report or session
	// change: the session stays where it was, so the user can retry.
	if d.Save != nil {
		if err := cv.store.Upsert(ctx, *d.Save); err != nil {
			logger.Warn(ctx, "service.clients", "client.save_failed",
				slog.Int64("user_id", t.UserID),
				slog.String("err", err.Error()),
			)
			return cv.reply(c, []flow.Message{{Text: flow.TextTryLater}})
		}
	}

	if d.SendCatalog {
		return cv.sendCatalog(ctx, c, d)
	}

	if d.Report != nil {
		if err := cv.notify(ctx, *d.Report); err != nil {
			d.Replies = []flow.Message{{Text: flow.TextSendFailed, Keyboard: flow.KeyboardMain}}
		}
	}

	cv.applySession(t.UserID, d)
	return cv.reply(c, d.Replies)
}

// sendCatalog delivers the catalog document to the user and reports the
// request to the staff chat. A report failure only logs: the user already
// has the catalog.
func (cv *conversation) sendCatalog(ctx context.Context, c tele.Context, d flow.Decision) error {
	if cv.app.cfg.Agency.CatalogFileID == "" {
		return helpers.SendText(c, flow.TextCatalogUnavailable)
	}
	doc := &tele.Document{
		File:    tele.File{FileID: cv.app.cfg.Agency.CatalogFileID},
		Caption: flow.TextCatalogCaption,
	}
	if err := c.Send(doc); err != nil {
		logger.Warn(ctx, "service.reports", "catalog.send_failed",
			slog.String("err", err.Error()),
		)
		return helpers.SendText(c, flow.TextCatalogUnavailable)
	}
	if d.Report != nil {
		_ = cv.notify(ctx, *d.Report)
	}
	return nil
}

func (cv *conversation) notify(ctx context.Context, rep reports.Report) error {
	if cv.notifier == nil {
		logger.Warn(ctx, "service.reports", "report.dropped",
			slog.String("kind", string(rep.Kind)),
		)
		return nil
	}
	return cv.notifier.Notify(ctx, rep)
}

func (cv *conversation) applySession(userID int64, d flow.Decision) {
	if d.Reset {
		cv.sessions.Clear(userID)
		if len(d.Patch) > 0 {
			cv.sessions.Apply(userID, state.StateIdle, d.Patch)
		}
		return
	}
	st := d.Next
	if st == "" {
		st = cv.sessions.GetState(userID)
	}
	if st == "" {
		st = state.StateIdle
	}
	if st == state.StateIdle && len(d.Patch) == 0 {
		return
	}
	cv.sessions.Apply(userID, st, d.Patch)
}

func (cv *conversation) reply(c tele.Context, msgs []flow.Message) error {
	for _, msg := range msgs {
		if msg.WelcomePhoto {
			delivered, err := cv.sendWelcomePhoto(c, msg)
			if err != nil {
				return err
			}
			if delivered {
				continue
			}
			// The degraded greeting already carries the main menu; the
			// follow-up menu hint would duplicate it.
			return nil
		}
		if err := cv.sendMessage(c, msg); err != nil {
			return err
		}
	}
	return nil
}

// sendWelcomePhoto tries the configured greeting photo with the message as
// its caption. On a missing or broken photo it degrades to a text greeting
// over the main menu and reports delivered=false.
func (cv *conversation) sendWelcomePhoto(c tele.Context, msg flow.Message) (bool, error) {
	if id := cv.app.cfg.Agency.WelcomePhotoID; id != "" {
		photo := &tele.Photo{
			File:    tele.File{FileID: id},
			Caption: msg.Text,
		}
		opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: cv.app.markupFor(msg.Keyboard)}
		if err := c.Send(photo, opts); err == nil {
			return true, nil
		}
	}
	return false, helpers.SendMD(c, msg.Text, mainMenu())
}

func (cv *conversation) sendMessage(c tele.Context, msg flow.Message) error {
	markup := cv.app.markupFor(msg.Keyboard)

	if msg.Markdown {
		if markup != nil {
			return helpers.SendMD(c, msg.Text, markup)
		}
		return helpers.SendMD(c, msg.Text)
	}
	if markup != nil {
		return helpers.SendText(c, msg.Text, &tele.SendOptions{ReplyMarkup: markup})
	}
	return helpers.SendText(c, msg.Text)
}
