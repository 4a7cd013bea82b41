package reports

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/vyborpervykh/estatebot/core/logger"
	"log/slog"
)

// maxAlbumPhotos is the Telegram media group limit; extra photos are dropped.
const maxAlbumPhotos = 10

// API is the subset of the Telegram bot used to deliver reports.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	SendAlbum(to tele.Recipient, a tele.Album, opts ...interface{}) ([]tele.Message, error)
}

type chatNotifier struct {
	bot      API
	chat     tele.ChatID
	renderer Renderer
}

// NewChatNotifier constructs a Notifier delivering reports to a single
// staff chat.
func NewChatNotifier(bot API, chatID int64, renderer Renderer) Notifier {
	return &chatNotifier{
		bot:      bot,
		chat:     tele.ChatID(chatID),
		renderer: renderer,
	}
}

// Notify renders the report and sends it synchronously: the caller decides
// what to tell the user when delivery fails.
func (n *chatNotifier) Notify(ctx context.Context, r Report) error {
	start := time.Now()
	text, markdown := n.renderer.Render(r)
	if text == "" {
		return fmt.Errorf("reports: unknown report kind %q", r.Kind)
	}

	var opts []interface{}
	if markdown {
		opts = append(opts, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	}

	var err error
	switch {
	case len(r.Photos) > 1:
		_, err = n.bot.SendAlbum(n.chat, BuildAlbum(r.Photos, text), opts...)
	case len(r.Photos) == 1:
		_, err = n.bot.Send(n.chat, &tele.Photo{File: tele.File{FileID: r.Photos[0]}, Caption: text}, opts...)
	case r.PhotoID != "":
		_, err = n.bot.Send(n.chat, &tele.Photo{File: tele.File{FileID: r.PhotoID}, Caption: text}, opts...)
	case r.DocumentID != "":
		_, err = n.bot.Send(n.chat, &tele.Document{File: tele.File{FileID: r.DocumentID}, Caption: text}, opts...)
	default:
		_, err = n.bot.Send(n.chat, text, opts...)
	}

	if err != nil {
		logger.LogEvent(ctx, logger.SVCReports, slog.LevelError, "report.send",
			slog.String("status", "fail"),
			slog.String("report", string(r.Kind)),
			slog.Int64("user_id", r.Client.TelegramID),
			slog.Int("photos", len(r.Photos)),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("send %s report: %w", r.Kind, err)
	}

	logger.LogEvent(ctx, logger.SVCReports, slog.LevelInfo, "report.send",
		slog.String("status", "ok"),
		slog.String("report", string(r.Kind)),
		slog.Int64("user_id", r.Client.TelegramID),
		slog.Int("photos", len(r.Photos)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// BuildAlbum assembles a media group from photo file IDs with the caption
// on the first item, truncated to the Telegram album limit.
func BuildAlbum(photos []string, caption string) tele.Album {
	if len(photos) > maxAlbumPhotos {
		photos = photos[:maxAlbumPhotos]
	}
	album := make(tele.Album, 0, len(photos))
	for i, id := range photos {
		photo := &tele.Photo{File: tele.File{FileID: id}}
		if i == 0 {
			photo.Caption = caption
		}
		album = append(album, photo)
	}
	return album
}
