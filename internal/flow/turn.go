package flow

import (
	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/reports"
)

// Turn is one normalized incoming update. The transport layer fills it from
// the Telegram message; Decide never touches the network.
type Turn struct {
	UserID   int64
	Username string

	Text    string
	Caption string

	// Media: the largest photo size or the attached document.
	PhotoID    string
	DocumentID string
	// OtherMedia marks video/sticker/voice and similar payloads the flows
	// never accept.
	OtherMedia bool

	ContactPhone string

	IsStart      bool
	StartPayload string
}

// Keyboard selects one of the fixed reply markups.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardCancel
	KeyboardPhoto
	KeyboardContact
	KeyboardRemove
	KeyboardSocial
)

// Message is a single reply to the user.
type Message struct {
	Text     string
	Keyboard Keyboard
	Markdown bool
	// WelcomePhoto asks the transport to deliver Text as the caption of the
	// configured greeting photo, falling back to plain text.
	WelcomePhoto bool
}

// Decision is the full outcome of one turn. The handler applies it in
// order: Save, Report, session transition, Replies.
type Decision struct {
	// Next is the state to enter when Reset is false; empty keeps the
	// current state.
	Next state.State
	// Patch is merged into the session scratch data.
	Patch map[string]any
	// Reset clears the whole session before applying Patch.
	Reset bool

	Replies []Message

	// Save persists the client registry record before anything is sent.
	Save *clients.Client
	// Report is delivered to the staff chat; on failure the handler swaps
	// Replies for an apology.
	Report *reports.Report

	// SendCatalog asks the transport to deliver the catalog document to the
	// user before the report goes out.
	SendCatalog bool
}
