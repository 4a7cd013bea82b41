package reports

import (
	"context"

	"github.com/vyborpervykh/estatebot/internal/clients"
)

// Kind identifies the staff report being produced.
type Kind string

const (
	KindRegistration  Kind = "registration"
	KindValuation     Kind = "valuation"
	KindJob           Kind = "job"
	KindMortgage      Kind = "mortgage"
	KindAgentQuestion Kind = "agent_question"
	KindCatalog       Kind = "catalog"
)

// Report carries everything needed to notify the staff chat about a
// completed flow. Username is the sender's Telegram username without the
// "@" prefix and may be empty.
type Report struct {
	Kind     Kind
	Client   clients.Client
	Username string

	// Valuation
	City   string
	Rooms  string
	Photos []string

	// Mortgage
	Amount  string
	Payment string

	// Agent question
	Question string

	// Job application: free-form comment plus an optional attachment.
	Comment    string
	PhotoID    string
	DocumentID string
}

// Notifier delivers rendered reports to the staff chat.
type Notifier interface {
	Notify(ctx context.Context, r Report) error
}
