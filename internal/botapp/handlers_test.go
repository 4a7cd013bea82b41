package botapp

import (
	"context"
	"errors"
	"testing"

	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/flow"
	"github.com/vyborpervykh/estatebot/internal/reports"

	tele "gopkg.in/telebot.v4"
)

// testTeleContext is the minimal tele.Context surface the dialog handler
// touches; everything else panics via the embedded nil interface.
type testTeleContext struct {
	tele.Context
	user     *tele.User
	values   map[string]any
	sends    []any
	photoErr error
}

func newTestTeleContext(userID int64) *testTeleContext {
	return &testTeleContext{
		user:   &tele.User{ID: userID},
		values: make(map[string]any),
	}
}

func (c *testTeleContext) Update() tele.Update     { return tele.Update{ID: 1} }
func (c *testTeleContext) Sender() *tele.User      { return c.user }
func (c *testTeleContext) Chat() *tele.Chat        { return &tele.Chat{ID: c.user.ID} }
func (c *testTeleContext) Message() *tele.Message  { return nil }
func (c *testTeleContext) Text() string            { return "" }
func (c *testTeleContext) Get(key string) any      { return c.values[key] }
func (c *testTeleContext) Set(key string, val any) { c.values[key] = val }

func (c *testTeleContext) Send(what any, opts ...any) error {
	if _, ok := what.(*tele.Photo); ok && c.photoErr != nil {
		return c.photoErr
	}
	c.sends = append(c.sends, what)
	return nil
}

func (c *testTeleContext) sentTexts() []string {
	var texts []string
	for _, what := range c.sends {
		if s, ok := what.(string); ok {
			texts = append(texts, s)
		}
	}
	return texts
}

type stubStore struct {
	profile   *clients.Client
	getErr    error
	upsertErr error
	upserts   int
}

func (s *stubStore) Upsert(ctx context.Context, client clients.Client) error {
	s.upserts++
	return s.upsertErr
}

func (s *stubStore) Get(ctx context.Context, telegramID int64) (*clients.Client, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

type captureNotifier struct {
	sent []reports.Report
}

func (n *captureNotifier) Notify(ctx context.Context, rep reports.Report) error {
	n.sent = append(n.sent, rep)
	return nil
}

func newTestConversation() *conversation {
	return &conversation{
		app:      &App{cfg: &Config{}},
		sessions: state.NewMemoryManager(),
		store:    clients.NewMemoryStore(),
	}
}

func TestApplySessionReset(t *testing.T) {
	cv := newTestConversation()
	cv.sessions.Apply(7, flow.StateEvalCity, map[string]any{"city": "Казань"})

	cv.applySession(7, flow.Decision{Reset: true})
	if cv.sessions.InProgress(7) {
		t.Fatal("reset must clear the session")
	}

	cv.applySession(7, flow.Decision{Reset: true, Patch: map[string]any{"referrer": "12345"}})
	st, data := cv.sessions.Get(7)
	if st != state.StateIdle {
		t.Fatalf("state = %q", st)
	}
	if data["referrer"] != "12345" {
		t.Fatalf("referrer = %v", data["referrer"])
	}
}

func TestApplySessionKeepsStateWhenNextEmpty(t *testing.T) {
	cv := newTestConversation()
	cv.sessions.Apply(7, flow.StateEvalPhotos, map[string]any{"rooms": "2"})

	cv.applySession(7, flow.Decision{Patch: map[string]any{"photos": []string{"ph1"}}})
	st, data := cv.sessions.Get(7)
	if st != flow.StateEvalPhotos {
		t.Fatalf("state = %q", st)
	}
	if data["rooms"] != "2" {
		t.Fatal("existing scratch data must survive the merge")
	}
	if _, ok := data["photos"]; !ok {
		t.Fatal("patch must be merged")
	}
}

func TestApplySessionIdleNoop(t *testing.T) {
	cv := newTestConversation()
	cv.applySession(7, flow.Decision{})
	if cv.sessions.InProgress(7) {
		t.Fatal("empty decision must not start a session")
	}
}

func TestRunSaveFailureAbortsTurn(t *testing.T) {
	store := &stubStore{upsertErr: errors.New("db down")}
	notifier := &captureNotifier{}
	cv := &conversation{
		app:      &App{cfg: &Config{}},
		sessions: state.NewMemoryManager(),
		store:    store,
		notifier: notifier,
	}
	cv.sessions.Apply(42, flow.StateRegPhone, map[string]any{"name": "Иван", "referrer": "12345"})

	c := newTestTeleContext(42)
	if err := cv.run(c, flow.Turn{UserID: 42, Text: "79991234567"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if store.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", store.upserts)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no report must be sent when the save fails, got %d", len(notifier.sent))
	}
	if got := cv.sessions.GetState(42); got != flow.StateRegPhone {
		t.Fatalf("state = %q, want %q (session must survive for a retry)", got, flow.StateRegPhone)
	}
	texts := c.sentTexts()
	if len(texts) != 1 || texts[0] != flow.TextTryLater {
		t.Fatalf("replies = %v, want only %q", texts, flow.TextTryLater)
	}
}

func TestRunLookupFailureAbortsTurn(t *testing.T) {
	store := &stubStore{getErr: errors.New("db down")}
	notifier := &captureNotifier{}
	cv := &conversation{
		app:      &App{cfg: &Config{}},
		sessions: state.NewMemoryManager(),
		store:    store,
		notifier: notifier,
	}

	c := newTestTeleContext(42)
	if err := cv.run(c, flow.Turn{UserID: 42, Text: flow.BtnEval}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if cv.sessions.InProgress(42) {
		t.Fatal("a failed lookup must not redirect into registration")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no report must be sent, got %d", len(notifier.sent))
	}
	texts := c.sentTexts()
	if len(texts) != 1 || texts[0] != flow.TextTryLater {
		t.Fatalf("replies = %v, want only %q", texts, flow.TextTryLater)
	}
}

func TestRunWelcomePhotoDelivered(t *testing.T) {
	cv := &conversation{
		app:      &App{cfg: &Config{Agency: AgencyConfig{WelcomePhotoID: "photo-id"}}},
		sessions: state.NewMemoryManager(),
		store:    &stubStore{},
	}

	c := newTestTeleContext(42)
	if err := cv.run(c, flow.Turn{UserID: 42, IsStart: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(c.sends) != 2 {
		t.Fatalf("sends = %d, want greeting photo plus menu hint", len(c.sends))
	}
	if _, ok := c.sends[0].(*tele.Photo); !ok {
		t.Fatalf("first send = %T, want *tele.Photo", c.sends[0])
	}
}

func TestRunWelcomePhotoFallbackSkipsMenuHint(t *testing.T) {
	cv := &conversation{
		app:      &App{cfg: &Config{Agency: AgencyConfig{WelcomePhotoID: "broken-id"}}},
		sessions: state.NewMemoryManager(),
		store:    &stubStore{},
	}

	c := newTestTeleContext(42)
	c.photoErr = errors.New("wrong file id")
	if err := cv.run(c, flow.Turn{UserID: 42, IsStart: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	texts := c.sentTexts()
	if len(c.sends) != 1 || len(texts) != 1 {
		t.Fatalf("sends = %v, want a single text greeting", c.sends)
	}
}
