package flow

import (
	"fmt"
	"testing"

	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/reports"
)

func registered() *clients.Client {
	return &clients.Client{
		TelegramID: 42,
		Name:       "Иван",
		Phone:      "79991234567",
		Username:   "@ivan",
		Referrer:   DefaultReferrer,
	}
}

// applyDecision mimics the handler's session transition so scenario tests
// can chain turns through a Manager.
func applyDecision(m state.Manager, userID int64, d Decision) {
	if d.Reset {
		m.Clear(userID)
		if len(d.Patch) > 0 {
			m.Apply(userID, state.StateIdle, d.Patch)
		}
		return
	}
	st := d.Next
	if st == "" {
		st = m.GetState(userID)
	}
	if st == "" {
		st = state.StateIdle
	}
	m.Apply(userID, st, d.Patch)
}

func TestDecideStartNewUser(t *testing.T) {
	d := Decide(Turn{UserID: 42, IsStart: true, StartPayload: "12345"}, state.StateIdle, nil, nil)
	if !d.Reset {
		t.Fatal("expected session reset on /start")
	}
	if got := d.Patch[keyReferrer]; got != "12345" {
		t.Fatalf("referrer = %v, want 12345", got)
	}
	if len(d.Replies) != 2 {
		t.Fatalf("replies = %d, want 2", len(d.Replies))
	}
	if !d.Replies[0].WelcomePhoto || !d.Replies[0].Markdown {
		t.Fatal("greeting must be a markdown photo caption")
	}
	if d.Replies[1].Keyboard != KeyboardMain {
		t.Fatal("second reply must carry the main keyboard")
	}
}

func TestDecideStartWithoutPayload(t *testing.T) {
	d := Decide(Turn{UserID: 42, IsStart: true}, state.StateIdle, nil, nil)
	if got := d.Patch[keyReferrer]; got != DefaultReferrer {
		t.Fatalf("referrer = %v, want %q", got, DefaultReferrer)
	}
}

func TestDecideStartKnownUser(t *testing.T) {
	d := Decide(Turn{UserID: 42, IsStart: true}, state.StateIdle, nil, registered())
	if len(d.Replies) != 1 {
		t.Fatalf("replies = %d, want 1", len(d.Replies))
	}
	if d.Replies[0].Text != welcomeBack("Иван") {
		t.Fatalf("unexpected greeting: %q", d.Replies[0].Text)
	}
}

func TestDecideMenuRequiresRegistration(t *testing.T) {
	for _, btn := range []string{BtnCatalog, BtnEval, BtnMortgage, BtnJob, BtnAgent} {
		t.Run(btn, func(t *testing.T) {
			d := Decide(Turn{UserID: 42, Text: btn}, state.StateIdle, nil, nil)
			if d.Next != StateRegName {
				t.Fatalf("Next = %q, want %q", d.Next, StateRegName)
			}
			if d.Report != nil || d.SendCatalog {
				t.Fatal("unregistered user must not trigger reports")
			}
		})
	}
}

func TestDecideCancelFromEveryState(t *testing.T) {
	states := []state.State{
		StateRegName, StateRegPhone,
		StateEvalCity, StateEvalRooms, StateEvalPhotos,
		StateJobInfo, StateAgentQuestion,
		StateMortgageAmount, StateMortgagePayment,
	}
	for _, st := range states {
		t.Run(string(st), func(t *testing.T) {
			d := Decide(Turn{UserID: 42, Text: BtnCancel}, st, map[string]any{keyName: "x"}, registered())
			if !d.Reset {
				t.Fatal("cancel must reset the session")
			}
			if len(d.Replies) != 1 || d.Replies[0].Text != textCancelled {
				t.Fatalf("unexpected replies: %+v", d.Replies)
			}
		})
	}
}

func TestDecideRegistrationScenario(t *testing.T) {
	m := state.NewMemoryManager()
	const userID int64 = 42

	d := Decide(Turn{UserID: userID, IsStart: true, StartPayload: "12345"}, state.StateIdle, nil, nil)
	applyDecision(m, userID, d)

	st, data := m.Get(userID)
	d = Decide(Turn{UserID: userID, Text: BtnEval}, st, data, nil)
	applyDecision(m, userID, d)
	if got := m.GetState(userID); got != StateRegName {
		t.Fatalf("state = %q, want %q", got, StateRegName)
	}

	st, data = m.Get(userID)
	d = Decide(Turn{UserID: userID, Text: "Иван"}, st, data, nil)
	applyDecision(m, userID, d)
	if got := m.GetState(userID); got != StateRegPhone {
		t.Fatalf("state = %q, want %q", got, StateRegPhone)
	}
	if d.Replies[0].Keyboard != KeyboardContact {
		t.Fatal("phone step must offer the contact keyboard")
	}

	st, data = m.Get(userID)
	d = Decide(Turn{UserID: userID, Username: "ivan", ContactPhone: "+7 999 123-45-67"}, st, data, nil)
	if d.Save == nil {
		t.Fatal("valid phone must save the client")
	}
	if d.Save.Name != "Иван" || d.Save.Phone != "+7 999 123-45-67" {
		t.Fatalf("unexpected client: %+v", d.Save)
	}
	if d.Save.Username != "@ivan" {
		t.Fatalf("username = %q, want @ivan", d.Save.Username)
	}
	if d.Save.Referrer != "12345" {
		t.Fatalf("referrer = %q, want 12345", d.Save.Referrer)
	}
	if d.Report == nil || d.Report.Kind != reports.KindRegistration {
		t.Fatalf("unexpected report: %+v", d.Report)
	}
	applyDecision(m, userID, d)
	if m.InProgress(userID) {
		t.Fatal("session must be idle after registration")
	}
}

func TestDecideRegPhoneRejectsInvalid(t *testing.T) {
	data := map[string]any{keyName: "Иван"}
	for _, turn := range []Turn{
		{UserID: 42, Text: "12345"},
		{UserID: 42, PhotoID: "ph1"},
		{UserID: 42, Text: "позвоните мне"},
	} {
		d := Decide(turn, StateRegPhone, data, nil)
		if d.Save != nil || d.Reset {
			t.Fatalf("invalid phone must not complete registration: %+v", turn)
		}
		if len(d.Replies) != 1 || d.Replies[0].Text != textInvalidPhone {
			t.Fatalf("unexpected replies: %+v", d.Replies)
		}
	}
}

func TestDecideRegPhoneHiddenUsername(t *testing.T) {
	d := Decide(Turn{UserID: 42, Text: "79991234567"}, StateRegPhone, map[string]any{keyName: "Иван"}, nil)
	if d.Save == nil || d.Save.Username != "Скрыт" {
		t.Fatalf("unexpected client: %+v", d.Save)
	}
}

func TestDecideValuationScenario(t *testing.T) {
	m := state.NewMemoryManager()
	const userID int64 = 42
	profile := registered()

	d := Decide(Turn{UserID: userID, Text: BtnEval}, state.StateIdle, nil, profile)
	applyDecision(m, userID, d)
	if got := m.GetState(userID); got != StateEvalCity {
		t.Fatalf("state = %q", got)
	}

	st, data := m.Get(userID)
	d = Decide(Turn{UserID: userID, Text: "Казань"}, st, data, profile)
	applyDecision(m, userID, d)

	st, data = m.Get(userID)
	d = Decide(Turn{UserID: userID, Text: "2"}, st, data, profile)
	applyDecision(m, userID, d)
	if got := m.GetState(userID); got != StateEvalPhotos {
		t.Fatalf("state = %q", got)
	}

	for i := 0; i < 3; i++ {
		st, data = m.Get(userID)
		d = Decide(Turn{UserID: userID, PhotoID: fmt.Sprintf("ph%d", i)}, st, data, profile)
		if len(d.Replies) != 0 {
			t.Fatal("photo collection must stay silent")
		}
		applyDecision(m, userID, d)
	}

	st, data = m.Get(userID)
	d = Decide(Turn{UserID: userID, Username: "ivan", Text: BtnPhotosDone}, st, data, profile)
	if d.Report == nil || d.Report.Kind != reports.KindValuation {
		t.Fatalf("unexpected report: %+v", d.Report)
	}
	if d.Report.City != "Казань" || d.Report.Rooms != "2" {
		t.Fatalf("unexpected report fields: %+v", d.Report)
	}
	if len(d.Report.Photos) != 3 {
		t.Fatalf("photos = %d, want 3", len(d.Report.Photos))
	}
	if !d.Reset {
		t.Fatal("completed valuation must reset the session")
	}
}

func TestDecideValuationRejectsDocuments(t *testing.T) {
	d := Decide(Turn{UserID: 42, DocumentID: "doc1"}, StateEvalPhotos, map[string]any{}, registered())
	if len(d.Replies) != 1 || d.Replies[0].Text != textPhotoAsFile {
		t.Fatalf("unexpected replies: %+v", d.Replies)
	}
	if d.Report != nil || d.Reset {
		t.Fatal("document must not end the flow")
	}
}

func TestDecideValuationPhotosFromRedisData(t *testing.T) {
	// The Redis driver round-trips scratch data through JSON, so the
	// photo list arrives back as []any.
	data := map[string]any{keyCity: "Казань", keyRooms: "2", keyPhotos: []any{"ph0", "ph1"}}
	d := Decide(Turn{UserID: 42, PhotoID: "ph2"}, StateEvalPhotos, data, registered())
	got, ok := d.Patch[keyPhotos].([]string)
	if !ok || len(got) != 3 || got[2] != "ph2" {
		t.Fatalf("photos = %v", d.Patch[keyPhotos])
	}
}

func TestDecideMortgageScenario(t *testing.T) {
	profile := registered()
	d := Decide(Turn{UserID: 42, Text: BtnMortgage}, state.StateIdle, nil, profile)
	if d.Next != StateMortgageAmount {
		t.Fatalf("Next = %q", d.Next)
	}

	d = Decide(Turn{UserID: 42, Text: "5 000 000"}, StateMortgageAmount, map[string]any{}, profile)
	if d.Next != StateMortgagePayment || d.Patch[keyAmount] != "5 000 000" {
		t.Fatalf("unexpected decision: %+v", d)
	}

	d = Decide(Turn{UserID: 42, Username: "ivan", Text: "1 000 000"}, StateMortgagePayment, map[string]any{keyAmount: "5 000 000"}, profile)
	if d.Report == nil || d.Report.Kind != reports.KindMortgage {
		t.Fatalf("unexpected report: %+v", d.Report)
	}
	if d.Report.Amount != "5 000 000" || d.Report.Payment != "1 000 000" {
		t.Fatalf("unexpected report fields: %+v", d.Report)
	}
	if !d.Reset {
		t.Fatal("completed mortgage must reset the session")
	}
}

func TestDecideJobAcceptsAnyPayload(t *testing.T) {
	profile := registered()
	cases := []struct {
		name    string
		turn    Turn
		comment string
	}{
		{"text", Turn{UserID: 42, Text: "Опыт 5 лет"}, "Опыт 5 лет"},
		{"photo_with_caption", Turn{UserID: 42, PhotoID: "ph1", Caption: "резюме"}, "резюме"},
		{"bare_document", Turn{UserID: 42, DocumentID: "doc1"}, jobFileComment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.turn, StateJobInfo, map[string]any{}, profile)
			if d.Report == nil || d.Report.Kind != reports.KindJob {
				t.Fatalf("unexpected report: %+v", d.Report)
			}
			if d.Report.Comment != tc.comment {
				t.Fatalf("comment = %q, want %q", d.Report.Comment, tc.comment)
			}
			if d.Report.PhotoID != tc.turn.PhotoID || d.Report.DocumentID != tc.turn.DocumentID {
				t.Fatal("attachments must carry over to the report")
			}
		})
	}
}

func TestDecideAgentQuestion(t *testing.T) {
	d := Decide(Turn{UserID: 42, Username: "ivan", Text: "Как продать квартиру?"}, StateAgentQuestion, map[string]any{}, registered())
	if d.Report == nil || d.Report.Kind != reports.KindAgentQuestion {
		t.Fatalf("unexpected report: %+v", d.Report)
	}
	if d.Report.Question != "Как продать квартиру?" {
		t.Fatalf("question = %q", d.Report.Question)
	}

	d = Decide(Turn{UserID: 42, PhotoID: "ph1"}, StateAgentQuestion, map[string]any{}, registered())
	if d.Report != nil || len(d.Replies) != 1 || d.Replies[0].Text != textOnlyText {
		t.Fatalf("media must be rejected: %+v", d)
	}
}

func TestDecideCatalog(t *testing.T) {
	d := Decide(Turn{UserID: 42, Username: "ivan", Text: BtnCatalog}, state.StateIdle, nil, registered())
	if !d.SendCatalog {
		t.Fatal("catalog button must request the catalog")
	}
	if d.Report == nil || d.Report.Kind != reports.KindCatalog {
		t.Fatalf("unexpected report: %+v", d.Report)
	}
	if d.Next != "" || d.Reset {
		t.Fatal("catalog must not change the session")
	}
}

func TestDecideIdleFallbacks(t *testing.T) {
	d := Decide(Turn{UserID: 42, Text: "привет"}, state.StateIdle, nil, registered())
	if len(d.Replies) != 1 || d.Replies[0].Text != textUnknown {
		t.Fatalf("unexpected replies: %+v", d.Replies)
	}

	d = Decide(Turn{UserID: 42, PhotoID: "ph1"}, state.StateIdle, nil, registered())
	if len(d.Replies) != 1 || d.Replies[0].Text != textOnlyText {
		t.Fatalf("unexpected replies: %+v", d.Replies)
	}

	d = Decide(Turn{UserID: 42, ContactPhone: "79991234567"}, state.StateIdle, nil, registered())
	if len(d.Replies) != 0 || d.Report != nil {
		t.Fatalf("stray contact must be ignored: %+v", d)
	}
}
