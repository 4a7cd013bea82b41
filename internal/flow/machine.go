package flow

import (
	"github.com/vyborpervykh/estatebot/core/telegram/state"
	"github.com/vyborpervykh/estatebot/internal/clients"
	"github.com/vyborpervykh/estatebot/internal/reports"
)

// Decide maps one incoming turn onto a Decision given the current session
// and the client profile (nil when the user has not registered). It is a
// pure function: all persistence and sending happens in the caller, which
// makes every dialog path testable without Telegram.
func Decide(t Turn, st state.State, data map[string]any, profile *clients.Client) Decision {
	if t.IsStart {
		return decideStart(t, profile)
	}

	if t.Text == BtnCancel {
		return Decision{
			Reset:   true,
			Replies: []Message{{Text: textCancelled, Keyboard: KeyboardMain}},
		}
	}

	switch st {
	case StateRegName:
		return decideRegName(t)
	case StateRegPhone:
		return decideRegPhone(t, data)
	case StateEvalCity:
		return decideTextStep(t, StateEvalRooms, keyCity, textAskRooms)
	case StateEvalRooms:
		return decideEvalRooms(t)
	case StateEvalPhotos:
		return decideEvalPhotos(t, data, profile)
	case StateJobInfo:
		return decideJobInfo(t, profile)
	case StateAgentQuestion:
		return decideAgentQuestion(t, profile)
	case StateMortgageAmount:
		return decideTextStep(t, StateMortgagePayment, keyAmount, textAskPayment)
	case StateMortgagePayment:
		return decideMortgagePayment(t, data, profile)
	}

	return decideIdle(t, profile)
}

func decideStart(t Turn, profile *clients.Client) Decision {
	referrer := t.StartPayload
	if referrer == "" {
		referrer = DefaultReferrer
	}
	d := Decision{
		Reset: true,
		Patch: map[string]any{keyReferrer: referrer},
	}
	if profile != nil {
		d.Replies = []Message{{Text: welcomeBack(profile.Name), Keyboard: KeyboardMain}}
		return d
	}
	d.Replies = []Message{
		{Text: textWelcome, Keyboard: KeyboardSocial, Markdown: true, WelcomePhoto: true},
		{Text: textMenuHint, Keyboard: KeyboardMain},
	}
	return d
}

func decideRegName(t Turn) Decision {
	if t.Text == "" {
		return Decision{
			Next:    StateRegName,
			Replies: []Message{{Text: textOnlyText}},
		}
	}
	return Decision{
		Next:    StateRegPhone,
		Patch:   map[string]any{keyName: t.Text},
		Replies: []Message{{Text: niceToMeet(t.Text), Keyboard: KeyboardContact}},
	}
}

func decideRegPhone(t Turn, data map[string]any) Decision {
	phone := t.ContactPhone
	if phone == "" {
		phone = t.Text
	}
	if !ValidPhone(phone) {
		return Decision{
			Next:    StateRegPhone,
			Replies: []Message{{Text: textInvalidPhone}},
		}
	}

	referrer := stringFrom(data, keyReferrer)
	if referrer == "" {
		referrer = DefaultReferrer
	}
	client := clients.Client{
		TelegramID: t.UserID,
		Name:       stringFrom(data, keyName),
		Phone:      phone,
		Username:   storedHandle(t.Username),
		Referrer:   referrer,
	}
	return Decision{
		Reset: true,
		Save:  &client,
		Report: &reports.Report{
			Kind:   reports.KindRegistration,
			Client: client,
		},
		Replies: []Message{{Text: textRegistered, Keyboard: KeyboardMain}},
	}
}

// decideTextStep covers the single-question steps that accept any text and
// store it under key before asking the next question.
func decideTextStep(t Turn, next state.State, key, prompt string) Decision {
	if t.Text == "" {
		return stayWithWarning()
	}
	return Decision{
		Next:    next,
		Patch:   map[string]any{key: t.Text},
		Replies: []Message{{Text: prompt, Keyboard: KeyboardCancel}},
	}
}

func decideEvalRooms(t Turn) Decision {
	if t.Text == "" {
		return stayWithWarning()
	}
	return Decision{
		Next:    StateEvalPhotos,
		Patch:   map[string]any{keyRooms: t.Text, keyPhotos: []string{}},
		Replies: []Message{{Text: textAskPhotos, Keyboard: KeyboardPhoto}},
	}
}

func decideEvalPhotos(t Turn, data map[string]any, profile *clients.Client) Decision {
	if t.DocumentID != "" {
		return Decision{
			Next:    StateEvalPhotos,
			Replies: []Message{{Text: textPhotoAsFile, Markdown: true}},
		}
	}

	if t.PhotoID != "" {
		photos := append(append([]string(nil), stringsFrom(data, keyPhotos)...), t.PhotoID)
		return Decision{
			Next:  StateEvalPhotos,
			Patch: map[string]any{keyPhotos: photos},
		}
	}

	if t.Text == BtnPhotosDone || t.Text == BtnPhotosSkip {
		rep := &reports.Report{
			Kind:     reports.KindValuation,
			Username: t.Username,
			City:     stringFrom(data, keyCity),
			Rooms:    stringFrom(data, keyRooms),
			Photos:   stringsFrom(data, keyPhotos),
		}
		if profile != nil {
			rep.Client = *profile
		}
		return Decision{
			Reset:   true,
			Report:  rep,
			Replies: []Message{{Text: textEvalDone, Keyboard: KeyboardMain}},
		}
	}

	// Anything else while collecting photos is ignored.
	return Decision{Next: StateEvalPhotos}
}

func decideJobInfo(t Turn, profile *clients.Client) Decision {
	comment := t.Text
	if comment == "" {
		comment = t.Caption
	}
	if comment == "" {
		comment = jobFileComment
	}

	rep := &reports.Report{
		Kind:       reports.KindJob,
		Username:   t.Username,
		Comment:    comment,
		PhotoID:    t.PhotoID,
		DocumentID: t.DocumentID,
	}
	if profile != nil {
		rep.Client = *profile
	}
	return Decision{
		Reset:   true,
		Report:  rep,
		Replies: []Message{{Text: textJobDone, Keyboard: KeyboardMain}},
	}
}

func decideAgentQuestion(t Turn, profile *clients.Client) Decision {
	if t.Text == "" {
		return stayWithWarning()
	}
	rep := &reports.Report{
		Kind:     reports.KindAgentQuestion,
		Username: t.Username,
		Question: t.Text,
	}
	if profile != nil {
		rep.Client = *profile
	}
	return Decision{
		Reset:   true,
		Report:  rep,
		Replies: []Message{{Text: textQuestionSent, Keyboard: KeyboardMain}},
	}
}

func decideMortgagePayment(t Turn, data map[string]any, profile *clients.Client) Decision {
	if t.Text == "" {
		return stayWithWarning()
	}
	rep := &reports.Report{
		Kind:     reports.KindMortgage,
		Username: t.Username,
		Amount:   stringFrom(data, keyAmount),
		Payment:  t.Text,
	}
	if profile != nil {
		rep.Client = *profile
	}
	return Decision{
		Reset:   true,
		Report:  rep,
		Replies: []Message{{Text: textMortgageDone, Keyboard: KeyboardMain}},
	}
}

func decideIdle(t Turn, profile *clients.Client) Decision {
	if t.ContactPhone != "" {
		// A shared contact outside the phone step means nothing.
		return Decision{}
	}
	if t.PhotoID != "" || t.DocumentID != "" || t.OtherMedia {
		return Decision{Replies: []Message{{Text: textOnlyText}}}
	}

	switch t.Text {
	case BtnCatalog:
		if profile == nil {
			return askRegistration()
		}
		return Decision{
			SendCatalog: true,
			Report: &reports.Report{
				Kind:     reports.KindCatalog,
				Client:   *profile,
				Username: t.Username,
			},
		}
	case BtnEval:
		if profile == nil {
			return askRegistration()
		}
		return Decision{
			Next:    StateEvalCity,
			Replies: []Message{{Text: textAskCity, Keyboard: KeyboardCancel}},
		}
	case BtnMortgage:
		if profile == nil {
			return askRegistration()
		}
		return Decision{
			Next:    StateMortgageAmount,
			Replies: []Message{{Text: textAskAmount, Keyboard: KeyboardCancel}},
		}
	case BtnJob:
		if profile == nil {
			return askRegistration()
		}
		return Decision{
			Next:    StateJobInfo,
			Replies: []Message{{Text: textAskJobInfo, Keyboard: KeyboardCancel}},
		}
	case BtnAgent:
		if profile == nil {
			return askRegistration()
		}
		return Decision{
			Next:    StateAgentQuestion,
			Replies: []Message{{Text: textAskQuestion, Keyboard: KeyboardCancel}},
		}
	}

	return Decision{
		Replies: []Message{{Text: textUnknown, Keyboard: KeyboardMain, Markdown: true}},
	}
}

func askRegistration() Decision {
	return Decision{
		Next:    StateRegName,
		Replies: []Message{{Text: textAskName, Keyboard: KeyboardRemove}},
	}
}

func stayWithWarning() Decision {
	return Decision{Replies: []Message{{Text: textOnlyText}}}
}

func storedHandle(username string) string {
	if username == "" {
		return "Скрыт"
	}
	return "@" + username
}

func stringFrom(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// stringsFrom tolerates both []string and []any: the Redis session driver
// round-trips scratch data through JSON, which widens slices to []any.
func stringsFrom(data map[string]any, key string) []string {
	v, ok := data[key]
	if !ok {
		return nil
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
