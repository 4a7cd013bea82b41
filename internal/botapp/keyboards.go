package botapp

import (
	"github.com/vyborpervykh/estatebot/core/telegram/keyboard"
	"github.com/vyborpervykh/estatebot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{flow.BtnCatalog},
		[]string{flow.BtnEval},
		[]string{flow.BtnMortgage},
		[]string{flow.BtnJob},
		[]string{flow.BtnAgent},
	)
}

func cancelMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{flow.BtnCancel})
}

func photoMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{flow.BtnPhotosDone},
		[]string{flow.BtnPhotosSkip},
		[]string{flow.BtnCancel},
	)
}

func contactMenu() *tele.ReplyMarkup {
	return keyboard.ContactRequest(flow.BtnShareContact)
}

func socialMenu(url string) *tele.ReplyMarkup {
	if url == "" {
		return nil
	}
	return keyboard.InlineURLButtons(keyboard.URLBtn{Text: flow.BtnSocial, URL: url})
}

// markupFor resolves a flow keyboard to the concrete reply markup; nil means
// leave the current keyboard untouched.
func (a *App) markupFor(kb flow.Keyboard) *tele.ReplyMarkup {
	switch kb {
	case flow.KeyboardMain:
		return mainMenu()
	case flow.KeyboardCancel:
		return cancelMenu()
	case flow.KeyboardPhoto:
		return photoMenu()
	case flow.KeyboardContact:
		return contactMenu()
	case flow.KeyboardRemove:
		return keyboard.RemoveKeyboard()
	case flow.KeyboardSocial:
		return socialMenu(a.cfg.Agency.SocialURL)
	}
	return nil
}
