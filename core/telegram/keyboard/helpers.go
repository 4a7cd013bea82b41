package keyboard

import tele "gopkg.in/telebot.v4"

// URLBtn describes a convenience wrapper for inline link button properties.
type URLBtn struct {
	Text string
	URL  string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a reply keyboard from rows of text.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ContactRequest builds a reply keyboard with a share-contact button on the
// first row followed by plain text rows.
func ContactRequest(contactLabel string, rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := []tele.Row{markup.Row(markup.Contact(contactLabel))}
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// InlineURLButtons builds an inline keyboard of link buttons, one per row.
func InlineURLButtons(buttons ...URLBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, 0, len(buttons))
	for _, b := range buttons {
		inline = append(inline, []tele.InlineButton{*markup.URL(b.Text, b.URL).Inline()})
	}
	markup.InlineKeyboard = inline
	return markup
}
