package reports

import "fmt"

const (
	handleHidden = "Скрыт"
	handleUnset  = "Ник не установлен"
)

// Renderer produces the staff chat text for each report kind.
// HRTag and IBTag are mention strings appended to the job and mortgage
// reports so the right person gets pinged.
type Renderer struct {
	HRTag string
	IBTag string
}

// Render returns the report text and whether it should be sent with
// Markdown formatting.
func (r Renderer) Render(rep Report) (string, bool) {
	switch rep.Kind {
	case KindRegistration:
		return fmt.Sprintf(
			"✅ НОВАЯ РЕГИСТРАЦИЯ\n\n👤Клиент: %s\n📞Телефон: %s\n🤝 Клиент пришел от агента: %s",
			rep.Client.Name, rep.Client.Phone, rep.Client.Referrer,
		), false

	case KindValuation:
		text := fmt.Sprintf(
			"📏 **ЗАПРОС НА ОЦЕНКУ КВАРТИРЫ**\n\n"+
				"👤 Клиент: %s\n"+
				"📞 Телефон: %s\n"+
				"🔗 Ссылка на тг: %s\n"+
				"🤝 Пришел от агента: %s\n\n"+
				"Информация об объекте:\n"+
				"📍 Район/ЖК: %s\n"+
				"📏 Параметры: %s",
			rep.Client.Name, rep.Client.Phone, handle(rep.Username, handleHidden),
			rep.Client.Referrer, rep.City, rep.Rooms,
		)
		if len(rep.Photos) == 0 {
			text += "\n📸 (Без фото)"
		}
		return text, true

	case KindJob:
		return fmt.Sprintf(
			"💼 ЗАЯВКА НА СОБЕСЕДОВАНИЕ\n\n"+
				"👤 Кандидат: %s\n"+
				"📞 Телефон: %s\n"+
				"🔗 ТГ клиента: %s\n"+
				"🤝 Пришел от агента: %s\n"+
				"📝 Комментарий: %s\n\n"+
				"❗️ %s заявка на собес",
			rep.Client.Name, rep.Client.Phone, handle(rep.Username, handleHidden),
			rep.Client.Referrer, rep.Comment, r.HRTag,
		), true

	case KindMortgage:
		return fmt.Sprintf(
			"💸 ЗАЯВКА НА ОДОБРЕНИЕ ИПОТЕКИ\n\n"+
				"👤 Клиент: %s\n"+
				"📞 Телефон: %s\n"+
				"🔗 Ссылка на тг клиента: %s\n"+
				"🤝 Пришел от агента: %s\n\n"+
				"Информация от клиента:\n"+
				"💰 Сумма необходимая: %s\n"+
				"💼 ПВ: %s\n\n"+
				"❗️ %s",
			rep.Client.Name, rep.Client.Phone, handle(rep.Username, handleUnset),
			rep.Client.Referrer, rep.Amount, rep.Payment, r.IBTag,
		), false

	case KindAgentQuestion:
		return fmt.Sprintf(
			"🙋‍♂️ ВОПРОС АГЕНТУ\n\n"+
				"👤 Клиент: %s\n"+
				"📞 Номер телефона: %s\n"+
				"🔗 ТГ клиента: %s\n"+
				"🤝 Пришел от агента: %s\n\n"+
				"❓ Вопрос: %s",
			rep.Client.Name, rep.Client.Phone, handle(rep.Username, handleHidden),
			rep.Client.Referrer, rep.Question,
		), true

	case KindCatalog:
		return fmt.Sprintf(
			"🗂 КЛИЕНТ СКАЧАЛ КАТАЛОГ\n\n"+
				"👤 Имя: %s\n"+
				"📞 Телефон: %s\n"+
				"🔗 Ссылка на тг: %s\n"+
				"🤝 Пришел от агента: %s",
			rep.Client.Name, rep.Client.Phone, handle(rep.Username, handleHidden),
			rep.Client.Referrer,
		), true
	}

	return "", false
}

func handle(username, fallback string) string {
	if username == "" {
		return fallback
	}
	return "@" + username
}
