package flow

// Menu and control button labels. Routing matches on the exact label, so
// these double as tokens.
const (
	BtnCatalog  = "🏢 Посмотреть каталог"
	BtnEval     = "📏 Оценить стоимость квартиры"
	BtnMortgage = "🏠 Одобрить ипотеку"
	BtnJob      = "🤝 Записаться на собеседование"
	BtnAgent    = "👨‍💼 Связаться с агентом"

	BtnCancel       = "❌ Отмена"
	BtnPhotosDone   = "✅ Готово"
	BtnPhotosSkip   = "🚫 Отправить без фото"
	BtnShareContact = "📱 Отправить контакт"
	BtnSocial       = "📱 Мы в соцсетях"
)

const (
	textWelcome = "✨ **Добро пожаловать в агентство недвижимости «Выбор Первых»!**\n\n" +
		"Наша команда — проводник в мир недвижимости, мы берем все сложные процессы на себя.\n\n" +
		"**Наши услуги:**\n" +
		"• Покупка / Продажа недвижимости\n" +
		"• Подбор в других регионах и городах\n" +
		"• Одобрение ипотеки (любая сложность)\n" +
		"• Все виды страхования\n" +
		"• Инвестиции с высокой доходностью\n" +
		"• Полное юридическое сопровождение\n\n" +
		"💻 Работаем для вас офлайн и онлайн!\n\n" +
		"С чего начнем? Выберите интересующий вас раздел в меню ниже 🔽"

	textMenuHint = "Воспользуйтесь кнопками меню для навигации:"

	textCancelled = "Действие отменено"

	textAskName = "Давайте сначала познакомимся! 😊\n\nКак к вам обращаться? Введите ваше Имя:"

	textInvalidPhone = "⚠️ Пожалуйста, введите корректный номер (только цифры) или нажмите кнопку ниже 👇"

	textRegistered = "Регистрация завершена! 😊 Теперь все функции доступны."

	textAskCity  = "В каком районе или ЖК находится квартира?"
	textAskRooms = "Укажите площадь и количество комнат:"

	textAskPhotos = "Пришлите фото квартиры. Когда закончите, нажмите '✅ Готово' 👇"

	textPhotoAsFile = "⚠️ Пожалуйста, отправьте фото **как изображение** (со сжатием). \n\n" +
		"Фотографии «файлом» я принять не смогу. Попробуйте еще раз или нажмите '✅ Готово'."

	textEvalDone = "Заявка передана агенту! 😊"

	textAskJobInfo = "Опишите ваш опыт работы или прикрепите резюме (файлом или фото) 👇"
	textJobDone    = "Ваша заявка принята! Мы свяжемся с вами для уточнения деталей 😊"

	textAskQuestion  = "Напишите ваш вопрос:"
	textQuestionSent = "Запрос отправлен! В ближайшее время мы с вами свяжемся 😊"

	textAskAmount    = "Какая сумма кредита вам необходима?"
	textAskPayment   = "Ваш первоначальный взнос?"
	textMortgageDone = "Заявка передана брокеру! После анализа мы с вами свяжемся 😊"

	textOnlyText = "⚠️ Извините, здесь я принимаю только текст."

	textUnknown = "🤖 Я — автоматический помощник агентства «Выбор Первых».\n\n" +
		"К сожалению, я не понимаю свободный текст. Пожалуйста, **воспользуйтесь кнопками меню** ниже, " +
		"чтобы я смог вам помочь. 👇\n\n" +
		"Если вы хотите задать конкретный вопрос человеку, нажмите кнопку **«👨‍💼 Связаться с агентом»**."

	jobFileComment = "Прикреплен файл"
)

// TextSendFailed is shown instead of the confirmation when the staff report
// could not be delivered.
const TextSendFailed = "Произошла ошибка при отправке. Попробуйте позже."

// TextCatalogUnavailable is shown when the catalog document cannot be sent.
const TextCatalogUnavailable = "Каталог временно недоступен."

// TextTryLater is shown when the client registry is unavailable; the turn
// is aborted so the user can simply repeat the input.
const TextTryLater = "Произошла ошибка. Попробуйте позже."

// TextCatalogCaption accompanies the catalog document.
const TextCatalogCaption = "🏠 Каталог новостроек от команды «Выбор Первых»!"

func welcomeBack(name string) string {
	return "С возвращением, " + name + "! Рады видеть вас снова в агентстве «Выбор Первых»! С чего начнем?"
}

func niceToMeet(name string) string {
	return "Приятно познакомиться, " + name + "! 👋\nДля завершения укажите ваш номер телефона:"
}
