package reports

import (
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/vyborpervykh/estatebot/internal/clients"
)

var testClient = clients.Client{
	TelegramID: 100,
	Name:       "Иван",
	Phone:      "79991234567",
	Referrer:   "Прямой заход",
}

func TestRenderRegistration(t *testing.T) {
	r := Renderer{}
	text, markdown := r.Render(Report{Kind: KindRegistration, Client: testClient})

	want := "✅ НОВАЯ РЕГИСТРАЦИЯ\n\n👤Клиент: Иван\n📞Телефон: 79991234567\n🤝 Клиент пришел от агента: Прямой заход"
	if text != want {
		t.Fatalf("registration text mismatch:\n got: %q\nwant: %q", text, want)
	}
	if markdown {
		t.Fatal("registration report must be plain text")
	}
}

func TestRenderValuationWithoutPhotos(t *testing.T) {
	r := Renderer{}
	text, markdown := r.Render(Report{
		Kind:     KindValuation,
		Client:   testClient,
		Username: "ivan",
		City:     "ЖК Солнечный",
		Rooms:    "56 м², 2 комнаты",
	})

	if !markdown {
		t.Fatal("valuation report must use markdown")
	}
	if !strings.Contains(text, "📍 Район/ЖК: ЖК Солнечный") {
		t.Fatalf("missing city line: %q", text)
	}
	if !strings.Contains(text, "🔗 Ссылка на тг: @ivan") {
		t.Fatalf("missing handle line: %q", text)
	}
	if !strings.HasSuffix(text, "\n📸 (Без фото)") {
		t.Fatalf("no-photo marker missing: %q", text)
	}
}

func TestRenderValuationWithPhotosOmitsMarker(t *testing.T) {
	r := Renderer{}
	text, _ := r.Render(Report{
		Kind:   KindValuation,
		Client: testClient,
		City:   "Центр",
		Rooms:  "3 комнаты",
		Photos: []string{"ph1"},
	})
	if strings.Contains(text, "Без фото") {
		t.Fatalf("photo marker must be absent when photos exist: %q", text)
	}
	if !strings.Contains(text, "🔗 Ссылка на тг: Скрыт") {
		t.Fatalf("empty username must render hidden placeholder: %q", text)
	}
}

func TestRenderJobUsesHRTag(t *testing.T) {
	r := Renderer{HRTag: "@hr_lead"}
	text, markdown := r.Render(Report{
		Kind:    KindJob,
		Client:  testClient,
		Comment: "Прикреплен файл",
	})
	if !markdown {
		t.Fatal("job report must use markdown")
	}
	if !strings.HasSuffix(text, "❗️ @hr_lead заявка на собес") {
		t.Fatalf("HR tag line mismatch: %q", text)
	}
	if !strings.Contains(text, "📝 Комментарий: Прикреплен файл") {
		t.Fatalf("comment line mismatch: %q", text)
	}
}

func TestRenderMortgageUsesIBTagAndUnsetHandle(t *testing.T) {
	r := Renderer{IBTag: "@broker"}
	text, markdown := r.Render(Report{
		Kind:    KindMortgage,
		Client:  testClient,
		Amount:  "5 млн",
		Payment: "1 млн",
	})
	if markdown {
		t.Fatal("mortgage report is sent without markdown")
	}
	if !strings.Contains(text, "🔗 Ссылка на тг клиента: Ник не установлен") {
		t.Fatalf("mortgage handle fallback mismatch: %q", text)
	}
	if !strings.Contains(text, "💰 Сумма необходимая: 5 млн") || !strings.Contains(text, "💼 ПВ: 1 млн") {
		t.Fatalf("mortgage amounts missing: %q", text)
	}
	if !strings.HasSuffix(text, "❗️ @broker") {
		t.Fatalf("IB tag missing: %q", text)
	}
}

func TestRenderAgentQuestion(t *testing.T) {
	r := Renderer{}
	text, _ := r.Render(Report{
		Kind:     KindAgentQuestion,
		Client:   testClient,
		Username: "ivan",
		Question: "Когда сдача дома?",
	})
	if !strings.HasSuffix(text, "❓ Вопрос: Когда сдача дома?") {
		t.Fatalf("question line mismatch: %q", text)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := Renderer{}
	text, _ := r.Render(Report{Kind: Kind("bogus")})
	if text != "" {
		t.Fatalf("unknown kind must render empty, got %q", text)
	}
}

func TestBuildAlbumCapsAtTen(t *testing.T) {
	photos := make([]string, 14)
	for i := range photos {
		photos[i] = "id"
	}
	album := BuildAlbum(photos, "caption")
	if len(album) != 10 {
		t.Fatalf("album length = %d, want 10", len(album))
	}
}

func TestBuildAlbumCaptionOnFirstOnly(t *testing.T) {
	album := BuildAlbum([]string{"a", "b", "c"}, "report text")

	for i, item := range album {
		photo, ok := item.(*tele.Photo)
		if !ok {
			t.Fatalf("album item %d is %T, want *tele.Photo", i, item)
		}
		if i == 0 {
			if photo.Caption != "report text" {
				t.Fatalf("first caption = %q, want report text", photo.Caption)
			}
			continue
		}
		if photo.Caption != "" {
			t.Fatalf("caption leaked to item %d: %q", i, photo.Caption)
		}
	}
}
