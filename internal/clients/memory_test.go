package clients

import (
	"context"
	"testing"
)

func TestMemoryStoreAbsentClient(t *testing.T) {
	s := NewMemoryStore()

	client, err := s.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil for unknown client, got %+v", client)
	}
}

func TestMemoryStoreUpsertReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := Client{TelegramID: 1, Name: "Иван", Phone: "79991234567", Username: "@ivan", Referrer: "Прямой заход"}
	if err := s.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := Client{TelegramID: 1, Name: "Пётр", Phone: "79990000000", Username: "Скрыт", Referrer: "12345"}
	if err := s.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored client")
	}
	if got.Name != "Пётр" || got.Phone != "79990000000" || got.Referrer != "12345" {
		t.Fatalf("re-registration must replace all fields, got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at must be set")
	}
	if got.CreatedAt.After(got.UpdatedAt) {
		t.Fatal("created_at must be preserved across upserts")
	}
}
