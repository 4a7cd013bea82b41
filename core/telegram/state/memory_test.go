package state

import (
	"testing"
)

func TestMemoryManagerDefaults(t *testing.T) {
	m := NewMemoryManager()

	st, data := m.Get(1)
	if st != StateIdle {
		t.Fatalf("expected idle state for unknown user, got %q", st)
	}
	if data == nil {
		t.Fatal("expected non-nil data for unknown user")
	}
	if m.InProgress(1) {
		t.Fatal("unknown user must not be in progress")
	}
}

func TestMemoryManagerApplyMergesPatch(t *testing.T) {
	m := NewMemoryManager()

	m.Apply(7, State("collecting"), map[string]any{"name": "Ivan"})
	m.Apply(7, State("collecting"), map[string]any{"city": "Воронеж"})

	st, data := m.Get(7)
	if st != State("collecting") {
		t.Fatalf("state = %q, want collecting", st)
	}
	if data["name"] != "Ivan" {
		t.Fatalf("patch merge dropped earlier key: %v", data)
	}
	if data["city"] != "Воронеж" {
		t.Fatalf("patch merge missing new key: %v", data)
	}
}

func TestMemoryManagerGetReturnsCopy(t *testing.T) {
	m := NewMemoryManager()
	m.Apply(3, State("step"), map[string]any{"k": "v"})

	_, data := m.Get(3)
	data["k"] = "mutated"

	_, again := m.Get(3)
	if again["k"] != "v" {
		t.Fatalf("Get must return a copy of scratch data, got %v", again)
	}
}

func TestMemoryManagerSetStateKeepsData(t *testing.T) {
	m := NewMemoryManager()
	m.Apply(5, State("a"), map[string]any{"x": int64(10)})
	m.SetState(5, State("b"))

	st, data := m.Get(5)
	if st != State("b") {
		t.Fatalf("state = %q, want b", st)
	}
	if data["x"] != int64(10) {
		t.Fatalf("SetState must not drop scratch data, got %v", data)
	}
}

func TestMemoryManagerClear(t *testing.T) {
	m := NewMemoryManager()
	m.Apply(9, State("busy"), map[string]any{"k": "v"})
	if !m.InProgress(9) {
		t.Fatal("expected in-progress session")
	}

	m.Clear(9)

	if m.InProgress(9) {
		t.Fatal("cleared session must not be in progress")
	}
	st, data := m.Get(9)
	if st != StateIdle || len(data) != 0 {
		t.Fatalf("cleared session must be idle and empty, got %q %v", st, data)
	}
}
