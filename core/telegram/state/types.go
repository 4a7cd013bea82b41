package state

// State identifies a conversation step for a user.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and scratch data for a user.
type Session struct {
	State State          `json:"state"`
	Data  map[string]any `json:"data"`
}

// Manager keeps per-user conversation sessions.
//
// Get never returns nil data. Apply merges the patch into the existing
// scratch data rather than replacing it, so a step can add one key without
// re-reading the whole session.
type Manager interface {
	Get(userID int64) (State, map[string]any)
	Apply(userID int64, st State, patch map[string]any)
	SetState(userID int64, st State)
	GetState(userID int64) State
	Clear(userID int64)
	InProgress(userID int64) bool
}
