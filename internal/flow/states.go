package flow

import "github.com/vyborpervykh/estatebot/core/telegram/state"

// Conversation states. A user is in at most one of these; everything else
// is state.StateIdle.
const (
	StateRegName         state.State = "reg_name"
	StateRegPhone        state.State = "reg_phone"
	StateEvalCity        state.State = "eval_city"
	StateEvalRooms       state.State = "eval_rooms"
	StateEvalPhotos      state.State = "eval_photos"
	StateJobInfo         state.State = "job_info"
	StateAgentQuestion   state.State = "agent_question"
	StateMortgageAmount  state.State = "mortgage_amount"
	StateMortgagePayment state.State = "mortgage_payment"
)

// Scratch data keys used between steps of one conversation.
const (
	keyName     = "name"
	keyReferrer = "referrer"
	keyCity     = "city"
	keyRooms    = "rooms"
	keyPhotos   = "photos"
	keyAmount   = "amount"
)

// DefaultReferrer marks clients who opened the bot without a deep link.
const DefaultReferrer = "Прямой заход"
