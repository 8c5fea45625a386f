// Package dialogue implements the lottery wizard: a per-user linear state
// machine that collects a campaign configuration over several turns.
package dialogue

import "fmt"

// State is the step a user's dialogue is waiting on.
type State int

const (
	WaitingChannels State = iota
	CheckingPermissions
	WaitingMessage
	WaitingPhoto
	WaitingStartTime
	WaitingEndTime
	WaitingWinnersCount
	WaitingSettings
	Confirmation
)

var stateNames = [...]string{
	WaitingChannels:     "waiting_channels",
	CheckingPermissions: "checking_permissions",
	WaitingMessage:      "waiting_message",
	WaitingPhoto:        "waiting_photo",
	WaitingStartTime:    "waiting_start_time",
	WaitingEndTime:      "waiting_end_time",
	WaitingWinnersCount: "waiting_winners_count",
	WaitingSettings:     "waiting_settings",
	Confirmation:        "confirmation",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// InputKind distinguishes text replies from button presses.
type InputKind int

const (
	InputText InputKind = iota + 1
	InputAction
)

func (k InputKind) String() string {
	switch k {
	case InputText:
		return "text"
	case InputAction:
		return "action"
	default:
		return "unknown"
	}
}

// Input is one user event addressed to the dialogue.
type Input struct {
	Kind InputKind
	// ChatID is where replies go.
	ChatID int64
	Text   string
	// Action is the button data for InputAction.
	Action string
}

// TextInput builds a text reply input.
func TextInput(chatID int64, text string) Input {
	return Input{Kind: InputText, ChatID: chatID, Text: text}
}

// ActionInput builds a button press input.
func ActionInput(chatID int64, action string) Input {
	return Input{Kind: InputAction, ChatID: chatID, Action: action}
}
