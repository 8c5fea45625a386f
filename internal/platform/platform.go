// Package platform describes the messaging platform as seen by the moderation
// and dialogue logic: the outbound calls they make and the inbound events they consume.
// The Telegram implementation lives in internal/telegram.
package platform

import "context"

// Profile is the public profile metadata of a user at the time of the fetch.
type Profile struct {
	Bio       string
	FirstName string
	LastName  string
	Username  string
}

// MessageRef identifies a message on the platform.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Button is one inline action attached to a sent message.
type Button struct {
	Text string
	Data string
}

// SendOptions are optional parameters for SendMessage.
type SendOptions struct {
	// Keyboard rows of inline actions, nil for none.
	Keyboard [][]Button
	// ReplyTo is the message id to reply to, 0 for none.
	ReplyTo int
}

// Message is an inbound chat message.
type Message struct {
	Ref      MessageRef
	SenderID int64
	Text     string
	Caption  string
}

// Content returns the message text, falling back to the caption for media messages.
func (m Message) Content() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Action is a button press on a previously sent message.
type Action struct {
	ID     string
	UserID int64
	Data   string
	// Origin is the message carrying the pressed button. It is zero when the
	// platform no longer exposes that message.
	Origin MessageRef
}

// Client is the outbound API of the messaging platform. Implementations bound every
// call with a timeout; callers treat any returned error as a recoverable failure.
type Client interface {
	FetchProfile(ctx context.Context, userID int64) (Profile, error)
	SendMessage(ctx context.Context, chatID int64, text string, opts SendOptions) (MessageRef, error)
	SendPhoto(ctx context.Context, chatID int64, photo, caption string) (MessageRef, error)
	DeleteMessage(ctx context.Context, ref MessageRef) error
	BanMember(ctx context.Context, chatID, userID int64) error
	EditMessageText(ctx context.Context, ref MessageRef, text string) error
	AnswerAction(ctx context.Context, actionID string) error
}
