package handlers

import (
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/guardbot/internal/platform"
)

// toMessage converts a Telegram message. Messages without a user sender
// (channel posts, anonymous admins) get the sender chat id instead.
func toMessage(m *models.Message) platform.Message {
	msg := platform.Message{
		Ref:     platform.MessageRef{ChatID: m.Chat.ID, MessageID: m.ID},
		Text:    m.Text,
		Caption: m.Caption,
	}
	switch {
	case m.From != nil:
		msg.SenderID = m.From.ID
	case m.SenderChat != nil:
		msg.SenderID = m.SenderChat.ID
	}
	return msg
}

// toAction converts a callback query. Origin stays zero when the message
// carrying the button is no longer accessible.
func toAction(cq *models.CallbackQuery) platform.Action {
	action := platform.Action{
		ID:     cq.ID,
		UserID: cq.From.ID,
		Data:   cq.Data,
	}
	switch {
	case cq.Message.Message != nil:
		action.Origin = platform.MessageRef{ChatID: cq.Message.Message.Chat.ID, MessageID: cq.Message.Message.ID}
	case cq.Message.InaccessibleMessage != nil:
		action.Origin = platform.MessageRef{ChatID: cq.Message.InaccessibleMessage.Chat.ID}
	}
	return action
}

// largestPhoto returns the file id of the biggest size of a photo message.
func largestPhoto(m *models.Message) string {
	if m == nil || len(m.Photo) == 0 {
		return ""
	}
	best := m.Photo[0]
	for _, p := range m.Photo[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best.FileID
}

// commandArgs returns the text after the leading command. The command ends at
// the first whitespace, so arguments may start on a new line.
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}

func isCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}
