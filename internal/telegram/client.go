package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/guardbot/internal/platform"
)

var (
	// ErrRejected is returned when the Bot API answers a call with false.
	ErrRejected = errors.New("request rejected by telegram")
	// ErrNotBound is returned by calls made before Bind.
	ErrNotBound = errors.New("telegram client not bound to a bot")
)

// Client implements platform.Client over the Bot API. Every call is bounded
// by the configured timeout.
//
// The client is created before the bot it wraps, because the bot's middleware
// and handlers already hold it; Bind attaches the bot once it exists.
type Client struct {
	b       atomic.Pointer[bot.Bot]
	timeout time.Duration
}

var _ platform.Client = (*Client)(nil)

// NewClient creates an unbound client. A non-positive timeout leaves calls
// bounded only by the caller's context.
func NewClient(timeout time.Duration) *Client {
	return &Client{timeout: timeout}
}

// Bind attaches b.
func (c *Client) Bind(b *bot.Bot) {
	c.b.Store(b)
}

func (c *Client) api(ctx context.Context) (*bot.Bot, context.Context, context.CancelFunc, error) {
	b := c.b.Load()
	if b == nil {
		return nil, ctx, func() {}, ErrNotBound
	}
	if c.timeout <= 0 {
		callCtx, cancel := context.WithCancel(ctx)
		return b, callCtx, cancel, nil
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	return b, callCtx, cancel, nil
}

// FetchProfile returns the public profile of userID.
func (c *Client) FetchProfile(ctx context.Context, userID int64) (platform.Profile, error) {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return platform.Profile{}, err
	}

	chat, err := b.GetChat(ctx, &bot.GetChatParams{ChatID: userID})
	if err != nil {
		return platform.Profile{}, fmt.Errorf("failed to get chat %d: %w", userID, err)
	}
	return platform.Profile{
		Bio:       chat.Bio,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
		Username:  chat.Username,
	}, nil
}

// SendMessage sends text to chatID.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts platform.SendOptions) (platform.MessageRef, error) {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return platform.MessageRef{}, err
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if len(opts.Keyboard) > 0 {
		params.ReplyMarkup = inlineKeyboard(opts.Keyboard)
	}
	if opts.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{MessageID: opts.ReplyTo}
	}

	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		return platform.MessageRef{}, fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}
	return platform.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// SendPhoto sends an already uploaded photo with caption.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo, caption string) (platform.MessageRef, error) {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return platform.MessageRef{}, err
	}

	msg, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: photo},
		Caption: caption,
	})
	if err != nil {
		return platform.MessageRef{}, fmt.Errorf("failed to send photo to %d: %w", chatID, err)
	}
	return platform.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// DeleteMessage deletes ref.
func (c *Client) DeleteMessage(ctx context.Context, ref platform.MessageRef) error {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return err
	}

	ok, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: ref.ChatID, MessageID: ref.MessageID})
	if err != nil {
		return fmt.Errorf("failed to delete message %d in %d: %w", ref.MessageID, ref.ChatID, err)
	}
	if !ok {
		return fmt.Errorf("failed to delete message %d in %d: %w", ref.MessageID, ref.ChatID, ErrRejected)
	}
	return nil
}

// BanMember bans userID from chatID.
func (c *Client) BanMember(ctx context.Context, chatID, userID int64) error {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return err
	}

	ok, err := b.BanChatMember(ctx, &bot.BanChatMemberParams{ChatID: chatID, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to ban %d in %d: %w", userID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("failed to ban %d in %d: %w", userID, chatID, ErrRejected)
	}
	return nil
}

// EditMessageText replaces the text of ref and drops its keyboard.
func (c *Client) EditMessageText(ctx context.Context, ref platform.MessageRef, text string) error {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return err
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    ref.ChatID,
		MessageID: ref.MessageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("failed to edit message %d in %d: %w", ref.MessageID, ref.ChatID, err)
	}
	return nil
}

// AnswerAction acknowledges a callback query.
func (c *Client) AnswerAction(ctx context.Context, actionID string) error {
	b, ctx, cancel, err := c.api(ctx)
	defer cancel()
	if err != nil {
		return err
	}

	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: actionID}); err != nil {
		return fmt.Errorf("failed to answer callback %s: %w", actionID, err)
	}
	return nil
}

func inlineKeyboard(rows [][]platform.Button) *models.InlineKeyboardMarkup {
	keyboard := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: btn.Text, CallbackData: btn.Data})
		}
		keyboard = append(keyboard, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
