// Package platformtest provides an in-memory platform.Client that records every call.
package platformtest

import (
	"context"
	"sync"
	"time"

	"github.com/edgard/guardbot/internal/platform"
)

// SentMessage is a recorded SendMessage or SendPhoto call.
type SentMessage struct {
	Ref     platform.MessageRef
	Text    string
	Photo   string
	Options platform.SendOptions
}

// Ban is a recorded BanMember call.
type Ban struct {
	ChatID int64
	UserID int64
}

// Edit is a recorded EditMessageText call.
type Edit struct {
	Ref  platform.MessageRef
	Text string
}

// Fake implements platform.Client. Set the *Err fields to make the matching call fail.
type Fake struct {
	mu sync.Mutex

	Profiles map[int64]platform.Profile
	// FetchDelay is slept before FetchProfile answers, outside the lock.
	FetchDelay time.Duration

	FetchErr  error
	SendErr   error
	PhotoErr  error
	DeleteErr error
	BanErr    error
	EditErr   error
	AnswerErr error

	Fetched  []int64
	Sent     []SentMessage
	Deleted  []platform.MessageRef
	Bans     []Ban
	Edits    []Edit
	Answered []string
	// Calls lists method names in call order.
	Calls []string

	nextID int
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{Profiles: make(map[int64]platform.Profile)}
}

func (f *Fake) record(name string) {
	f.Calls = append(f.Calls, name)
}

func (f *Fake) FetchProfile(_ context.Context, userID int64) (platform.Profile, error) {
	f.mu.Lock()
	delay := f.FetchDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchProfile")
	f.Fetched = append(f.Fetched, userID)
	if f.FetchErr != nil {
		return platform.Profile{}, f.FetchErr
	}
	return f.Profiles[userID], nil
}

func (f *Fake) SendMessage(_ context.Context, chatID int64, text string, opts platform.SendOptions) (platform.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SendMessage")
	if f.SendErr != nil {
		return platform.MessageRef{}, f.SendErr
	}
	f.nextID++
	ref := platform.MessageRef{ChatID: chatID, MessageID: f.nextID}
	f.Sent = append(f.Sent, SentMessage{Ref: ref, Text: text, Options: opts})
	return ref, nil
}

func (f *Fake) SendPhoto(_ context.Context, chatID int64, photo, caption string) (platform.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SendPhoto")
	if f.PhotoErr != nil {
		return platform.MessageRef{}, f.PhotoErr
	}
	f.nextID++
	ref := platform.MessageRef{ChatID: chatID, MessageID: f.nextID}
	f.Sent = append(f.Sent, SentMessage{Ref: ref, Text: caption, Photo: photo})
	return ref, nil
}

func (f *Fake) DeleteMessage(_ context.Context, ref platform.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteMessage")
	f.Deleted = append(f.Deleted, ref)
	return f.DeleteErr
}

func (f *Fake) BanMember(_ context.Context, chatID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BanMember")
	f.Bans = append(f.Bans, Ban{ChatID: chatID, UserID: userID})
	return f.BanErr
}

func (f *Fake) EditMessageText(_ context.Context, ref platform.MessageRef, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("EditMessageText")
	f.Edits = append(f.Edits, Edit{Ref: ref, Text: text})
	return f.EditErr
}

func (f *Fake) AnswerAction(_ context.Context, actionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AnswerAction")
	f.Answered = append(f.Answered, actionID)
	return f.AnswerErr
}
