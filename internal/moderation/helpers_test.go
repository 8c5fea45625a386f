package moderation_test

import (
	"context"
	"sync"

	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/moderation"
)

const (
	moderatedChat  int64 = -1001
	escalationChat int64 = -2002
)

type countingDetector struct {
	mu    sync.Mutex
	inner moderation.Detector
	calls int
}

func (d *countingDetector) IsAdvertisement(text string) bool {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	return d.inner.IsAdvertisement(text)
}

func (d *countingDetector) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type stubEvaluator struct {
	decision moderation.RiskDecision
	calls    []int64
}

func (e *stubEvaluator) Evaluate(_ context.Context, userID int64) moderation.RiskDecision {
	e.calls = append(e.calls, userID)
	return e.decision
}

type resolution struct {
	userID int64
	status string
	note   string
}

type memoryAudit struct {
	mu          sync.Mutex
	cases       []*database.EscalationCase
	resolutions []resolution
	events      []*database.ModerationEvent
}

func (m *memoryAudit) CreateEscalationCase(_ context.Context, c *database.EscalationCase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cases = append(m.cases, c)
	return nil
}

func (m *memoryAudit) ResolveEscalationCases(_ context.Context, userID int64, status, note string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions = append(m.resolutions, resolution{userID: userID, status: status, note: note})
	return 1, nil
}

func (m *memoryAudit) RecordModerationEvent(_ context.Context, e *database.ModerationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}
