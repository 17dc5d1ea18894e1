package domain

import (
	"sync"
	"time"
)

type ChannelID string
type PrincipalID string

type SessionState string

const (
	SessionAwaitingInput SessionState = "awaiting_input"
	SessionExecuting     SessionState = "executing"
	SessionTerminated    SessionState = "terminated"
)

const DefaultIdleTimeout = 10 * 60 * time.Second

type Session struct {
	ID        string
	ChannelID ChannelID
	OwnerID   PrincipalID
	CreatedAt time.Time

	mu             sync.RWMutex
	state          SessionState
	lastActivityAt time.Time
}

func NewSession(id string, channelID ChannelID, ownerID PrincipalID, now time.Time) *Session {
	return &Session{
		ID:             id,
		ChannelID:      channelID,
		OwnerID:        ownerID,
		CreatedAt:      now,
		state:          SessionAwaitingInput,
		lastActivityAt: now,
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) LastActivityAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivityAt
}

// Transition moves the session to next. A terminated session stays terminated.
func (s *Session) Transition(next SessionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionTerminated {
		return false
	}
	s.state = next
	return true
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivityAt = now
}

type TurnMode string

const (
	TurnModeEvaluate TurnMode = "evaluate"
	TurnModeExecute  TurnMode = "execute"
)

type Turn struct {
	Input    string
	Mode     TurnMode
	Output   string
	Value    string
	Result   any
	HasValue bool
	Fault    string
}
