package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

var ErrRegistryClosed = errors.New("session registry closed")

type ActiveSession struct {
	*domain.Session
	Env ports.Environment

	ctx    context.Context
	cancel context.CancelFunc
}

func (s *ActiveSession) Context() context.Context {
	return s.ctx
}

// SessionRegistry holds at most one active session per channel.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[domain.ChannelID]*ActiveSession
	clock    ports.Clock
	closed   bool
}

func NewSessionRegistry(clock ports.Clock) *SessionRegistry {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionRegistry{
		sessions: make(map[domain.ChannelID]*ActiveSession),
		clock:    clock,
	}
}

func (r *SessionRegistry) Begin(ctx context.Context, channelID domain.ChannelID, ownerID domain.PrincipalID) (*ActiveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	if _, exists := r.sessions[channelID]; exists {
		return nil, fmt.Errorf("%w: channel %s", domain.ErrSessionActive, channelID)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	active := &ActiveSession{
		Session: domain.NewSession(uuid.Must(uuid.NewV7()).String(), channelID, ownerID, r.clock.Now()),
		ctx:     sessionCtx,
		cancel:  cancel,
	}
	r.sessions[channelID] = active

	return active, nil
}

func (r *SessionRegistry) End(channelID domain.ChannelID) bool {
	r.mu.Lock()
	active, ok := r.sessions[channelID]
	if ok {
		delete(r.sessions, channelID)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	terminate(active)
	return true
}

func (r *SessionRegistry) Get(channelID domain.ChannelID) (*ActiveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active, ok := r.sessions[channelID]
	if !ok {
		return nil, fmt.Errorf("%w: channel %s", domain.ErrSessionNotFound, channelID)
	}

	return active, nil
}

func (r *SessionRegistry) Channels() []domain.ChannelID {
	r.mu.Lock()
	defer r.mu.Unlock()

	channels := make([]domain.ChannelID, 0, len(r.sessions))
	for channelID := range r.sessions {
		channels = append(channels, channelID)
	}
	slices.Sort(channels)

	return channels
}

func (r *SessionRegistry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[domain.ChannelID]*ActiveSession)
	r.closed = true
	r.mu.Unlock()

	for _, active := range sessions {
		terminate(active)
	}
}

func terminate(active *ActiveSession) {
	active.Transition(domain.SessionTerminated)
	active.cancel()
}
