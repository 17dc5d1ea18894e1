package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/adapters/eval/js"
	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports/mocks"
)

type turnFixture struct {
	hub      *EventHub
	sessions *SessionRegistry
	replier  *recordingReplier
	engine   *TurnEngine
	trigger  domain.Message
	active   *ActiveSession
	done     chan error
}

func startTurnFixture(t *testing.T, idle time.Duration) *turnFixture {
	t.Helper()

	f := &turnFixture{
		hub:      NewEventHub(),
		sessions: NewSessionRegistry(nil),
		replier:  newRecordingReplier(),
		trigger:  domain.Message{ID: "m-0", ChannelID: "c-1", AuthorID: "u-1", Content: "=repl"},
		done:     make(chan error, 1),
	}
	f.engine = NewTurnEngine(f.sessions, js.NewEvaluator(), f.hub, f.replier, TurnEngineOptions{IdleTimeout: idle})

	active, err := f.engine.Start(context.Background(), f.trigger)
	require.NoError(t, err)
	f.active = active
	assert.Equal(t, msgSessionStart, f.replier.next(t).Content)

	go func() { f.done <- f.engine.Serve(active, f.trigger) }()
	t.Cleanup(func() { f.sessions.Close() })

	return f
}

func (f *turnFixture) wait(t *testing.T) error {
	t.Helper()

	select {
	case err := <-f.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
		return nil
	}
}

func TestTurnEnginePersistsStateAcrossTurns(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("`x = 5`"))
	deliver(t, f.hub, ownerInput("`x + 1`"))

	reply := f.replier.next(t)
	assert.Equal(t, "```js\n6\n```", reply.Content)
	assert.Equal(t, "in-`x + 1`", reply.ReferenceID)
}

func TestTurnEngineBindsLastResult(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("`40 + 2`"))
	assert.Equal(t, "```js\n42\n```", f.replier.next(t).Content)

	deliver(t, f.hub, ownerInput("`_ + 1`"))
	assert.Equal(t, "```js\n43\n```", f.replier.next(t).Content)
}

func TestTurnEngineOutputAndFault(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("```js\nprint('hi')\nnull.x\n```"))

	content := f.replier.next(t).Content
	assert.True(t, strings.HasPrefix(content, "```js\nhi\nTypeError"), content)
	assert.True(t, strings.HasSuffix(content, "\n```"), content)
}

func TestTurnEngineSyntaxErrorKeepsSession(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("`if (`"))
	assert.True(t, strings.HasPrefix(f.replier.next(t).Content, "```js\nsyntax error"))

	deliver(t, f.hub, ownerInput("`1`"))
	assert.Equal(t, "```js\n1\n```", f.replier.next(t).Content)
}

func TestTurnEngineTooLargeOutput(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("`'a'.repeat(3000)`"))
	assert.Equal(t, msgTurnTooLarge, f.replier.next(t).Content)
}

func TestTurnEngineIgnoresOtherAuthorsAndPlainText(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	require.Eventually(t, func() bool { return f.hub.Waiting() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, f.hub.Publish(domain.Message{ChannelID: "c-1", AuthorID: "u-2", Content: "`1`"}))
	assert.Equal(t, 0, f.hub.Publish(domain.Message{ChannelID: "c-1", AuthorID: "u-1", Content: "1"}))
	assert.Equal(t, 0, f.hub.Publish(domain.Message{ChannelID: "c-2", AuthorID: "u-1", Content: "`1`"}))
}

func TestTurnEngineExitKeyword(t *testing.T) {
	for _, keyword := range []string{"`quit`", "`exit`", "```\nexit()\n```"} {
		t.Run(keyword, func(t *testing.T) {
			f := startTurnFixture(t, time.Minute)

			deliver(t, f.hub, ownerInput(keyword))
			assert.Equal(t, msgSessionExit, f.replier.next(t).Content)
			require.NoError(t, f.wait(t))

			_, err := f.sessions.Get("c-1")
			require.ErrorIs(t, err, domain.ErrSessionNotFound)
		})
	}
}

func TestTurnEngineIdleTimeout(t *testing.T) {
	f := startTurnFixture(t, 30*time.Millisecond)

	err := f.wait(t)
	require.ErrorIs(t, err, domain.ErrSessionTimeout)
	reply := f.replier.next(t)
	assert.Equal(t, msgSessionTimeout, reply.Content)
	assert.Equal(t, "m-0", reply.ReferenceID)
	assert.Equal(t, domain.SessionTerminated, f.active.State())

	_, err = f.sessions.Get("c-1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	next, err := f.sessions.Begin(context.Background(), "c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionAwaitingInput, next.State())
	assert.NotEqual(t, f.active.ID, next.ID)
}

func TestTurnEngineEndedElsewhereStopsQuietly(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	require.Eventually(t, func() bool { return f.hub.Waiting() == 1 }, time.Second, time.Millisecond)
	f.sessions.End("c-1")

	require.NoError(t, f.wait(t))
	assert.Len(t, f.replier.all(), 1, "only the greeting was sent")
}

func TestTurnEngineSecondSessionRejectedAndFirstUntouched(t *testing.T) {
	f := startTurnFixture(t, time.Minute)

	deliver(t, f.hub, ownerInput("`y = 7`"))
	require.Eventually(t, func() bool { return f.hub.Waiting() == 1 }, time.Second, time.Millisecond)

	_, err := f.engine.Start(context.Background(), f.trigger)
	require.ErrorIs(t, err, domain.ErrSessionActive)

	value, ok := f.active.Env.Get("y")
	require.True(t, ok)
	assert.EqualValues(t, 7, value)
}

func TestTurnEngineStartEnvironmentFailureReleasesChannel(t *testing.T) {
	evaluator := mocks.NewMockEvaluator(t)
	evaluator.EXPECT().NewEnvironment(mock.Anything).Return(nil, errors.New("boom")).Once()
	sessions := NewSessionRegistry(nil)
	engine := NewTurnEngine(sessions, evaluator, NewEventHub(), newRecordingReplier(), TurnEngineOptions{})

	_, err := engine.Start(context.Background(), domain.Message{ChannelID: "c-1", AuthorID: "u-1"})
	require.Error(t, err)
	assert.Empty(t, sessions.Channels())
}

func TestTurnEngineUnexpectedRunErrorIsReported(t *testing.T) {
	env := mocks.NewMockEnvironment(t)
	env.EXPECT().Set("message", mock.Anything).Return(nil)
	env.EXPECT().Run(mock.Anything, "boom()").Return(domain.Turn{}, errors.New("engine broke")).Once()

	evaluator := mocks.NewMockEvaluator(t)
	evaluator.EXPECT().NewEnvironment(mock.Anything).Return(env, nil).Once()

	hub := NewEventHub()
	replier := newRecordingReplier()
	sessions := NewSessionRegistry(nil)
	engine := NewTurnEngine(sessions, evaluator, hub, replier, TurnEngineOptions{IdleTimeout: time.Minute})
	trigger := domain.Message{ID: "m-0", ChannelID: "c-1", AuthorID: "u-1"}

	active, err := engine.Start(context.Background(), trigger)
	require.NoError(t, err)
	replier.next(t)

	done := make(chan error, 1)
	go func() { done <- engine.Serve(active, trigger) }()

	deliver(t, hub, ownerInput("`boom()`"))
	assert.Equal(t, msgGenericFailure, replier.next(t).Content)

	deliver(t, hub, ownerInput("`quit`"))
	assert.Equal(t, msgSessionExit, replier.next(t).Content)
	require.NoError(t, <-done)
}

func TestFormatTurn(t *testing.T) {
	body, ok := FormatTurn(domain.Turn{})
	assert.False(t, ok)
	assert.Empty(t, body)

	body, ok = FormatTurn(domain.Turn{Output: "a\n"})
	assert.True(t, ok)
	assert.Equal(t, "```js\na\n\n```", body)

	body, ok = FormatTurn(domain.Turn{Output: "a\n", Value: "1", HasValue: true})
	assert.True(t, ok)
	assert.Equal(t, "```js\na\n1\n```", body)

	body, ok = FormatTurn(domain.Turn{Value: "ignored", HasValue: true, Fault: "Error: x"})
	assert.True(t, ok)
	assert.Equal(t, "```js\nError: x\n```", body)
}
