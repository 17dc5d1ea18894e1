package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

func TestEventHubDeliversToMatchingWaiter(t *testing.T) {
	hub := NewEventHub()
	got := make(chan domain.Message, 1)

	go func() {
		msg, err := hub.Next(context.Background(), func(m domain.Message) bool { return m.AuthorID == "u-1" })
		if err == nil {
			got <- msg
		}
	}()

	require.Eventually(t, func() bool { return hub.Waiting() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, hub.Publish(domain.Message{ID: "other", AuthorID: "u-2"}))
	assert.Equal(t, 1, hub.Publish(domain.Message{ID: "mine", AuthorID: "u-1"}))

	select {
	case msg := <-got:
		assert.Equal(t, "mine", msg.ID)
	case <-time.After(time.Second):
		t.Fatal("waiter did not receive message")
	}
	assert.Equal(t, 0, hub.Waiting())
}

func TestEventHubNextHonoursDeadline(t *testing.T) {
	hub := NewEventHub()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := hub.Next(ctx, func(domain.Message) bool { return true })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, hub.Waiting())
	assert.Equal(t, 0, hub.Publish(domain.Message{ID: "late"}))
}
