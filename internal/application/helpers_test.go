package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

type recordingReplier struct {
	mu      sync.Mutex
	replies []domain.Reply
	notify  chan domain.Reply
}

func newRecordingReplier() *recordingReplier {
	return &recordingReplier{notify: make(chan domain.Reply, 64)}
}

func (r *recordingReplier) Reply(_ context.Context, reply domain.Reply) error {
	r.mu.Lock()
	r.replies = append(r.replies, reply)
	r.mu.Unlock()

	r.notify <- reply
	return nil
}

func (r *recordingReplier) next(t *testing.T) domain.Reply {
	t.Helper()

	select {
	case reply := <-r.notify:
		return reply
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
		return domain.Reply{}
	}
}

func (r *recordingReplier) all() []domain.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Reply(nil), r.replies...)
}

// deliver publishes msg once a waiter accepts it.
func deliver(t *testing.T, hub *EventHub, msg domain.Message) {
	t.Helper()

	require.Eventually(t, func() bool {
		return hub.Publish(msg) > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func ownerInput(content string) domain.Message {
	return domain.Message{ID: "in-" + content, ChannelID: "c-1", AuthorID: "u-1", Content: content}
}
