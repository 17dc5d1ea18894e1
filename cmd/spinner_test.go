package cmd

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type countingReplier struct {
	mu      sync.Mutex
	replies []domain.Reply
}

func (r *countingReplier) Reply(_ context.Context, reply domain.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, reply)
	return nil
}

func TestRunProgressModelCountsDeliveredReplies(t *testing.T) {
	var model tea.Model = newRunProgressModel("Running 3 times on stable...", 3, nil)

	model, _ = model.Update(replyDeliveredMsg{})
	model, _ = model.Update(replyDeliveredMsg{})

	view := model.View()
	assert.Contains(t, view, "Running 3 times on stable...")
	assert.Contains(t, view, "2/3")

	model, cmd := model.Update(runsFinishedMsg{err: errors.New("boom")})
	require.NotNil(t, cmd)
	assert.Empty(t, model.View())
	assert.EqualError(t, model.(runProgressModel).err, "boom")
}

func TestRunProgressModelSingleRunHidesCount(t *testing.T) {
	view := newRunProgressModel("Running on dev...", 1, nil).View()

	assert.Contains(t, view, "Running on dev...")
	assert.NotContains(t, view, "/1")
}

func TestRunWithProgressReturnsCallResultAndForwardsReplies(t *testing.T) {
	sink := &countingReplier{}
	want := errors.New("second run failed")

	var out bytes.Buffer
	err := runWithProgress(context.Background(), &out, "Running twice...", 2, func(ctx context.Context, track func(ports.Replier) ports.Replier) error {
		replier := track(sink)
		assert.NoError(t, replier.Reply(ctx, domain.Reply{ChannelID: "console", Content: "one"}))
		assert.NoError(t, replier.Reply(ctx, domain.Reply{ChannelID: "console", Content: "two"}))
		return want
	})

	require.ErrorIs(t, err, want)
	assert.Len(t, sink.replies, 2)
}
