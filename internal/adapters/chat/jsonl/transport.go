// Package jsonl carries chat events and replies as JSON lines, one object
// per line, so the gateway can sit behind any chat bridge.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const maxEventBytes = 4 << 20

// ErrInvalidEvent marks a line that could not be decoded into an event. The
// reader stays usable after it.
var ErrInvalidEvent = errors.New("invalid chat event")

type Event struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	Reference *Event `json:"reference,omitempty"`
}

type ReplyEvent struct {
	ChannelID   string            `json:"channel_id"`
	ReferenceID string            `json:"reference_id,omitempty"`
	Content     string            `json:"content"`
	Attachments []AttachmentEvent `json:"attachments,omitempty"`
}

// AttachmentEvent carries file bytes; encoding/json writes Data as base64.
type AttachmentEvent struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      []byte `json:"data"`
}

func (e Event) Message() domain.Message {
	msg := domain.Message{
		ID:        e.ID,
		ChannelID: domain.ChannelID(e.ChannelID),
		AuthorID:  domain.PrincipalID(e.AuthorID),
		Content:   e.Content,
	}
	if msg.ID == "" {
		msg.ID = uuid.Must(uuid.NewV7()).String()
	}
	if e.Reference != nil {
		ref := e.Reference.Message()
		msg.Reference = &ref
	}
	return msg
}

// Reader decodes chat events from a line-oriented stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventBytes)
	return &Reader{scanner: scanner}
}

// Read returns the next event. Blank lines are skipped and io.EOF marks the
// end of the stream.
func (r *Reader) Read() (domain.Message, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(text), &event); err != nil {
			return domain.Message{}, fmt.Errorf("%w on line %d: %w", ErrInvalidEvent, r.line, err)
		}
		if event.ChannelID == "" || event.AuthorID == "" {
			return domain.Message{}, fmt.Errorf("%w on line %d: channel_id and author_id are required", ErrInvalidEvent, r.line)
		}

		return event.Message(), nil
	}

	if err := r.scanner.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("read events: %w", err)
	}
	return domain.Message{}, io.EOF
}

// Replier writes replies as JSON lines. It is safe for concurrent use.
type Replier struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ ports.Replier = (*Replier)(nil)

func NewReplier(w io.Writer) *Replier {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Replier{enc: enc}
}

func (r *Replier) Reply(ctx context.Context, reply domain.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := ReplyEvent{
		ChannelID:   string(reply.ChannelID),
		ReferenceID: reply.ReferenceID,
		Content:     reply.Content,
	}
	for _, attachment := range reply.Attachments {
		event.Attachments = append(event.Attachments, AttachmentEvent{
			Name:      attachment.Name,
			MediaType: attachment.MediaType,
			Data:      attachment.Data,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(event); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}
