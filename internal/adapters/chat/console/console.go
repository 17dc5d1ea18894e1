// Package console adapts a terminal to the chat ports: lines typed by the
// local user become messages and replies are printed with terminal styling.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/cloudahk-cli/internal/adapters/render/reply"
	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	DefaultChannel = domain.ChannelID("console")
	fence          = "```"
)

// Reader turns terminal input into messages from a single principal. A line
// opening a fenced block keeps reading until the closing fence.
type Reader struct {
	scanner *bufio.Scanner
	channel domain.ChannelID
	author  domain.PrincipalID
}

func NewReader(r io.Reader, channel domain.ChannelID, author domain.PrincipalID) *Reader {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Reader{scanner: bufio.NewScanner(r), channel: channel, author: author}
}

func (r *Reader) Read() (domain.Message, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		content := line
		if opensBlock(line) {
			block, err := r.readBlock(line)
			if err != nil {
				return domain.Message{}, err
			}
			content = block
		}

		return domain.Message{
			ID:        uuid.Must(uuid.NewV7()).String(),
			ChannelID: r.channel,
			AuthorID:  r.author,
			Content:   content,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("read console input: %w", err)
	}
	return domain.Message{}, io.EOF
}

func (r *Reader) readBlock(first string) (string, error) {
	lines := []string{first}
	for r.scanner.Scan() {
		line := r.scanner.Text()
		lines = append(lines, line)
		if strings.TrimSpace(line) == fence {
			return strings.Join(lines, "\n"), nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", fmt.Errorf("read console input: %w", err)
	}
	return "", fmt.Errorf("read console input: unterminated code block: %w", io.ErrUnexpectedEOF)
}

// opensBlock reports whether line starts a fence without closing it.
func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.Count(trimmed, fence) == 1
}

// Replier prints styled replies to a terminal. When AttachmentDir is set,
// attachments are also written there.
type Replier struct {
	mu   sync.Mutex
	out  io.Writer
	opts ReplierOptions
}

type ReplierOptions struct {
	ShowChannel   bool
	AttachmentDir string
}

var _ ports.Replier = (*Replier)(nil)

func NewReplier(out io.Writer, opts ReplierOptions) *Replier {
	return &Replier{out: out, opts: opts}
}

func (r *Replier) Reply(ctx context.Context, msg domain.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered, err := reply.Render(msg, reply.RenderOptions{ShowChannel: r.opts.ShowChannel})
	if err != nil {
		return fmt.Errorf("render reply: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintln(r.out, rendered); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}

	if r.opts.AttachmentDir == "" {
		return nil
	}
	for _, attachment := range msg.Attachments {
		path, err := writeAttachment(r.opts.AttachmentDir, attachment)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.out, "saved %s\n", path); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}
	return nil
}

// writeAttachment stores a under dir without overwriting earlier files of
// the same name.
func writeAttachment(dir string, a domain.Attachment) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create attachment dir: %w", err)
	}

	name := filepath.Base(a.Name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create attachment: %w", err)
		}

		_, writeErr := file.Write(a.Data)
		closeErr := file.Close()
		if err := errors.Join(writeErr, closeErr); err != nil {
			return "", fmt.Errorf("write attachment %s: %w", candidate, err)
		}
		return path, nil
	}
}
