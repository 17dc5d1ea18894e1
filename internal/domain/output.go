package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	InlineLengthLimit   = 1800
	InlineLineLimit     = 20
	AttachmentByteLimit = 800_000
	MessageLimit        = 2000
)

const (
	MediaTypeText = "text/plain; charset=utf-8"
	MediaTypePNG  = "image/png"
)

type Attachment struct {
	Name      string
	Data      []byte
	MediaType string
}

type RenderedOutput struct {
	Language    string
	Inline      *string
	Attachments []Attachment
	Rejected    error
	Status      string
}

var errRenderedOutputShape = errors.New("rendered output must carry exactly one of inline text, attachments or rejection")

func (o RenderedOutput) Validate() error {
	set := 0
	if o.Inline != nil {
		set++
	}
	if len(o.Attachments) > 0 {
		set++
	}
	if o.Rejected != nil {
		set++
	}
	if set != 1 {
		return errRenderedOutputShape
	}

	for _, attachment := range o.Attachments {
		if len(attachment.Data) >= AttachmentByteLimit {
			return ErrOutputTooLarge
		}
	}
	if o.Rejected == nil {
		if n := utf8.RuneCountInString(o.Content()); n > MessageLimit {
			return fmt.Errorf("%w: reply body is %d characters", ErrOutputTooLarge, n)
		}
	}

	return nil
}

// Content composes the reply body below the author mention.
func (o RenderedOutput) Content() string {
	var b strings.Builder
	b.WriteString("\nLanguage: `")
	b.WriteString(o.Language)
	b.WriteString("`")

	switch {
	case o.Inline != nil:
		b.WriteString(*o.Inline)
	case len(o.Attachments) > 0:
		b.WriteString(" Results too large. See attached file(s).\n")
	}

	b.WriteString(o.Status)
	return b.String()
}
