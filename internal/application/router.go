package application

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

const (
	codeFence        = "```"
	escapedCodeFence = "`\u200b``"
	noOutputBody     = " `No Output.`\n"
	textAttachment   = "results.txt"
	imageAttachment  = "img.png"
)

type Router struct {
	logger *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	return &Router{logger: loggerOrDiscard(logger)}
}

func (r *Router) Render(result domain.ExecutionResult, variant domain.VariantName, wantsImage bool) domain.RenderedOutput {
	out := domain.RenderedOutput{
		Language: result.Language,
		Status:   StatusLine(result, variant),
	}

	if len(result.Stdout) >= domain.AttachmentByteLimit {
		out.Rejected = fmt.Errorf("%w: %d bytes", domain.ErrOutputTooLarge, len(result.Stdout))
		return out
	}

	stdout := strings.TrimSpace(string(result.Stdout))
	if fitsInline(stdout) {
		inline := FenceBlock(stdout, result.Language)
		out.Inline = &inline
		if utf8.RuneCountInString(out.Content()) <= domain.MessageLimit {
			return out
		}
		out.Inline = nil
	}

	out.Attachments = r.attachments(stdout, variant, wantsImage)
	return out
}

func fitsInline(stdout string) bool {
	limit := float64(domain.InlineLengthLimit) - float64(strings.Count(stdout, codeFence))*4/3

	return float64(utf8.RuneCountInString(stdout)) < limit &&
		strings.Count(stdout, "\n") < domain.InlineLineLimit &&
		strings.Count(stdout, "\r") < domain.InlineLineLimit
}

func (r *Router) attachments(stdout string, variant domain.VariantName, wantsImage bool) []domain.Attachment {
	files := make([]domain.Attachment, 0, 2)
	if wantsImage {
		image, err := decodeImage(stdout)
		if err != nil {
			r.logger.Debug("image attachment skipped", slog.String("variant", string(variant)), slog.Any("error", err))
		} else {
			files = append(files, image)
		}
	}

	return append(files, domain.Attachment{
		Name:      textAttachment,
		Data:      []byte(stdout),
		MediaType: domain.MediaTypeText,
	})
}

func decodeImage(stdout string) (domain.Attachment, error) {
	data, err := base64.StdEncoding.DecodeString(stdout)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("decode image payload: %w", err)
	}

	if mediaType := http.DetectContentType(data); !strings.HasPrefix(mediaType, "image/") {
		return domain.Attachment{}, fmt.Errorf("decoded payload is %s, not an image", mediaType)
	}

	return domain.Attachment{Name: imageAttachment, Data: data, MediaType: domain.MediaTypePNG}, nil
}

// FenceBlock wraps text in a code block tagged with language. Triple
// backticks inside text are broken with a zero-width space so the block
// cannot be closed early.
func FenceBlock(text, language string) string {
	if text == "" {
		return noOutputBody
	}

	return "\n" + codeFence + language + "\n" + EscapeFences(text) + "\n" + codeFence + "\n"
}

func EscapeFences(text string) string {
	for strings.Contains(text, codeFence) {
		text = strings.ReplaceAll(text, codeFence, escapedCodeFence)
	}
	return text
}

func StatusLine(result domain.ExecutionResult, variant domain.VariantName) string {
	var timing string
	switch {
	case result.Elapsed != nil:
		timing = fmt.Sprintf("Processing time: %.1f seconds", result.Elapsed.Seconds())
	case result.ReturnCode != nil:
		timing = fmt.Sprintf("Return code: %d", *result.ReturnCode)
	default:
		timing = "Processing time: Timed out"
	}

	return fmt.Sprintf("`%s`\n*CloudAHK Backend Variant: `%s`*", timing, variant)
}
