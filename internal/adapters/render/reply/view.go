package reply

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

type RenderOptions struct {
	// ShowChannel prefixes the reply with the channel it was addressed to.
	ShowChannel bool
}

// Render formats a chat reply for a terminal.
func Render(reply domain.Reply, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderReply(reply, opts, s)
	})
}

// RenderVariants formats the configured backend variants as a listing.
func RenderVariants(variants []domain.Variant) (string, error) {
	return run(func(s styles) string {
		return renderVariants(variants, s)
	})
}

func renderReply(reply domain.Reply, opts RenderOptions, s styles) string {
	lines := make([]string, 0, 4)
	if opts.ShowChannel {
		lines = append(lines, s.header.Render(fmt.Sprintf("#%s", reply.ChannelID)))
	}

	lines = append(lines, renderContent(reply.Content, s)...)

	for _, attachment := range reply.Attachments {
		lines = append(lines, s.attachment.Render(attachmentLine(attachment)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderContent styles fenced blocks apart from the surrounding prose.
func renderContent(content string, s styles) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	inFence := false

	for _, line := range raw {
		switch {
		case strings.HasPrefix(line, "```"):
			inFence = !inFence
			lines = append(lines, s.fence.Render(line))
		case inFence:
			lines = append(lines, s.code.Render(line))
		case strings.HasPrefix(line, "<@"):
			mention, rest, _ := strings.Cut(line, ">")
			lines = append(lines, s.mention.Render(mention+">")+s.text.Render(rest))
		case isStatusLine(line):
			lines = append(lines, s.status.Render(line))
		default:
			lines = append(lines, s.text.Render(line))
		}
	}

	return lines
}

func isStatusLine(line string) bool {
	return strings.HasPrefix(line, "`Processing time:") ||
		strings.HasPrefix(line, "`Return code:") ||
		strings.HasPrefix(line, "*CloudAHK Backend Variant:")
}

func attachmentLine(a domain.Attachment) string {
	mediaType := a.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return fmt.Sprintf("[attachment] %s (%s, %s)", a.Name, formatBytes(len(a.Data)), mediaType)
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func renderVariants(variants []domain.Variant, s styles) string {
	lines := []string{
		s.title.Render("Backend Variants"),
		s.header.Render(fmt.Sprintf("variants: %d", len(variants))),
	}

	if len(variants) == 0 {
		lines = append(lines, s.empty.Render("No backend variants configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, variant := range variants {
		name := s.variant.Render(string(variant.Name))
		detail := s.detail.Render(fmt.Sprintf("%s  %s  lang=%s", variant.Protocol, endpointLabel(variant), variant.Language))
		line := lipgloss.JoinHorizontal(lipgloss.Top, name, "  ", detail)
		if !variant.Configured() {
			line += " " + s.warning.Render("[unconfigured]")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func endpointLabel(v domain.Variant) string {
	if v.BaseURL == "" {
		return "-"
	}
	return v.BaseURL
}
