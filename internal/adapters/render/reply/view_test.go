package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

func TestRenderInlineReply(t *testing.T) {
	output, err := Render(domain.Reply{
		ChannelID: "general",
		Content:   "<@42>\nLanguage: `ahk`\n```ahk\nhello\n```\n`Processing time: 0.1 seconds`\n*CloudAHK Backend Variant: `stable`*",
	}, RenderOptions{ShowChannel: true})

	require.NoError(t, err)
	assert.Contains(t, output, "#general")
	assert.Contains(t, output, "<@42>")
	assert.Contains(t, output, "hello")
	assert.Contains(t, output, "Processing time: 0.1 seconds")
	assert.Contains(t, output, "Backend Variant")
}

func TestRenderReplyListsAttachments(t *testing.T) {
	output, err := Render(domain.Reply{
		Content: "Language: `ahk` Results too large. See attached file(s).",
		Attachments: []domain.Attachment{
			{Name: "img.png", Data: make([]byte, 2048), MediaType: domain.MediaTypePNG},
			{Name: "results.txt", Data: []byte("abc"), MediaType: domain.MediaTypeText},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "[attachment] img.png (2.0 KiB, image/png)")
	assert.Contains(t, output, "[attachment] results.txt (3 B, text/plain; charset=utf-8)")
	assert.NotContains(t, output, "#")
}

func TestRenderVariants(t *testing.T) {
	output, err := RenderVariants([]domain.Variant{
		{Name: domain.VariantBeta, Protocol: domain.ProtocolFormRun, Language: "ahk"},
		{Name: domain.VariantStable, Protocol: domain.ProtocolFormRun, BaseURL: "https://cloudahk.example", Language: "ahk"},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "variants: 2")
	assert.Contains(t, output, "https://cloudahk.example")
	assert.Contains(t, output, "[unconfigured]")
}

func TestRenderVariantsEmpty(t *testing.T) {
	output, err := RenderVariants(nil)

	require.NoError(t, err)
	assert.Contains(t, output, "No backend variants configured.")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2<<20))
}
