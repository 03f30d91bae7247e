package styles

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	md := "# Button\n\nA button that follows a **linked** form.\n\n- Loading state\n- Variants\n"

	out := RenderMarkdown(md, 40)
	plain := xansi.Strip(out)

	assert.Contains(t, plain, "Button")
	assert.Contains(t, plain, "Loading state")
	assert.NotContains(t, plain, "**")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, xansi.StringWidth(line), 40)
	}
}

func TestRenderMarkdownCutsLongLines(t *testing.T) {
	md := "https://example.com/" + strings.Repeat("a", 80)

	out := RenderMarkdown(md, 30)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, xansi.StringWidth(line), 30)
	}
}

func TestGetMarkdownRenderer(t *testing.T) {
	r, err := GetMarkdownRenderer(20)
	require.NoError(t, err)
	require.NotNil(t, r)
}
