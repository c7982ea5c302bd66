package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsScripts(t *testing.T) {
	out := string(Sanitize(`<p class="lead" onclick="x()">Hola<script>alert(1)</script></p>`))
	assert.Equal(t, `<p class="lead">Hola</p>`, out)
}

func TestSanitizeLinks(t *testing.T) {
	out := string(Sanitize(`<a href="https://open.spotify.com/artist/x">Spotify</a>`))
	assert.Contains(t, out, "nofollow")
	assert.Contains(t, out, "noopener")
	assert.Contains(t, out, `target="_blank"`)

	out = string(Sanitize(`<a href="javascript:alert(1)">x</a>`))
	assert.NotContains(t, out, "javascript")
}

func TestSanitizeEmbeds(t *testing.T) {
	ok := string(Sanitize(`<iframe src="https://www.youtube.com/embed/abc" width="560"></iframe>`))
	assert.Contains(t, ok, `src="https://www.youtube.com/embed/abc"`)

	bad := string(Sanitize(`<iframe src="https://evil.test/embed/abc"></iframe>`))
	assert.NotContains(t, bad, "evil.test")
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Biografía\n\nGran Rah es una banda de **Santiago**.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="`)
	assert.Contains(t, out, ">Biografía</h1>")
	assert.Contains(t, out, "<strong>Santiago</strong>")
	assert.Contains(t, out, "<table>")
}

func TestMarkdownHTMLSanitizes(t *testing.T) {
	out, err := MarkdownHTML("texto <script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>"))
	assert.Contains(t, string(out), "texto")
}
