package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML(t *testing.T) {
	assert.Equal(t, "", RenderHTML("   "))
	assert.Contains(t, RenderHTML("# Title\n\nsome **bold**"), "<strong>bold</strong>")
	assert.Contains(t, RenderHTML("~~gone~~"), "<del>gone</del>")
}

func TestPlainText(t *testing.T) {
	md := "# 标题\n\n第一段 **加粗** 和 [链接](https://example.com)。\n\n```go\nfmt.Println(1)\n```\n\n- a\n- b & c\n\n<script>alert(1)</script>"
	got := PlainText(md)

	assert.Equal(t, "标题 第一段 加粗 和 链接。 a b & c", got)
	assert.NotContains(t, got, "Println")
	assert.NotContains(t, got, "<")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", Excerpt("short *text*", 200))

	long := strings.Repeat("字", 300)
	got := Excerpt(long, 200)
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, 200, utf8.RuneCountInString(Excerpt(long, 0)))
}
