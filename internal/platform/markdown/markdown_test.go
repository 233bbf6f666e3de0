package markdown_test

import (
	"strings"
	"testing"

	"wearlog/internal/platform/markdown"
)

type noteMeta struct {
	Day   string  `yaml:"day"`
	Total float64 `yaml:"total_percent"`
}

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Render(noteMeta{Day: "2024-01-02", Total: 80}, "# Day\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nday: ") || strings.Index(rendered, "day:") > strings.Index(rendered, "total_percent:") {
		t.Fatalf("unexpected frontmatter order: %q", rendered)
	}
	var meta noteMeta
	body, ok, err := markdown.Split(rendered, &meta)
	if err != nil || !ok {
		t.Fatalf("split: ok=%t err=%v", ok, err)
	}
	if meta.Total != 80 || strings.TrimSpace(body) != "# Day" {
		t.Fatalf("unexpected split result meta=%+v body=%q", meta, body)
	}
}

func TestSplitWithoutFrontmatterAndBroken(t *testing.T) {
	t.Parallel()
	body, ok, err := markdown.Split("plain", nil)
	if err != nil || ok || body != "plain" {
		t.Fatalf("unexpected result body=%q ok=%t err=%v", body, ok, err)
	}
	if _, _, err := markdown.Split("---\nday: x\n", nil); err == nil {
		t.Fatalf("expected missing fence error")
	}
}

func TestBlockReplaceKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	b := markdown.Block{Name: "segments"}
	first := b.Replace("", "- a")
	if !strings.Contains(first, "<!-- wearlog:segments:start -->\n- a\n<!-- wearlog:segments:end -->") {
		t.Fatalf("unexpected block: %q", first)
	}
	withNotes := "my notes\n\n" + first + "\nmore notes\n"
	second := b.Replace(withNotes, "- b")
	if strings.Contains(second, "- a") || !strings.Contains(second, "- b") {
		t.Fatalf("block not replaced: %q", second)
	}
	if !strings.HasPrefix(second, "my notes") || !strings.HasSuffix(second, "more notes\n") {
		t.Fatalf("surrounding text lost: %q", second)
	}
	appended := b.Replace("no newline", "- c")
	if !strings.HasPrefix(appended, "no newline\n\n<!-- wearlog:segments:start -->") {
		t.Fatalf("unexpected append: %q", appended)
	}
}
