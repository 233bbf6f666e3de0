package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Split separates a yaml frontmatter block from the body and decodes it into
// meta. Content without frontmatter is returned whole as the body.
func Split(content string, meta any) (string, bool, error) {
	if !strings.HasPrefix(content, fence) {
		return content, false, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", false, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	if meta != nil {
		if err := yaml.Unmarshal([]byte(rest[:idx]), meta); err != nil {
			return "", false, fmt.Errorf("unmarshal frontmatter: %w", err)
		}
	}
	return rest[idx+len("\n"+fence):], true, nil
}

// Render writes meta (any yaml-marshalable value, struct field order is
// kept) as frontmatter followed by body.
func Render(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(raw)
	buf.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
