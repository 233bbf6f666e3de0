package markdown

import "strings"

// Block is a generated region of a note delimited by html comments, so that
// hand-written text around it survives regeneration.
type Block struct {
	Name string
}

func (b Block) start() string { return "<!-- wearlog:" + b.Name + ":start -->" }
func (b Block) end() string   { return "<!-- wearlog:" + b.Name + ":end -->" }

// Replace swaps the block's content in body, appending the block when body
// does not contain it yet.
func (b Block) Replace(body, generated string) string {
	startMarker, endMarker := b.start(), b.end()
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(endMarker):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
