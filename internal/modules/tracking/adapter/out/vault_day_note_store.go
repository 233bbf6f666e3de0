package out

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"wearlog/internal/modules/tracking/domain"
	trackingout "wearlog/internal/modules/tracking/port/out"
	"wearlog/internal/platform/markdown"
)

var segmentsBlock = markdown.Block{Name: "segments"}

type dayNoteFrontmatter struct {
	Day          string  `yaml:"day"`
	Date         string  `yaml:"date"`
	GoalHours    float64 `yaml:"goal_hours"`
	Progress     float64 `yaml:"progress"`
	TotalTime    string  `yaml:"total_time"`
	IsPartialDay bool    `yaml:"partial_day"`
}

// VaultDayNoteStore writes one markdown note per day. Only the frontmatter
// and the managed segments block are regenerated; the rest of an existing
// note is kept.
type VaultDayNoteStore struct{}

func NewVaultDayNoteStore() trackingout.DayNoteStore {
	return VaultDayNoteStore{}
}

func (VaultDayNoteStore) Write(_ context.Context, dir string, note domain.DayNote) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	path := filepath.Join(dir, note.Key+".md")

	body := ""
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		body, _, err = markdown.Split(string(existing), nil)
		if err != nil {
			return "", fmt.Errorf("parse day note %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read day note: %w", err)
	default:
		body = "# " + note.Date + "\n"
	}

	body = segmentsBlock.Replace(body, renderSegments(note))
	content, err := markdown.Render(dayNoteFrontmatter{
		Day:          note.Key,
		Date:         note.Date,
		GoalHours:    note.GoalHours,
		Progress:     round1(note.Progress),
		TotalTime:    note.TotalTime,
		IsPartialDay: note.IsPartialDay,
	}, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write day note: %w", err)
	}
	return path, nil
}

func renderSegments(note domain.DayNote) string {
	var b strings.Builder
	b.WriteString("| start | end | duration |\n")
	b.WriteString("|---|---|---|\n")
	for _, row := range note.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.Start, row.End, row.Duration)
	}
	fmt.Fprintf(&b, "\n**%s** (%.1f%%)\n", note.TotalTime, note.Progress)
	return b.String()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
