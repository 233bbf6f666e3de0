// Package locale renders day labels and short user-facing messages for the
// configured BCP 47 locale. Only French and English catalogs exist; any
// other tag is matched to the closest of the two.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.French, language.AmericanEnglish}

var matcher = language.NewMatcher(supported)

var monthNames = map[language.Tag][12]string{
	language.French: {
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	language.AmericanEnglish: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// Message keys. The English text doubles as the key.
const (
	MsgEndsAt      = "ends at %s"
	MsgGoalReached = "goal reached, +%s"
	MsgNotWearing  = "not wearing"
	MsgWearingFor  = "wearing since %s"
	MsgPartialDay  = "continued from previous day"
)

func init() {
	fr := language.French
	_ = message.SetString(fr, MsgEndsAt, "Fin à %s")
	_ = message.SetString(fr, MsgGoalReached, "objectif atteint, +%s")
	_ = message.SetString(fr, MsgNotWearing, "non porté")
	_ = message.SetString(fr, MsgWearingFor, "porté depuis %s")
	_ = message.SetString(fr, MsgPartialDay, "suite de la veille")
}

// Locale formats labels and messages for one matched language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
}

// New parses raw and matches it against the supported catalogs. An
// unparsable tag falls back to French together with the parse error.
func New(raw string) (Locale, error) {
	requested, err := language.Parse(raw)
	if err != nil {
		return newLocale(language.French), fmt.Errorf("parse locale %q: %w", raw, err)
	}
	_, idx, _ := matcher.Match(requested)
	return newLocale(supported[idx]), nil
}

func newLocale(tag language.Tag) Locale {
	return Locale{tag: tag, printer: message.NewPrinter(tag)}
}

func (l Locale) Tag() language.Tag {
	return l.tag
}

// DayLabel renders the calendar date of t, e.g. "02 janvier 2024" or
// "January 02, 2024".
func (l Locale) DayLabel(t time.Time) string {
	month := monthNames[l.tag][t.Month()-1]
	if l.tag == language.French {
		return fmt.Sprintf("%02d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %02d, %d", month, t.Day(), t.Year())
}

// Sprintf translates key and formats it with the locale's number rules.
func (l Locale) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Percent renders a percentage with one decimal, e.g. "80,0 %" in French.
func (l Locale) Percent(v float64) string {
	if l.tag == language.French {
		return l.printer.Sprintf("%.1f %%", v)
	}
	return l.printer.Sprintf("%.1f%%", v)
}
