package ui

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
)

// Verdict banner labels.
const (
	LabelAI    = "AI-Generated"
	LabelHuman = "Human-Written"
)

var languageLabels = map[types.Language]string{
	types.LanguageAuto:       "Auto-Detect",
	types.LanguageJavaScript: "JavaScript",
	types.LanguagePython:     "Python",
	types.LanguageJava:       "Java",
	types.LanguageCPP:        "C++",
	types.LanguageTypeScript: "TypeScript",
	types.LanguageRust:       "Rust",
	types.LanguageGo:         "Go",
}

var titleCaser = cases.Title(language.Und)

// VerdictLabel returns the display label for a verdict.
func VerdictLabel(v types.Verdict) string {
	if v == types.VerdictAI {
		return LabelAI
	}
	return LabelHuman
}

// LanguageLabel returns the display label for a language. Values outside the
// known set are title-cased as-is.
func LanguageLabel(l types.Language) string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return titleCaser.String(string(l))
}

// ConfidenceBar renders a horizontal bar for a confidence value in [0,100].
func ConfidenceBar(value, width int) string {
	if width <= 0 {
		width = 20
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatElapsed formats an attempt duration to hundredths of a second.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
