package types

import "strings"

// Language identifies the programming language of a submitted snippet.
// LanguageAuto asks the analyzer to detect the language itself.
type Language string

const (
	LanguageAuto       Language = "auto"
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageCPP        Language = "cpp"
	LanguageTypeScript Language = "typescript"
	LanguageRust       Language = "rust"
	LanguageGo         Language = "go"
)

// Languages returns every selectable language, auto-detect first.
func Languages() []Language {
	return []Language{
		LanguageAuto,
		LanguageJavaScript,
		LanguagePython,
		LanguageJava,
		LanguageCPP,
		LanguageTypeScript,
		LanguageRust,
		LanguageGo,
	}
}

// ParseLanguage maps user input onto a known Language. The second return
// value is false when the input is not one of the supported languages.
func ParseLanguage(s string) (Language, bool) {
	normalized := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, lang := range Languages() {
		if normalized == lang {
			return lang, true
		}
	}
	return LanguageAuto, false
}

// Verdict is the binary classification outcome for a snippet.
type Verdict string

const (
	VerdictAI    Verdict = "ai"
	VerdictHuman Verdict = "human"
)

// AnalysisRequest is the payload sent to the analyzer service. It is
// immutable once submitted; retries reuse the original values.
type AnalysisRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
}

// AnalysisResult is the normalized outcome of one analysis attempt.
// Instances are produced only by Normalize so that Confidence is always
// within [0,100] and Reasons is never empty.
type AnalysisResult struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Model      string   `json:"model"`
}
