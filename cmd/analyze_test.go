package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/ui"
)

func TestAnalyzeCommandConfiguration(t *testing.T) {
	if analyzeCmd.Use != "analyze [file]" {
		t.Errorf("unexpected Use: %q", analyzeCmd.Use)
	}
	if analyzeCmd.Short == "" {
		t.Error("analyze command has no short description")
	}

	for _, name := range []string{"language", "url", "timeout", "sample", "plain"} {
		if analyzeCmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}

	if err := analyzeCmd.Args(analyzeCmd, []string{}); err != nil {
		t.Errorf("zero args should be accepted: %v", err)
	}
	if err := analyzeCmd.Args(analyzeCmd, []string{"file.py"}); err != nil {
		t.Errorf("one arg should be accepted: %v", err)
	}
	if err := analyzeCmd.Args(analyzeCmd, []string{"a.py", "b.py"}); err == nil {
		t.Error("two args should be rejected")
	}
}

func TestSessionCommandConfiguration(t *testing.T) {
	if sessionCmd.Use != "session" {
		t.Errorf("unexpected Use: %q", sessionCmd.Use)
	}
	if err := sessionCmd.Args(sessionCmd, []string{"extra"}); err == nil {
		t.Error("session command should reject positional args")
	}
}

func setSampleFlag(t *testing.T, value string) {
	t.Helper()
	old := analyzeSample
	analyzeSample = value
	t.Cleanup(func() { analyzeSample = old })
}

func TestResolveAnalyzeInputSample(t *testing.T) {
	setSampleFlag(t, "rust")

	code, lang, err := resolveAnalyzeInput(&cobra.Command{}, nil, &ui.BufferSink{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang != types.LanguageRust {
		t.Errorf("expected rust, got %s", lang)
	}
	if !strings.Contains(code, "fn ") {
		t.Errorf("sample does not look like Rust: %q", code)
	}
}

func TestResolveAnalyzeInputSampleErrors(t *testing.T) {
	cases := []struct {
		sample string
		args   []string
	}{
		{sample: "rust", args: []string{"main.rs"}},
		{sample: "auto"},
		{sample: "cobol"},
	}
	for _, tc := range cases {
		setSampleFlag(t, tc.sample)
		if _, _, err := resolveAnalyzeInput(&cobra.Command{}, tc.args, &ui.BufferSink{}); err == nil {
			t.Errorf("sample=%q args=%v: expected error", tc.sample, tc.args)
		}
	}
}

func TestResolveAnalyzeInputFile(t *testing.T) {
	setSampleFlag(t, "")
	path := filepath.Join(t.TempDir(), "snippet.py")
	content := "def add(a, b):\n    return a + b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	oldLang := analyzeLanguage
	analyzeLanguage = "python"
	t.Cleanup(func() { analyzeLanguage = oldLang })

	code, lang, err := resolveAnalyzeInput(&cobra.Command{}, []string{path}, &ui.BufferSink{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != content {
		t.Errorf("file content mismatch: %q", code)
	}
	if lang != types.LanguagePython {
		t.Errorf("expected python, got %s", lang)
	}
}

func TestResolveAnalyzeInputMissingFile(t *testing.T) {
	setSampleFlag(t, "")
	_, _, err := resolveAnalyzeInput(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "nope.js")}, &ui.BufferSink{})
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestResolveAnalyzeInputStdin(t *testing.T) {
	setSampleFlag(t, "")
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("const answer = 42;\nconsole.log(answer);\n"))

	code, _, err := resolveAnalyzeInput(cmd, []string{"-"}, &ui.BufferSink{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(code, "console.log") {
		t.Errorf("stdin content mismatch: %q", code)
	}
}
