package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/samples"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/session"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/ui"
)

var (
	analyzeLanguage string
	analyzeURL      string
	analyzeTimeout  string
	analyzeSample   string
	analyzePlain    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a code sample once",
	Long: `Submits one code sample to the analysis service and prints the verdict.

The sample comes from a file argument, from stdin when the argument is "-"
(or stdin is piped), or from a built-in snippet via --sample. The verdict is
rendered with an animated confidence meter on interactive terminals; use
--plain to print the final value directly.

Examples:
  codeorigin analyze suspicious.py --language python
  cat snippet.js | codeorigin analyze --language javascript
  codeorigin analyze --sample rust`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "auto", "Language of the sample (auto, javascript, python, java, cpp, typescript, rust, go)")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Analysis service base URL (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeTimeout, "timeout", "", "Request timeout, e.g. 30s (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeSample, "sample", "", "Analyze the built-in sample for a language instead of a file")
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false, "Disable the animated confidence meter")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sink := ui.Out()

	code, lang, err := resolveAnalyzeInput(cmd, args, sink)
	if err != nil {
		return err
	}

	controller, err := buildController(analyzeURL, analyzeTimeout)
	if err != nil {
		return err
	}
	defer controller.Close()

	eventsCh := controller.Subscribe("analyze-cli")
	defer controller.Unsubscribe("analyze-cli")

	sink.Printf("🔍 Analyzing %s sample (%d chars)...\n", strings.ToLower(ui.LanguageLabel(lang)), utf8.RuneCountInString(code))

	if err := controller.Submit(code, lang); err != nil {
		if errors.Is(err, session.ErrCodeTooShort) {
			return fmt.Errorf("code sample is too short: need at least %d characters", session.MinCodeLength)
		}
		return err
	}

	state := waitForOutcome(controller, eventsCh)
	if state.Phase == session.PhaseFailed {
		renderFailure(state, sink)
		return errors.New("analysis failed")
	}

	animate := isInteractive() && !analyzePlain
	renderResult(controller, state, animate, sink)
	return nil
}

// resolveAnalyzeInput picks the code source: --sample, a file argument,
// "-" or piped stdin.
func resolveAnalyzeInput(cmd *cobra.Command, args []string, sink ui.OutputSink) (string, types.Language, error) {
	if analyzeSample != "" {
		if len(args) > 0 {
			return "", types.LanguageAuto, errors.New("cannot combine --sample with a file argument")
		}
		lang, ok := types.ParseLanguage(analyzeSample)
		if !ok || lang == types.LanguageAuto {
			return "", types.LanguageAuto, fmt.Errorf("no built-in sample for language %q", analyzeSample)
		}
		snippet, ok := samples.Get(lang)
		if !ok {
			return "", types.LanguageAuto, fmt.Errorf("no built-in sample for language %q", analyzeSample)
		}
		return snippet, lang, nil
	}

	lang := resolveLanguage(analyzeLanguage, sink)

	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", lang, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), lang, nil
	}

	// Explicit "-" or piped stdin.
	if len(args) == 1 || !stdinIsTerminal() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", lang, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), lang, nil
	}

	return "", lang, errors.New("no code to analyze: pass a file, pipe stdin, or use --sample")
}
