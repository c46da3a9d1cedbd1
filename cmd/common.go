package cmd

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/analyzer"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/config"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/events"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/history"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/session"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/ui"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/utils"
)

// buildController resolves configuration, applies flag overrides and wires
// up a controller talking to the analysis service.
func buildController(urlFlag, timeoutFlag string) (*session.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	baseURL := cfg.AnalyzerURL
	if urlFlag != "" {
		baseURL = urlFlag
	}
	timeout := cfg.APITimeout.Duration()
	if timeoutFlag != "" {
		timeout = config.ParseTimeout(timeoutFlag, timeout)
	}

	utils.GetLogger().Logf("using analysis service at %s (timeout %s)", baseURL, timeout)
	client := analyzer.NewClientWithTimeout(baseURL, timeout)
	return session.NewController(client), nil
}

// resolveLanguage parses a language flag value, falling back to auto-detect
// with a warning for anything unknown.
func resolveLanguage(value string, sink ui.OutputSink) types.Language {
	lang, ok := types.ParseLanguage(value)
	if !ok {
		sink.Printf("⚠️ Unknown language %q, using auto-detect\n", value)
		return types.LanguageAuto
	}
	return lang
}

// waitForOutcome blocks until the attempt reaches a terminal state, then
// returns a snapshot of it.
func waitForOutcome(c *session.Controller, eventsCh <-chan events.UIEvent) session.State {
	for ev := range eventsCh {
		switch ev.Type {
		case events.EventTypeAnalysisCompleted, events.EventTypeAnalysisFailed:
			return c.State()
		}
	}
	return c.State()
}

// isInteractive reports whether stdout is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// stdinIsTerminal reports whether stdin is a terminal (as opposed to a pipe).
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// barWidth sizes the confidence bar to the terminal, within sane bounds.
func barWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 20
	}
	width = width / 3
	if width > 40 {
		return 40
	}
	if width < 10 {
		return 10
	}
	return width
}

func verdictIcon(v types.Verdict) string {
	if v == types.VerdictAI {
		return "🤖"
	}
	return "👤"
}

// renderResult prints the verdict block for a successful attempt. When
// animate is set it follows the meter as it climbs.
func renderResult(c *session.Controller, state session.State, animate bool, sink ui.OutputSink) {
	res := state.Result
	width := barWidth()

	sink.Printf("\n%s Verdict: %s\n", verdictIcon(res.Verdict), ui.VerdictLabel(res.Verdict))

	if animate {
		target := c.Meter().Target()
		for {
			v := c.Meter().Value()
			sink.Printf("\r   Confidence: [%s] %d%% ", ui.ConfidenceBar(v, width), v)
			if v >= target {
				break
			}
			time.Sleep(40 * time.Millisecond)
		}
		sink.Print("\n")
	} else {
		sink.Printf("   Confidence: [%s] %d%%\n", ui.ConfidenceBar(res.Confidence, width), res.Confidence)
	}

	sink.Printf("   Model: %s\n", res.Model)
	sink.Printf("   Time: %s\n", ui.FormatElapsed(state.Elapsed))
	sink.Print("\n   Indicators:\n")
	for _, reason := range res.Reasons {
		sink.Printf("   • %s\n", reason)
	}
}

// renderFailure prints the failure block for a failed attempt.
func renderFailure(state session.State, sink ui.OutputSink) {
	sink.Printf("\n❌ %s\n", state.Message)
	if state.Elapsed > 0 {
		sink.Printf("   Time: %s\n", ui.FormatElapsed(state.Elapsed))
	}
}

// renderHistory prints the attempt log, newest first.
func renderHistory(entries []history.Entry, sink ui.OutputSink) {
	if len(entries) == 0 {
		sink.Print("📜 No attempts yet.\n")
		return
	}
	sink.Printf("📜 History (%d of at most %d attempts, newest first):\n", len(entries), history.MaxEntries)
	for _, e := range entries {
		var outcome string
		if e.Success() {
			outcome = fmt.Sprintf("%s %s (%d%%)", verdictIcon(e.Result.Verdict), ui.VerdictLabel(e.Result.Verdict), e.Result.Confidence)
		} else {
			outcome = "❌ " + e.Err
		}
		sink.Printf("  #%-3d %s  %-11s %s\n", e.ID, e.Timestamp, ui.LanguageLabel(e.Language), outcome)
		sink.Printf("       %s\n", e.CodePreview)
	}
}
