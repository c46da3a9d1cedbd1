package cmd

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/events"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/samples"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/session"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/ui"
)

var (
	sessionURL     string
	sessionTimeout string
)

const sessionBanner = `🔍 CodeOrigin interactive session. Paste code, then :submit.
   Type :help for the command list, :quit to leave.
`

const sessionHelp = `Commands:
  :submit [language]   analyze the buffered code (language defaults to auto)
  :sample <language>   replace the buffer with a built-in sample
  :retry               retry the last failed attempt
  :reset               clear the session and the buffer (history is kept)
  :history             show the attempt log
  :state               show the current session state
  :help                show this list
  :quit                leave the session

Any other input is appended to the code buffer.
`

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Interactive analysis session",
	Long: `Starts an interactive session against the analysis service.

Lines you type (or paste) accumulate in a code buffer; :submit sends the
buffer for analysis. The session keeps a log of the last ten attempts,
supports retrying a failed attempt, and can be cleared with :reset without
losing that log.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := buildController(sessionURL, sessionTimeout)
		if err != nil {
			return err
		}
		defer controller.Close()

		return runSessionLoop(controller, cmd.InOrStdin(), ui.Out())
	},
}

func init() {
	sessionCmd.Flags().StringVar(&sessionURL, "url", "", "Analysis service base URL (overrides config)")
	sessionCmd.Flags().StringVar(&sessionTimeout, "timeout", "", "Request timeout, e.g. 30s (overrides config)")
}

// runSessionLoop drives the read-eval loop. It is separated from the cobra
// wiring so tests can feed it scripted input.
func runSessionLoop(c *session.Controller, in io.Reader, sink ui.OutputSink) error {
	eventsCh := c.Subscribe("session-repl")
	defer c.Unsubscribe("session-repl")

	var buffer strings.Builder
	bufferLang := types.LanguageAuto

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sink.Print(sessionBanner)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !strings.HasPrefix(trimmed, ":") {
			buffer.WriteString(line)
			buffer.WriteString("\n")
			continue
		}

		fields := strings.Fields(trimmed)
		switch fields[0] {
		case ":quit", ":q", ":exit":
			sink.Print("👋 Session closed.\n")
			return nil

		case ":help":
			sink.Print(sessionHelp)

		case ":submit":
			lang := bufferLang
			if len(fields) > 1 {
				lang = resolveLanguage(fields[1], sink)
			}
			submitBuffer(c, eventsCh, buffer.String(), lang, sink)

		case ":sample":
			if len(fields) < 2 {
				sink.Print("⚠️ Usage: :sample <language>\n")
				continue
			}
			lang, ok := types.ParseLanguage(fields[1])
			if !ok || lang == types.LanguageAuto {
				sink.Printf("⚠️ No built-in sample for %q\n", fields[1])
				continue
			}
			snippet, ok := samples.Get(lang)
			if !ok {
				sink.Printf("⚠️ No built-in sample for %q\n", fields[1])
				continue
			}
			buffer.Reset()
			buffer.WriteString(snippet)
			buffer.WriteString("\n")
			bufferLang = lang
			sink.Printf("📋 Loaded %s sample (%d chars). Use :submit to analyze.\n", ui.LanguageLabel(lang), utf8.RuneCountInString(snippet))

		case ":retry":
			if err := c.Retry(); err != nil {
				if errors.Is(err, session.ErrNothingToRetry) {
					sink.Print("⚠️ Nothing to retry. The last attempt did not fail.\n")
				} else {
					sink.Printf("⚠️ %v\n", err)
				}
				continue
			}
			sink.Print("🔁 Retrying last attempt...\n")
			renderOutcome(c, waitForOutcome(c, eventsCh), sink)

		case ":reset":
			c.Reset()
			buffer.Reset()
			bufferLang = types.LanguageAuto
			sink.Print("🧹 Session cleared. History kept.\n")

		case ":history":
			renderHistory(c.History().Entries(), sink)

		case ":state":
			renderSessionState(c.State(), sink)

		default:
			sink.Printf("⚠️ Unknown command %s (try :help)\n", fields[0])
		}
	}
	return scanner.Err()
}

func submitBuffer(c *session.Controller, eventsCh <-chan events.UIEvent, code string, lang types.Language, sink ui.OutputSink) {
	err := c.Submit(code, lang)
	switch {
	case errors.Is(err, session.ErrCodeTooShort):
		sink.Printf("⚠️ Need at least %d characters of code. Paste more and :submit again.\n", session.MinCodeLength)
		return
	case errors.Is(err, session.ErrAnalysisInFlight):
		sink.Print("⏳ An analysis is already running.\n")
		return
	case err != nil:
		sink.Printf("⚠️ %v\n", err)
		return
	}

	sink.Printf("⏳ Analyzing %s...\n", ui.LanguageLabel(lang))
	renderOutcome(c, waitForOutcome(c, eventsCh), sink)
}

func renderOutcome(c *session.Controller, state session.State, sink ui.OutputSink) {
	switch state.Phase {
	case session.PhaseResult:
		renderResult(c, state, false, sink)
		sink.Print("\n")
	case session.PhaseFailed:
		renderFailure(state, sink)
		sink.Print("   Use :retry to try again.\n\n")
	}
}

func renderSessionState(state session.State, sink ui.OutputSink) {
	switch state.Phase {
	case session.PhaseEmpty:
		sink.Print("💤 No analysis yet. Paste code and :submit.\n")
	case session.PhaseLoading:
		sink.Print("⏳ Analyzing...\n")
	case session.PhaseResult:
		sink.Printf("%s %s (%d%%), %s, %s\n", verdictIcon(state.Result.Verdict), ui.VerdictLabel(state.Result.Verdict), state.Result.Confidence, state.Result.Model, ui.FormatElapsed(state.Elapsed))
	case session.PhaseFailed:
		sink.Printf("❌ %s\n", state.Message)
	}
}
