// Package session implements the analysis session controller: a small state
// machine that owns one attempt at a time, the attempt history, and the
// confidence meter, and publishes its transitions on an event bus.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/analyzer"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/events"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/history"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/ui"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/utils"
)

// MinCodeLength is the minimum number of characters, after trimming, a code
// sample must have before it is worth sending for analysis.
const MinCodeLength = 20

// TransportFailureMessage is shown when the service could not be reached at
// all, as opposed to answering with an error.
const TransportFailureMessage = "Could not reach the analysis service. Check your connection and try again."

var (
	ErrCodeTooShort     = errors.New("code sample is too short to analyze")
	ErrAnalysisInFlight = errors.New("an analysis is already in progress")
	ErrNothingToRetry   = errors.New("no failed analysis to retry")
)

// nowFunc is swapped out by tests that need deterministic elapsed times.
var nowFunc = time.Now

// Phase identifies which of the four mutually exclusive session states the
// controller is in.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseResult
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. Result is set only in PhaseResult,
// Message only in PhaseFailed.
type State struct {
	Phase   Phase
	Result  *types.AnalysisResult
	Message string
	Elapsed time.Duration
}

// Analyzer is the single capability the controller needs from the analysis
// client. *analyzer.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (types.AnalysisResult, error)
}

// Controller drives one analysis session. All methods are safe for
// concurrent use. At most one attempt is in flight at a time; responses for
// superseded attempts are discarded wholesale.
type Controller struct {
	mu       sync.Mutex
	analyzer Analyzer
	history  *history.Log
	meter    *ui.ConfidenceMeter
	bus      *events.EventBus

	phase   Phase
	result  *types.AnalysisResult
	message string
	elapsed time.Duration

	generation uint64
	lastCode   string
	lastLang   types.Language
}

// NewController creates a controller with standard meter timing.
func NewController(a Analyzer) *Controller {
	return NewControllerWithMeter(a, ui.NewConfidenceMeter())
}

// NewControllerWithMeter creates a controller around an explicit meter.
// Tests use this to shorten the animation.
func NewControllerWithMeter(a Analyzer, meter *ui.ConfidenceMeter) *Controller {
	return &Controller{
		analyzer: a,
		history:  history.NewLog(),
		meter:    meter,
		bus:      events.NewEventBus(),
		phase:    PhaseEmpty,
	}
}

// Submit validates the sample and starts an attempt. The request carries the
// code exactly as passed; trimming is only ever applied to the length check.
func (c *Controller) Submit(code string, lang types.Language) error {
	if utf8.RuneCountInString(strings.TrimSpace(code)) < MinCodeLength {
		return ErrCodeTooShort
	}

	c.mu.Lock()
	if c.phase == PhaseLoading {
		c.mu.Unlock()
		return ErrAnalysisInFlight
	}
	c.generation++
	gen := c.generation
	c.phase = PhaseLoading
	c.result = nil
	c.message = ""
	c.elapsed = 0
	c.lastCode = code
	c.lastLang = lang
	started := nowFunc()
	c.meter.Reset()
	c.mu.Unlock()

	utils.GetLogger().Logf("analysis attempt %d started: language=%s code_chars=%d", gen, lang, utf8.RuneCountInString(code))
	c.bus.Publish(events.EventTypeAnalysisStarted, events.AnalysisStartedEvent(lang, len(code), gen))

	go c.run(gen, code, lang, started)
	return nil
}

// Retry re-submits the attempt that just failed. Valid only in PhaseFailed.
func (c *Controller) Retry() error {
	c.mu.Lock()
	if c.phase != PhaseFailed {
		c.mu.Unlock()
		return ErrNothingToRetry
	}
	code, lang := c.lastCode, c.lastLang
	c.mu.Unlock()

	return c.Submit(code, lang)
}

// Reset returns the session to PhaseEmpty from any state. A response still
// in flight becomes stale and is dropped when it lands. History is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	c.phase = PhaseEmpty
	c.result = nil
	c.message = ""
	c.elapsed = 0
	c.lastCode = ""
	c.lastLang = types.LanguageAuto
	c.meter.Reset()
	c.mu.Unlock()

	c.bus.Publish(events.EventTypeSessionReset, nil)
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{Phase: c.phase, Message: c.message, Elapsed: c.elapsed}
	if c.result != nil {
		r := *c.result
		r.Reasons = append([]string(nil), c.result.Reasons...)
		s.Result = &r
	}
	return s
}

// History exposes the attempt log for rendering.
func (c *Controller) History() *history.Log {
	return c.history
}

// Meter exposes the confidence meter for rendering.
func (c *Controller) Meter() *ui.ConfidenceMeter {
	return c.meter
}

// Subscribe registers a named listener for session events.
func (c *Controller) Subscribe(name string) <-chan events.UIEvent {
	return c.bus.Subscribe(name)
}

// Unsubscribe removes a listener and closes its channel.
func (c *Controller) Unsubscribe(name string) {
	c.bus.Unsubscribe(name)
}

// Close releases the meter's animation goroutine.
func (c *Controller) Close() {
	c.meter.Stop()
}

// run performs the network round trip for one attempt and folds the outcome
// back into the session, unless the attempt has been superseded.
func (c *Controller) run(gen uint64, code string, lang types.Language, started time.Time) {
	result, err := c.analyzer.Analyze(context.Background(), types.AnalysisRequest{Code: code, Language: lang})

	elapsed := nowFunc().Sub(started)
	if elapsed < 0 {
		elapsed = 0
	}

	c.mu.Lock()
	if gen != c.generation {
		current := c.generation
		c.mu.Unlock()
		utils.GetLogger().Logf("analysis attempt %d discarded: superseded by %d", gen, current)
		c.bus.Publish(events.EventTypeAnalysisDiscarded, events.AnalysisDiscardedEvent(gen, current))
		return
	}

	if err != nil {
		msg := failureMessage(err)
		c.phase = PhaseFailed
		c.result = nil
		c.message = msg
		c.elapsed = elapsed
		c.meter.Reset()
		entry := c.history.RecordFailure(code, lang, msg)
		c.mu.Unlock()

		utils.GetLogger().LogError(err)
		c.bus.Publish(events.EventTypeAnalysisFailed, events.AnalysisFailedEvent(msg, err))
		c.bus.Publish(events.EventTypeHistoryRecorded, events.HistoryRecordedEvent(entry.ID, false))
		return
	}

	c.phase = PhaseResult
	res := result
	c.result = &res
	c.message = ""
	c.elapsed = elapsed
	c.meter.AnimateTo(result.Confidence)
	entry := c.history.RecordSuccess(code, lang, result)
	c.mu.Unlock()

	utils.GetLogger().LogAnalysisResult(string(lang), string(result.Verdict), result.Confidence, elapsed)
	c.bus.Publish(events.EventTypeAnalysisCompleted, events.AnalysisCompletedEvent(result, elapsed))
	c.bus.Publish(events.EventTypeHistoryRecorded, events.HistoryRecordedEvent(entry.ID, true))
}

// failureMessage derives the user-facing message for a failed attempt:
// the server's own error text when it sent one, a status line when it
// answered without one, and a connectivity hint otherwise.
func failureMessage(err error) string {
	var serverErr *analyzer.ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return fmt.Sprintf("Analysis failed with status %d", serverErr.Status)
	}
	return TransportFailureMessage
}
