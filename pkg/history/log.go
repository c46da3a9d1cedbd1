// Package history keeps an in-memory record of completed analysis attempts.
// The log is informational only: the session controller writes to it and the
// UI reads it, but nothing ever feeds history back into a decision.
package history

import (
	"sync"
	"time"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/text"
	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
)

// MaxEntries caps the log. Appending the 11th entry evicts the oldest.
const MaxEntries = 10

// nowFunc is swapped out by tests that need stable timestamps.
var nowFunc = time.Now

// Entry records one completed attempt, success or failure. Entries are
// created by the log and never mutated afterwards.
type Entry struct {
	ID          int64                 `json:"id"`
	Timestamp   string                `json:"timestamp"`
	Language    types.Language        `json:"language"`
	CodePreview string                `json:"code_preview"`
	Result      *types.AnalysisResult `json:"result,omitempty"`
	Err         string                `json:"error,omitempty"`
}

// Success reports whether the attempt produced a verdict.
func (e Entry) Success() bool {
	return e.Err == "" && e.Result != nil
}

// Log is an append-only, capacity-bounded sequence of entries, newest first.
// It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// RecordSuccess appends a successful attempt and returns the stored entry.
func (l *Log) RecordSuccess(code string, lang types.Language, res types.AnalysisResult) Entry {
	return l.append(code, lang, &res, "")
}

// RecordFailure appends a failed attempt and returns the stored entry.
func (l *Log) RecordFailure(code string, lang types.Language, message string) Entry {
	return l.append(code, lang, nil, message)
}

func (l *Log) append(code string, lang types.Language, res *types.AnalysisResult, errMsg string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	entry := Entry{
		ID:          l.nextID,
		Timestamp:   nowFunc().Format("15:04:05"),
		Language:    lang,
		CodePreview: text.Preview(code),
		Result:      res,
		Err:         errMsg,
	}

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return entry
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
