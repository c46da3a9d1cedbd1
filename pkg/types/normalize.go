package types

import "math"

// Defaults substituted when the analyzer response omits a field or carries a
// value we cannot use. The UI always has to render something, so unusable
// fields are coerced instead of rejected.
const (
	DefaultConfidence = 55
	DefaultModel      = "Heuristic"
	DefaultReason     = "Analysis returned no detailed indicators"
)

// Normalize converts a loosely decoded analyzer response body into an
// AnalysisResult. Every field is best-effort:
//   - verdict is AI only for the literal "ai"; anything else means human
//   - confidence is rounded to the nearest integer and clamped to [0,100];
//     non-numeric values fall back to DefaultConfidence
//   - reasons keeps string elements in order; absent, malformed, or empty
//     sequences become a single DefaultReason entry
//   - model is kept verbatim when present, else DefaultModel
//
// A nil map (body that failed to decode at all) yields the all-default result.
func Normalize(raw map[string]any) AnalysisResult {
	res := AnalysisResult{
		Verdict:    VerdictHuman,
		Confidence: DefaultConfidence,
		Reasons:    []string{DefaultReason},
		Model:      DefaultModel,
	}
	if raw == nil {
		return res
	}

	if t, ok := raw["type"].(string); ok && t == string(VerdictAI) {
		res.Verdict = VerdictAI
	}

	if f, ok := asNumber(raw["confidence"]); ok {
		res.Confidence = clampConfidence(f)
	}

	if items, ok := raw["reasons"].([]any); ok {
		reasons := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				reasons = append(reasons, s)
			}
		}
		if len(reasons) > 0 {
			res.Reasons = reasons
		}
	}

	if m, ok := raw["model"].(string); ok && m != "" {
		res.Model = m
	}

	return res
}

// asNumber reports whether the decoded JSON value is numeric. encoding/json
// decodes every JSON number into float64, so other types mean the collaborator
// sent something unusable.
func asNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// clampConfidence rounds half away from zero, then pins to [0,100].
func clampConfidence(f float64) int {
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
