package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("test body did not decode: %v", err)
	}
	return raw
}

func TestNormalizeFullResponse(t *testing.T) {
	raw := decodeBody(t, `{
		"type": "ai",
		"confidence": 82,
		"reasons": ["Few comments", "Highly regular formatting"],
		"model": "Heuristic + OpenAI"
	}`)

	res := Normalize(raw)
	assert.Equal(t, VerdictAI, res.Verdict)
	assert.Equal(t, 82, res.Confidence)
	assert.Equal(t, []string{"Few comments", "Highly regular formatting"}, res.Reasons)
	assert.Equal(t, "Heuristic + OpenAI", res.Model)
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "above range clamps to 100", body: `{"confidence": 123.6}`, expected: 100},
		{name: "below range clamps to 0", body: `{"confidence": -5}`, expected: 0},
		{name: "negative ten clamps to 0", body: `{"confidence": -10}`, expected: 0},
		{name: "fraction rounds up", body: `{"confidence": 71.5}`, expected: 72},
		{name: "fraction rounds down", body: `{"confidence": 71.4}`, expected: 71},
		{name: "in-range integer passes through", body: `{"confidence": 82}`, expected: 82},
		{name: "boundary zero", body: `{"confidence": 0}`, expected: 0},
		{name: "boundary hundred", body: `{"confidence": 100}`, expected: 100},
		{name: "string is not numeric", body: `{"confidence": "82"}`, expected: DefaultConfidence},
		{name: "missing field", body: `{}`, expected: DefaultConfidence},
		{name: "null field", body: `{"confidence": null}`, expected: DefaultConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize(decodeBody(t, tt.body))
			assert.Equal(t, tt.expected, res.Confidence)
			assert.GreaterOrEqual(t, res.Confidence, 0)
			assert.LessOrEqual(t, res.Confidence, 100)
		})
	}
}

func TestNormalizeVerdictDefaultsToHuman(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		verdict Verdict
	}{
		{name: "literal ai", body: `{"type": "ai"}`, verdict: VerdictAI},
		{name: "literal human", body: `{"type": "human"}`, verdict: VerdictHuman},
		{name: "unknown value", body: `{"type": "cyborg"}`, verdict: VerdictHuman},
		{name: "uppercase is not the literal", body: `{"type": "AI"}`, verdict: VerdictHuman},
		{name: "wrong type", body: `{"type": 7}`, verdict: VerdictHuman},
		{name: "missing", body: `{}`, verdict: VerdictHuman},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.verdict, Normalize(decodeBody(t, tt.body)).Verdict)
		})
	}
}

func TestNormalizeReasons(t *testing.T) {
	t.Run("kept in order", func(t *testing.T) {
		res := Normalize(decodeBody(t, `{"reasons": ["b", "a", "c"]}`))
		assert.Equal(t, []string{"b", "a", "c"}, res.Reasons)
	})

	t.Run("empty array becomes placeholder", func(t *testing.T) {
		res := Normalize(decodeBody(t, `{"reasons": []}`))
		assert.Equal(t, []string{DefaultReason}, res.Reasons)
	})

	t.Run("non-array becomes placeholder", func(t *testing.T) {
		res := Normalize(decodeBody(t, `{"reasons": "none"}`))
		assert.Equal(t, []string{DefaultReason}, res.Reasons)
	})

	t.Run("non-string elements are skipped", func(t *testing.T) {
		res := Normalize(decodeBody(t, `{"reasons": ["kept", 5, true]}`))
		assert.Equal(t, []string{"kept"}, res.Reasons)
	})
}

func TestNormalizeModel(t *testing.T) {
	assert.Equal(t, "OpenAI", Normalize(decodeBody(t, `{"model": "OpenAI"}`)).Model)
	assert.Equal(t, DefaultModel, Normalize(decodeBody(t, `{}`)).Model)
	assert.Equal(t, DefaultModel, Normalize(decodeBody(t, `{"model": ""}`)).Model)
}

func TestNormalizeSparseHumanResponse(t *testing.T) {
	res := Normalize(decodeBody(t, `{"type": "human", "confidence": -10, "reasons": []}`))
	assert.Equal(t, VerdictHuman, res.Verdict)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, []string{DefaultReason}, res.Reasons)
	assert.Equal(t, DefaultModel, res.Model)
}

func TestNormalizeNilBody(t *testing.T) {
	res := Normalize(nil)
	assert.Equal(t, VerdictHuman, res.Verdict)
	assert.Equal(t, DefaultConfidence, res.Confidence)
	assert.Equal(t, []string{DefaultReason}, res.Reasons)
	assert.Equal(t, DefaultModel, res.Model)
}
