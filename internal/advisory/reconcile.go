package advisory

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Reply keys the advisory service is instructed to return.
const (
	KeySummary     = "summary"
	KeyGood        = "good"
	KeyBad         = "bad"
	KeyNextActions = "next_actions"
)

// Feedback is the qualitative part of a training report.
// After Reconcile all four fields are always populated.
type Feedback struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	NextActions  []string `json:"nextActions"`
}

// Outcome tells how much of the reply survived reconciliation.
type Outcome string

const (
	// OutcomeComplete - every key came from the advisory reply
	OutcomeComplete Outcome = "advisory"
	// OutcomePartial - some keys were back-filled with per-key defaults
	OutcomePartial Outcome = "partial"
	// OutcomeFallback - the reply was not a JSON object and was discarded
	OutcomeFallback Outcome = "fallback"
)

func (o Outcome) String() string {
	return string(o)
}

const (
	fallbackSummary = "We could not generate detailed feedback for this session. Your workout was recorded, keep it up."
)

var (
	fallbackStrengths = []string{
		"You completed and logged your training session.",
		"Tracking weight, reps and sets makes progress measurable.",
	}
	fallbackImprovements = []string{
		"Pay attention to form and range of motion on every rep.",
		"Keep rest periods consistent between sets.",
	}
	fallbackNextActions = []string{
		"Aim to add a small amount of weight or one more rep next session.",
		"Prioritize sleep and protein intake to support recovery.",
	}
)

// FallbackFeedback returns the fixed feedback set used when the advisory
// reply cannot be used at all. Each call returns fresh slices.
func FallbackFeedback() Feedback {
	return Feedback{
		Summary:      fallbackSummary,
		Strengths:    cloneStrings(fallbackStrengths),
		Improvements: cloneStrings(fallbackImprovements),
		NextActions:  cloneStrings(fallbackNextActions),
	}
}

// Reconciled is the result of Reconcile.
type Reconciled struct {
	Feedback Feedback
	Outcome  Outcome
	// Filled lists the reply keys that were back-filled with defaults.
	Filled []string
}

// field is a reply value that may be absent. Parsing never fails, it only
// produces absent fields; defaults are applied afterwards.
type field[T any] struct {
	value   T
	present bool
}

func (f field[T]) or(def T) (T, bool) {
	if f.present {
		return f.value, false
	}
	return def, true
}

type parsedReply struct {
	summary     field[string]
	good        field[[]string]
	bad         field[[]string]
	nextActions field[[]string]
}

// Reconcile parses the raw advisory reply and applies the fallback policy:
//   - not a JSON object: the whole FallbackFeedback is used
//   - a key absent, null or of the wrong type: only that key gets its default
//
// Reconcile is total, it never fails.
func Reconcile(raw string) Reconciled {
	reply, ok := parseReply(raw)
	if !ok {
		return Reconciled{
			Feedback: FallbackFeedback(),
			Outcome:  OutcomeFallback,
			Filled:   []string{KeySummary, KeyGood, KeyBad, KeyNextActions},
		}
	}

	var filled []string
	track := func(key string, wasFilled bool) {
		if wasFilled {
			filled = append(filled, key)
		}
	}

	var fb Feedback
	var wasFilled bool
	fb.Summary, wasFilled = reply.summary.or(fallbackSummary)
	track(KeySummary, wasFilled)
	fb.Strengths, wasFilled = reply.good.or(cloneStrings(fallbackStrengths))
	track(KeyGood, wasFilled)
	fb.Improvements, wasFilled = reply.bad.or(cloneStrings(fallbackImprovements))
	track(KeyBad, wasFilled)
	fb.NextActions, wasFilled = reply.nextActions.or(cloneStrings(fallbackNextActions))
	track(KeyNextActions, wasFilled)

	outcome := OutcomeComplete
	if len(filled) > 0 {
		outcome = OutcomePartial
	}

	return Reconciled{
		Feedback: fb,
		Outcome:  outcome,
		Filled:   filled,
	}
}

func parseReply(raw string) (parsedReply, bool) {
	text := stripCodeFence(raw)
	if text == "" {
		return parsedReply{}, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return parsedReply{}, false
	}

	return parsedReply{
		summary:     stringField(obj, KeySummary),
		good:        stringListField(obj, KeyGood),
		bad:         stringListField(obj, KeyBad),
		nextActions: stringListField(obj, KeyNextActions),
	}, true
}

func stringField(obj map[string]json.RawMessage, key string) field[string] {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return field[string]{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return field[string]{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return field[string]{}
	}
	return field[string]{value: s, present: true}
}

// stringListField accepts only a JSON array made entirely of strings.
func stringListField(obj map[string]json.RawMessage, key string) field[[]string] {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return field[[]string]{}
	}
	// null elements would silently decode into ""
	var items []*string
	if err := json.Unmarshal(raw, &items); err != nil {
		return field[[]string]{}
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			return field[[]string]{}
		}
		list = append(list, *item)
	}
	return field[[]string]{value: list, present: true}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stripCodeFence removes a surrounding markdown code fence, models tend to add one
// even when told not to.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, prefix := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimPrefix(cleaned, prefix)
			break
		}
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
