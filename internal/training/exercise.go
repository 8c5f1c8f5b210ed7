package training

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ErrMalformedExerciseEntry marks an entry whose weight, reps or sets cannot be
// used as a non-negative number. It never leaves this package: such an entry
// simply contributes nothing to the volume.
var ErrMalformedExerciseEntry = errors.New("malformed exercise entry")

// Quantity is a numeric field of an exercise entry, as sent by the client.
// It accepts JSON numbers and numeric strings; anything else is kept as-is and
// reported as malformed when the value is requested. Decoding never fails.
type Quantity struct {
	raw json.RawMessage
}

// NewQuantity returns a valid Quantity holding v.
func NewQuantity(v float64) Quantity {
	return Quantity{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	q.raw = append(q.raw[:0], b...)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if len(q.raw) == 0 {
		return []byte("null"), nil
	}
	return q.raw, nil
}

func (q Quantity) IsSet() bool {
	return len(q.raw) > 0 && !bytes.Equal(q.raw, []byte("null"))
}

// Float coerces the quantity into a finite, non-negative number.
func (q Quantity) Float() (float64, error) {
	if !q.IsSet() {
		return 0, errors.New("value missing")
	}

	dec := json.NewDecoder(bytes.NewReader(q.raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("decode value: %w", err)
	}

	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = cast.ToFloat64E(t)
	case string:
		f, err = cast.ToFloat64E(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("value [%s] is not a number", q.raw)
	}
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("value [%s] out of range", q.raw)
	}
	return f, nil
}

// ExerciseEntry is one line of a training session: an exercise done for
// Sets sets of Reps repetitions with Weight kilos.
type ExerciseEntry struct {
	Name   string   `json:"name"`
	Weight Quantity `json:"weight"`
	Reps   Quantity `json:"reps"`
	Sets   Quantity `json:"sets"`
}

// NewExerciseEntry is a shorthand for building well formed entries.
func NewExerciseEntry(name string, weight, reps, sets float64) ExerciseEntry {
	return ExerciseEntry{
		Name:   name,
		Weight: NewQuantity(weight),
		Reps:   NewQuantity(reps),
		Sets:   NewQuantity(sets),
	}
}

type entryValues struct {
	weight, reps, sets float64
}

func (e ExerciseEntry) values() (entryValues, error) {
	weight, err := e.Weight.Float()
	if err != nil {
		return entryValues{}, fmt.Errorf("%w: [%s] weight: %w", ErrMalformedExerciseEntry, e.Name, err)
	}
	reps, err := e.Reps.Float()
	if err != nil {
		return entryValues{}, fmt.Errorf("%w: [%s] reps: %w", ErrMalformedExerciseEntry, e.Name, err)
	}
	sets, err := e.Sets.Float()
	if err != nil {
		return entryValues{}, fmt.Errorf("%w: [%s] sets: %w", ErrMalformedExerciseEntry, e.Name, err)
	}
	// each factor is finite on its own, their product may still not be
	if w := weight * reps * sets; math.IsNaN(w) || math.IsInf(w, 0) || math.IsInf(reps*sets, 0) {
		return entryValues{}, fmt.Errorf("%w: [%s] workload out of range", ErrMalformedExerciseEntry, e.Name)
	}
	return entryValues{weight: weight, reps: reps, sets: sets}, nil
}

// Workload returns weight * reps * sets, not truncated.
func (e ExerciseEntry) Workload() (float64, error) {
	v, err := e.values()
	if err != nil {
		return 0, err
	}
	return v.weight * v.reps * v.sets, nil
}
