package training

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultMaxVolume is the volume of the benchmark "full score" session.
	DefaultMaxVolume = 22500

	MinScore = 0
	MaxScore = 100
)

var ErrInvalidMaxVolume = errors.New("max volume must be positive")

// Score is the performance score of a session, in [0, 100].
type Score int

type ScoreNormalizer struct {
	maxVolume int64
}

func NewScoreNormalizer(maxVolume int64) (*ScoreNormalizer, error) {
	if maxVolume <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxVolume, maxVolume)
	}
	return &ScoreNormalizer{
		maxVolume: maxVolume,
	}, nil
}

func (n *ScoreNormalizer) MaxVolume() int64 {
	return n.maxVolume
}

// Score maps the volume onto [0, 100]. Volumes above the max saturate at 100.
func (n *ScoreNormalizer) Score(volume Volume) Score {
	raw := math.Round(float64(volume) / float64(n.maxVolume) * 100)
	switch {
	case raw < MinScore:
		return MinScore
	case raw > MaxScore:
		return MaxScore
	default:
		return Score(raw)
	}
}
