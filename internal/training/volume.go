package training

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Volume is the total workload of a session in kilos, always >= 0.
type Volume int64

// CalculateVolume sums weight * reps * sets over all entries and truncates
// the total to an integer. Malformed entries contribute zero.
func CalculateVolume(entries []ExerciseEntry) Volume {
	return Summarize(entries).TotalVolume
}

// Row is a single exercise entry with its computed workload.
type Row struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	Sets   float64 `json:"sets"`
	Volume float64 `json:"volume"`
}

// Summary aggregates a session. Only well formed entries make it into Rows.
type Summary struct {
	TotalVolume Volume `json:"totalVolume"`
	TotalSets   int64  `json:"totalSets"`
	TotalReps   int64  `json:"totalReps"`
	Rows        []Row  `json:"rows"`
	Skipped     int    `json:"skipped"`
}

func Summarize(entries []ExerciseEntry) Summary {
	summary := Summary{
		Rows: make([]Row, 0, len(entries)),
	}

	var volume, sets, reps float64
	for i, entry := range entries {
		v, err := entry.values()
		if err != nil {
			log.Debugf("skipping exercise entry %d: %s", i, err)
			summary.Skipped++
			continue
		}

		workload := v.weight * v.reps * v.sets
		volume += workload
		sets += v.sets
		reps += v.reps * v.sets
		summary.Rows = append(summary.Rows, Row{
			Name:   entry.Name,
			Weight: v.weight,
			Reps:   v.reps,
			Sets:   v.sets,
			Volume: workload,
		})
	}

	summary.TotalVolume = Volume(truncate(volume))
	summary.TotalSets = truncate(sets)
	summary.TotalReps = truncate(reps)

	return summary
}

func truncate(f float64) int64 {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Trunc(f))
}
