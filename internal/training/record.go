package training

import (
	"time"

	"github.com/2beens/fitra/internal/advisory"
)

// Record is an analyzed session as persisted by the service.
type Record struct {
	ID              int               `json:"id"`
	Comment         string            `json:"comment"`
	Exercises       []ExerciseEntry   `json:"exercises"`
	Level           advisory.Level    `json:"level,omitempty"`
	Goal            advisory.Goal     `json:"goal,omitempty"`
	Volume          Volume            `json:"volume"`
	TotalSets       int64             `json:"totalSets"`
	TotalReps       int64             `json:"totalReps"`
	Score           Score             `json:"score"`
	Feedback        advisory.Feedback `json:"feedback"`
	FeedbackOutcome advisory.Outcome  `json:"feedbackSource"`
	ReportText      string            `json:"result_text"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func NewRecord(req AnalyzeRequest, report *Report, createdAt time.Time) Record {
	exercises := req.Exercises
	if exercises == nil {
		exercises = []ExerciseEntry{}
	}
	return Record{
		Comment:         req.Comment,
		Exercises:       exercises,
		Level:           req.Level,
		Goal:            req.Goal,
		Volume:          report.Volume,
		TotalSets:       report.Summary.TotalSets,
		TotalReps:       report.Summary.TotalReps,
		Score:           report.Score,
		Feedback:        report.Feedback,
		FeedbackOutcome: report.FeedbackOutcome,
		ReportText:      report.Text,
		CreatedAt:       createdAt,
	}
}

// Schema is the DDL of the table backing Repo.
const Schema = `
CREATE TABLE IF NOT EXISTS public.training_report
(
    id              SERIAL PRIMARY KEY,
    comment         TEXT    NOT NULL,
    exercises       JSONB   NOT NULL DEFAULT '[]',
    level           VARCHAR NOT NULL DEFAULT '',
    goal            VARCHAR NOT NULL DEFAULT '',
    volume          BIGINT  NOT NULL,
    total_sets      BIGINT  NOT NULL DEFAULT 0,
    total_reps      BIGINT  NOT NULL DEFAULT 0,
    score           INTEGER NOT NULL,
    feedback        JSONB   NOT NULL,
    feedback_source VARCHAR NOT NULL,
    report_text     TEXT    NOT NULL,
    created_at      TIMESTAMP WITHOUT TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_training_report_created_at ON public.training_report (created_at);
`
