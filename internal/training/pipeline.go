package training

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/telemetry/metrics"
	"github.com/2beens/fitra/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stage is a step of a single pipeline run.
type Stage string

const (
	StageStart             Stage = "start"
	StageVolumeComputed    Stage = "volume_computed"
	StageScoreComputed     Stage = "score_computed"
	StageAdvisoryRequested Stage = "advisory_requested"
	StageReplyReconciled   Stage = "reply_reconciled"
	StageReportComposed    Stage = "report_composed"
)

type AnalyzeRequest struct {
	Comment   string          `json:"text"`
	Exercises []ExerciseEntry `json:"exercises"`
	Level     advisory.Level  `json:"level,omitempty"`
	Goal      advisory.Goal   `json:"goal,omitempty"`
}

// Report is the composed result of one pipeline run.
type Report struct {
	Score           Score             `json:"score"`
	Volume          Volume            `json:"volume"`
	Summary         Summary           `json:"summary"`
	Feedback        advisory.Feedback `json:"feedback"`
	FeedbackOutcome advisory.Outcome  `json:"feedbackSource"`
	Text            string            `json:"result_text"`
}

// Pipeline computes the score, asks the advisory service for feedback and
// composes the report. It keeps no state between runs and is safe for
// concurrent use.
type Pipeline struct {
	normalizer     *ScoreNormalizer
	advisoryClient *advisory.Client
	metricsManager *metrics.Manager
}

type PipelineParams struct {
	MaxVolume int64
	Advisor   advisory.Advisor
	// MetricsManager is optional
	MetricsManager *metrics.Manager
}

func NewPipeline(params PipelineParams) (*Pipeline, error) {
	normalizer, err := NewScoreNormalizer(params.MaxVolume)
	if err != nil {
		return nil, err
	}
	if params.Advisor == nil {
		return nil, fmt.Errorf("advisor is required")
	}
	return &Pipeline{
		normalizer:     normalizer,
		advisoryClient: advisory.NewClient(params.Advisor),
		metricsManager: params.MetricsManager,
	}, nil
}

// Analyze runs the whole pipeline for one session. The only error it returns
// wraps advisory.ErrAdvisoryUnavailable.
func (p *Pipeline) Analyze(ctx context.Context, req AnalyzeRequest) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "training.pipeline.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	transition(span, StageStart)

	summary := Summarize(req.Exercises)
	transition(span, StageVolumeComputed, attribute.Int64("volume", int64(summary.TotalVolume)))
	if summary.Skipped > 0 && p.metricsManager != nil {
		p.metricsManager.CounterMalformedEntries.Add(float64(summary.Skipped))
	}

	score := p.normalizer.Score(summary.TotalVolume)
	transition(span, StageScoreComputed, attribute.Int("score", int(score)))

	advisoryStart := time.Now()
	reply, err := p.advisoryClient.Advise(ctx, advisory.Request{
		Comment:     req.Comment,
		TotalVolume: int64(summary.TotalVolume),
		TotalSets:   summary.TotalSets,
		TotalReps:   summary.TotalReps,
		Score:       int(score),
		Exercises:   exercisesJSON(req.Exercises),
		Level:       req.Level,
		Goal:        req.Goal,
	})
	if p.metricsManager != nil {
		p.metricsManager.HistogramAdvisoryDuration.Observe(time.Since(advisoryStart).Seconds())
	}
	if err != nil {
		if p.metricsManager != nil {
			p.metricsManager.CounterAdvisoryFailures.Inc()
		}
		return nil, err
	}
	transition(span, StageAdvisoryRequested)

	reconciled := advisory.Reconcile(reply)
	transition(span, StageReplyReconciled, attribute.String("outcome", reconciled.Outcome.String()))
	if reconciled.Outcome != advisory.OutcomeComplete {
		log.Debugf("advisory reply reconciled as [%s], back-filled keys: %v", reconciled.Outcome, reconciled.Filled)
	}

	text := ComposeReport(score, reconciled.Feedback)
	transition(span, StageReportComposed)

	if p.metricsManager != nil {
		p.metricsManager.HistogramScore.Observe(float64(score))
		p.metricsManager.CounterAnalyses.WithLabelValues(reconciled.Outcome.String()).Inc()
	}

	return &Report{
		Score:           score,
		Volume:          summary.TotalVolume,
		Summary:         summary,
		Feedback:        reconciled.Feedback,
		FeedbackOutcome: reconciled.Outcome,
		Text:            text,
	}, nil
}

func transition(span trace.Span, stage Stage, attrs ...attribute.KeyValue) {
	span.AddEvent(string(stage), trace.WithAttributes(attrs...))
	log.Tracef("training pipeline: -> %s", stage)
}

func exercisesJSON(entries []ExerciseEntry) json.RawMessage {
	if entries == nil {
		entries = []ExerciseEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		// cannot really happen, Quantity always marshals to a valid JSON value
		log.Errorf("marshal exercise entries: %s", err)
		return json.RawMessage("[]")
	}
	return b
}
