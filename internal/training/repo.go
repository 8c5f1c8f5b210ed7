package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRecordNotFound = errors.New("training record not found")

// ListParams pages are 1-based.
type ListParams struct {
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const recordColumns = `id, comment, exercises, level, goal, volume, total_sets, total_reps,
		score, feedback, feedback_source, report_text, created_at`

func (r *Repo) Add(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercisesJson, err := json.Marshal(record.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}
	feedbackJson, err := json.Marshal(record.Feedback)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO training_report (
			comment, exercises, level, goal, volume, total_sets, total_reps,
			score, feedback, feedback_source, report_text, created_at
		)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12)
		RETURNING id
	`,
		record.Comment,
		string(exercisesJson),
		string(record.Level),
		string(record.Goal),
		int64(record.Volume),
		record.TotalSets,
		record.TotalReps,
		int(record.Score),
		string(feedbackJson),
		string(record.FeedbackOutcome),
		record.ReportText,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("id", record.ID))
	return &record, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM training_report
		WHERE id = $1
	`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Latest returns the most recently created record.
func (r *Repo) Latest(ctx context.Context) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM training_report
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("size", params.Size),
	)

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM training_report`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+recordColumns+`
		FROM training_report
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, params.Size, params.Size*(params.Page-1))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]Record, 0, params.Size)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	record := &Record{}
	var (
		exercisesJson, feedbackJson []byte
		level, goal, outcome        string
		volume                      int64
		score                       int
	)
	if err := row.Scan(
		&record.ID,
		&record.Comment,
		&exercisesJson,
		&level,
		&goal,
		&volume,
		&record.TotalSets,
		&record.TotalReps,
		&score,
		&feedbackJson,
		&outcome,
		&record.ReportText,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(exercisesJson, &record.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises of record %d: %w", record.ID, err)
	}
	if err := json.Unmarshal(feedbackJson, &record.Feedback); err != nil {
		return nil, fmt.Errorf("unmarshal feedback of record %d: %w", record.ID, err)
	}
	record.Level = advisory.Level(level)
	record.Goal = advisory.Goal(goal)
	record.Volume = Volume(volume)
	record.Score = Score(score)
	record.FeedbackOutcome = advisory.Outcome(outcome)

	return record, nil
}
