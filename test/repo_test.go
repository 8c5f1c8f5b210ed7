//go:build integration

package test

import (
	"context"
	"time"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/training"
	testingpkg "github.com/2beens/fitra/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) newRecord(createdAt time.Time) training.Record {
	feedback := advisory.Feedback{
		Summary:      gofakeit.Sentence(6),
		Strengths:    []string{gofakeit.Sentence(4)},
		Improvements: []string{gofakeit.Sentence(4), gofakeit.Sentence(3)},
		NextActions:  []string{},
	}
	return training.Record{
		Comment: gofakeit.Sentence(5),
		Exercises: []training.ExerciseEntry{
			training.NewExerciseEntry(gofakeit.Word(), 80, 8, 4),
		},
		Level:           advisory.LevelAdvanced,
		Goal:            advisory.GoalBulk,
		Volume:          2560,
		TotalSets:       4,
		TotalReps:       32,
		Score:           11,
		Feedback:        feedback,
		FeedbackOutcome: advisory.OutcomePartial,
		ReportText:      training.ComposeReport(11, feedback),
		CreatedAt:       createdAt,
	}
}

func (s *IntegrationTestSuite) TestRepo() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()

	repo := training.NewRepo(s.dbPool)

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, training.ErrRecordNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	first, err := repo.Add(ctx, s.newRecord(now.Add(-time.Hour)))
	require.NoError(t, err)
	second, err := repo.Add(ctx, s.newRecord(now))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Comment, got.Comment)
	assert.Equal(t, first.Feedback, got.Feedback)
	assert.Equal(t, first.FeedbackOutcome, got.FeedbackOutcome)
	assert.Equal(t, first.Level, got.Level)
	assert.Equal(t, first.Goal, got.Goal)
	assert.Equal(t, first.ReportText, got.ReportText)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Exercises, 1)
	workload, err := got.Exercises[0].Workload()
	require.NoError(t, err)
	assert.Equal(t, float64(2560), workload)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	records, total, err := repo.List(ctx, training.ListParams{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)

	_, err = repo.Get(ctx, 12345)
	assert.ErrorIs(t, err, training.ErrRecordNotFound)
}

func (s *IntegrationTestSuite) TestLatestCache() {
	t := s.T()
	ctx, rdb := testingpkg.GetRedisClientAndCtx(t, "localhost", s.redisPort)

	cache := training.NewLatestCache(rdb, time.Minute)
	record, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)

	saved := s.newRecord(time.Now().UTC().Truncate(time.Second))
	saved.ID = 42
	require.NoError(t, cache.Set(ctx, saved))

	record, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 42, record.ID)
	assert.Equal(t, saved.Feedback, record.Feedback)

	ttl, err := rdb.TTL(ctx, "training::latest").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
	assert.Greater(t, ttl, time.Duration(0))
}
