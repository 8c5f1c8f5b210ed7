//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squatSession = `{
	"text": "heavy legs",
	"level": "intermediate",
	"goal": "strength",
	"exercises": [
		{"name": "Squat", "weight": 100, "reps": 10, "sets": 5},
		{"name": "Lunge", "weight": "20", "reps": "oops", "sets": 3}
	]
}`

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body []byte) (int, []byte) {
	t := s.T()

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestTraining_AnalyzeAndRead() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/training/latest", nil)
	require.Equal(t, http.StatusNotFound, status, string(respBytes))

	status, respBytes = s.doRequest(ctx, http.MethodPost, "/training/analyze", []byte(squatSession))
	require.Equal(t, http.StatusOK, status, string(respBytes))

	var result training.AnalyzeResult
	require.NoError(t, json.Unmarshal(respBytes, &result))
	assert.Equal(t, 1, result.ID)
	assert.Equal(t, training.Volume(5000), result.Volume)
	assert.Equal(t, training.Score(22), result.Score)
	assert.Equal(t, 1, result.Summary.Skipped)
	assert.Equal(t, advisory.OutcomeComplete, result.FeedbackOutcome)
	assert.Contains(t, result.Text, "score: 22\n")

	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM public.training_report").Scan(&rows))
	assert.Equal(t, 1, rows)

	var level, source string
	require.NoError(t, s.DB.QueryRowContext(ctx,
		"SELECT level, feedback_source FROM public.training_report WHERE id = $1", result.ID,
	).Scan(&level, &source))
	assert.Equal(t, "intermediate", level)
	assert.Equal(t, "advisory", source)

	for _, path := range []string{"/training/latest", fmt.Sprintf("/training/record/%d", result.ID)} {
		status, respBytes = s.doRequest(ctx, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, status, string(respBytes))

		var record training.Record
		require.NoError(t, json.Unmarshal(respBytes, &record))
		assert.Equal(t, result.ID, record.ID, path)
		assert.Equal(t, "heavy legs", record.Comment, path)
		assert.Equal(t, result.Text, record.ReportText, path)
		assert.Equal(t, result.Feedback, record.Feedback, path)
		require.Len(t, record.Exercises, 2, path)
	}

	status, _ = s.doRequest(ctx, http.MethodGet, "/training/record/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestTraining_History() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	for i := 1; i <= 3; i++ {
		session := fmt.Sprintf(`{"text":"session %d","exercises":[{"name":"Bench","weight":%d,"reps":10,"sets":3}]}`, i, i*20)
		status, respBytes := s.doRequest(ctx, http.MethodPost, "/training/analyze", []byte(session))
		require.Equal(t, http.StatusOK, status, string(respBytes))
	}

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/training/history/page/1/size/2", nil)
	require.Equal(t, http.StatusOK, status, string(respBytes))

	var history training.HistoryResponse
	require.NoError(t, json.Unmarshal(respBytes, &history))
	assert.Equal(t, 3, history.Total)
	require.Len(t, history.Records, 2)
	assert.Equal(t, "session 3", history.Records[0].Comment)
	assert.Equal(t, "session 2", history.Records[1].Comment)

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/training/history/page/2/size/2", nil)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	require.NoError(t, json.Unmarshal(respBytes, &history))
	require.Len(t, history.Records, 1)
	assert.Equal(t, "session 1", history.Records[0].Comment)
	assert.Equal(t, training.Volume(600), history.Records[0].Volume)

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/training/latest", nil)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	var latest training.Record
	require.NoError(t, json.Unmarshal(respBytes, &latest))
	assert.Equal(t, "session 3", latest.Comment)
}

func (s *IntegrationTestSuite) TestTraining_BadRequest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, _ := s.doRequest(ctx, http.MethodPost, "/training/analyze", []byte(`{"text": 42`))
	assert.Equal(s.T(), http.StatusBadRequest, status)
}
