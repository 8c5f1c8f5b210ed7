package main

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/training"

	"gopkg.in/yaml.v3"
)

// sessionFile is a training session as written by hand. JSON files are
// accepted too, YAML being a superset.
type sessionFile struct {
	Comment   string                   `json:"comment"`
	Text      string                   `json:"text"`
	Level     advisory.Level           `json:"level"`
	Goal      advisory.Goal            `json:"goal"`
	Exercises []training.ExerciseEntry `json:"exercises"`
}

// parseSession decodes YAML into generic values first, then goes through
// JSON so the exercise numbers get the same lenient handling as over HTTP.
func parseSession(data []byte) (training.AnalyzeRequest, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return training.AnalyzeRequest{}, fmt.Errorf("parse session file: %w", err)
	}
	if raw == nil {
		return training.AnalyzeRequest{}, fmt.Errorf("session file is empty")
	}

	asJson, err := json.Marshal(raw)
	if err != nil {
		return training.AnalyzeRequest{}, fmt.Errorf("convert session file: %w", err)
	}

	var session sessionFile
	if err := json.Unmarshal(asJson, &session); err != nil {
		return training.AnalyzeRequest{}, fmt.Errorf("decode session: %w", err)
	}

	comment := session.Comment
	if comment == "" {
		comment = session.Text
	}
	req := training.AnalyzeRequest{
		Comment:   comment,
		Exercises: session.Exercises,
	}
	if session.Level.IsValid() {
		req.Level = session.Level
	}
	if session.Goal.IsValid() {
		req.Goal = session.Goal
	}
	return req, nil
}
