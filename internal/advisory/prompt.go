package advisory

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is the self-reported experience level of the trainee.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// Goal is the training goal of the trainee.
type Goal string

const (
	GoalBulk   Goal = "bulk"
	GoalCut    Goal = "cut"
	GoalHealth Goal = "health"
)

func (g Goal) IsValid() bool {
	switch g {
	case GoalBulk, GoalCut, GoalHealth:
		return true
	default:
		return false
	}
}

const systemInstruction = `You are a professional personal trainer reviewing a single resistance-training session.
Reply with a bare JSON object only: no markdown, no code fences, no text before or after it.
The object must have exactly these keys:
  "summary":      string, 1-3 short sentences evaluating the session overall
  "good":         array of strings, what went well
  "bad":          array of strings, points to improve
  "next_actions": array of strings, concrete things to do in the next session
The numeric score is computed by the system; do not invent another one.`

// Request carries everything the prompt is conditioned on.
type Request struct {
	Comment     string
	TotalVolume int64
	TotalSets   int64
	TotalReps   int64
	Score       int
	// Exercises is the JSON-serialized exercise list, embedded verbatim.
	Exercises json.RawMessage
	Level     Level
	Goal      Goal
}

// BuildPrompt renders the fixed prompt template for the given request.
func BuildPrompt(req Request) Prompt {
	var b strings.Builder

	if line := levelLine(req.Level); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if line := goalLine(req.Goal); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	exercises := req.Exercises
	if len(exercises) == 0 {
		exercises = json.RawMessage("[]")
	}

	b.WriteString("### Trainee comment\n")
	b.WriteString(strings.TrimSpace(req.Comment))
	b.WriteString("\n\n### Session data\n")
	fmt.Fprintf(&b, "- total volume: %d kg\n", req.TotalVolume)
	fmt.Fprintf(&b, "- total sets: %d\n", req.TotalSets)
	fmt.Fprintf(&b, "- total reps: %d\n", req.TotalReps)
	fmt.Fprintf(&b, "- score: %d / 100\n", req.Score)
	b.WriteString("\n### Exercises (JSON)\n")
	b.Write(exercises)

	return Prompt{
		System: systemInstruction,
		User:   b.String(),
	}
}

func levelLine(level Level) string {
	switch level {
	case LevelBeginner:
		return "The trainee is a beginner: use plain words and be encouraging."
	case LevelIntermediate:
		return "The trainee is intermediate: some technical terms are fine."
	case LevelAdvanced:
		return "The trainee is advanced: be strict and specific."
	default:
		return ""
	}
}

func goalLine(goal Goal) string {
	switch goal {
	case GoalBulk:
		return "Goal: gaining muscle. Focus the advice on hypertrophy."
	case GoalCut:
		return "Goal: losing fat. Take energy expenditure and diet into account."
	case GoalHealth:
		return "Goal: staying healthy. Keep the advice balanced."
	default:
		return ""
	}
}
