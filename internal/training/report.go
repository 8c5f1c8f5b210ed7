package training

import (
	"fmt"
	"strings"

	"github.com/2beens/fitra/internal/advisory"
)

// slotsPerSection is the fixed number of bullet lines rendered per list section.
// Extra items are dropped, missing ones render as an empty bullet.
const slotsPerSection = 2

const (
	headerSummary      = "Overall summary:"
	headerStrengths    = "Strengths:"
	headerImprovements = "Improvements:"
	headerNextActions  = "Next actions:"
)

// ComposeReport renders the score and feedback into the fixed text template.
func ComposeReport(score Score, feedback advisory.Feedback) string {
	var b strings.Builder

	b.WriteString(headerSummary)
	b.WriteString("\n")
	b.WriteString(singleLine(feedback.Summary))
	b.WriteString("\n\n")

	writeSection(&b, headerStrengths, feedback.Strengths)
	writeSection(&b, headerImprovements, feedback.Improvements)
	writeSection(&b, headerNextActions, feedback.NextActions)

	fmt.Fprintf(&b, "score: %d\n", score)

	return b.String()
}

func writeSection(b *strings.Builder, header string, items []string) {
	b.WriteString(header)
	b.WriteString("\n")
	for i := 0; i < slotsPerSection; i++ {
		item := ""
		if i < len(items) {
			item = singleLine(items[i])
		}
		if item == "" {
			b.WriteString("-\n")
			continue
		}
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// singleLine keeps one item on one line, so the slot count stays fixed.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
