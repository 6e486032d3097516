package quiz

import "math"

// Band is the colour band of a final percentage.
type Band string

const (
	BandGreen Band = "green"
	BandAmber Band = "amber"
	BandRed   Band = "red"
)

// BandFor returns green from 80%, amber from 50%, red below.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandGreen
	case percentage >= 50:
		return BandAmber
	default:
		return BandRed
	}
}

// Color is the hex colour the host paints the score with.
func (b Band) Color() string {
	switch b {
	case BandGreen:
		return "#10b981"
	case BandAmber:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Results summarises a submitted attempt.
type Results struct {
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Answered   int    `json:"answered"`
	Percentage int    `json:"percentage"`
	Band       Band   `json:"band"`
	Color      string `json:"color"`
}

// Summarize computes the results of s. Sessions always hold at least one
// question, so the percentage is defined.
func Summarize(s *Session) Results {
	total := s.Len()
	pct := int(math.Round(100 * float64(s.score) / float64(total)))
	band := BandFor(pct)
	return Results{
		Correct:    s.score,
		Total:      total,
		Answered:   s.Answered(),
		Percentage: pct,
		Band:       band,
		Color:      band.Color(),
	}
}
