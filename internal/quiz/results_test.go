package quiz_test

import (
	"testing"

	"psp.com/chapter-quiz/internal/quiz"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		pct   int
		band  quiz.Band
		color string
	}{
		{100, quiz.BandGreen, "#10b981"},
		{80, quiz.BandGreen, "#10b981"},
		{79, quiz.BandAmber, "#f59e0b"},
		{50, quiz.BandAmber, "#f59e0b"},
		{49, quiz.BandRed, "#ef4444"},
		{0, quiz.BandRed, "#ef4444"},
	}
	for _, tc := range cases {
		b := quiz.BandFor(tc.pct)
		if b != tc.band || b.Color() != tc.color {
			t.Errorf("BandFor(%d) = %s %s, want %s %s", tc.pct, b, b.Color(), tc.band, tc.color)
		}
	}
}

func TestSummarizeRounds(t *testing.T) {
	cases := []struct {
		correct int
		pct     int
		band    quiz.Band
	}{
		{0, 0, quiz.BandRed},
		{1, 33, quiz.BandRed},
		{2, 67, quiz.BandAmber},
		{3, 100, quiz.BandGreen},
	}
	for _, tc := range cases {
		s := newSession(t, makeBank(1, 1, 1), quiz.Request{Chapters: []string{"1"}}, alwaysFirst)
		for i := 0; i < tc.correct; i++ {
			s.Answer(2)
			s.Next()
		}
		r := quiz.Summarize(s)
		if r.Percentage != tc.pct || r.Band != tc.band || r.Correct != tc.correct || r.Total != 3 {
			t.Errorf("%d correct: got %+v", tc.correct, r)
		}
		if r.Color != tc.band.Color() {
			t.Errorf("%d correct: expected colour %s, got %s", tc.correct, tc.band.Color(), r.Color)
		}
	}
}
