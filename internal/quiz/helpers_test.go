package quiz_test

import (
	"fmt"
	"strconv"

	"psp.com/chapter-quiz/internal/quiz"
)

// fakeBank mirrors the bank's token rules: "all", "1" covering chapters 1
// and 2, and plain chapter numbers.
type fakeBank []*quiz.Question

func (b fakeBank) ByChapter(token string) []*quiz.Question {
	if token == quiz.AllChapters {
		return b
	}
	n, err := strconv.Atoi(token)
	if err != nil || n <= 0 {
		return nil
	}
	var out []*quiz.Question
	for _, q := range b {
		if q.Chapter == n || (n == 1 && q.Chapter == 2) {
			out = append(out, q)
		}
	}
	return out
}

func makeBank(chapters ...int) fakeBank {
	b := make(fakeBank, len(chapters))
	for i, ch := range chapters {
		b[i] = &quiz.Question{
			ID:          fmt.Sprintf("q%02d", i+1),
			Chapter:     ch,
			Prompt:      fmt.Sprintf("question %d", i+1),
			Options:     [quiz.OptionCount]string{"opt 0", "opt 1", "opt 2", "opt 3"},
			Correct:     2,
			Explanation: fmt.Sprintf("because %d", i+1),
		}
	}
	return b
}

func chapterOf(ch, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = ch
	}
	return out
}

func ids(qs []*quiz.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

// alwaysFirst makes every Fisher–Yates step swap with position 0, which
// rotates a slice left by one.
func alwaysFirst(int) int { return 0 }

// noSwap makes every Fisher–Yates step swap an element with itself.
func noSwap(n int) int { return n - 1 }
