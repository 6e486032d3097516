package questionbank_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"psp.com/chapter-quiz/internal/questionbank"
	"psp.com/chapter-quiz/internal/quiz"
)

func entry(chapter int, text string) questionbank.Entry {
	return questionbank.Entry{
		Chapter:  chapter,
		Question: text,
		Options:  []string{"a", "b", "c", "d"},
		Correct:  1,
	}
}

func prompts(qs []*quiz.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Prompt
	}
	return out
}

func TestByChapter(t *testing.T) {
	bank, err := questionbank.New([]questionbank.Entry{
		entry(1, "one"), entry(2, "two"), entry(3, "three"), entry(1, "four"),
	})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}

	cases := []struct {
		token string
		want  []string
	}{
		{"all", []string{"one", "two", "three", "four"}},
		{"1", []string{"one", "two", "four"}},
		{" 1 ", []string{"one", "two", "four"}},
		{"2", []string{"two"}},
		{"3", []string{"three"}},
		{"4", []string{}},
		{"0", []string{}},
		{"-2", []string{}},
		{"x", []string{}},
		{"", []string{}},
	}
	for _, tc := range cases {
		if got := prompts(bank.ByChapter(tc.token)); !slices.Equal(got, tc.want) {
			t.Errorf("ByChapter(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestWithMergesReplacesLegacyTable(t *testing.T) {
	entries := []questionbank.Entry{entry(1, "one"), entry(2, "two"), entry(3, "three"), entry(4, "four")}
	bank, err := questionbank.New(entries, questionbank.WithMerges(map[string][]int{"3": {3, 4}}))
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	if got := prompts(bank.ByChapter("1")); !slices.Equal(got, []string{"one"}) {
		t.Errorf("expected chapter 1 alone, got %v", got)
	}
	if got := prompts(bank.ByChapter("3")); !slices.Equal(got, []string{"three", "four"}) {
		t.Errorf("expected merged chapters 3 and 4, got %v", got)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*questionbank.Entry)
		want error
	}{
		{"chapter", func(e *questionbank.Entry) { e.Chapter = 0 }, questionbank.ErrInvalidChapter},
		{"prompt", func(e *questionbank.Entry) { e.Question = "  " }, questionbank.ErrEmptyPrompt},
		{"options", func(e *questionbank.Entry) { e.Options = e.Options[:3] }, questionbank.ErrOptionCount},
		{"correct high", func(e *questionbank.Entry) { e.Correct = 4 }, questionbank.ErrCorrectIndex},
		{"correct low", func(e *questionbank.Entry) { e.Correct = -1 }, questionbank.ErrCorrectIndex},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := entry(2, "bad")
			tc.mod(&bad)
			_, err := questionbank.New([]questionbank.Entry{entry(1, "ok"), bad})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if want := fmt.Sprintf("entry 2: %v", tc.want); err.Error() != want {
				t.Errorf("expected %q, got %q", want, err.Error())
			}
		})
	}

	if _, err := questionbank.New(nil); !errors.Is(err, questionbank.ErrEmptyBank) {
		t.Errorf("expected empty bank error, got %v", err)
	}
}

func TestQuestionIDs(t *testing.T) {
	withID := entry(1, "same text")
	withID.ID = "custom-7"
	bank, err := questionbank.New([]questionbank.Entry{entry(1, "same text"), entry(2, "same text"), withID})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	all := bank.ByChapter("all")
	if all[0].ID != all[1].ID {
		t.Errorf("expected identical texts to share an ID, got %s and %s", all[0].ID, all[1].ID)
	}
	if all[2].ID != "custom-7" {
		t.Errorf("expected explicit ID to win, got %s", all[2].ID)
	}
	if questionbank.QuestionID("", "same text") != all[0].ID {
		t.Error("expected derived IDs to be stable")
	}
	if questionbank.QuestionID("", "other") == all[0].ID {
		t.Error("expected different texts to get different IDs")
	}
}

func TestBankFeedsResolverDedup(t *testing.T) {
	bank, err := questionbank.New([]questionbank.Entry{
		entry(1, "alpha"), entry(2, "beta"), entry(3, "alpha"), entry(3, "gamma"),
	})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	seed, err := quiz.NewResolver(bank, func(int) int { return 0 }).Resolve(
		quiz.Request{Chapters: []string{"1", "3"}},
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := prompts(seed.Questions); !slices.Equal(got, []string{"alpha", "beta", "gamma"}) {
		t.Errorf("expected the repeated text once, got %v", got)
	}
}

func TestChapters(t *testing.T) {
	bank, err := questionbank.New([]questionbank.Entry{
		entry(3, "a"), entry(1, "b"), entry(3, "c"), entry(2, "d"),
	})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	want := []questionbank.ChapterStat{{Chapter: 1, Count: 1}, {Chapter: 2, Count: 1}, {Chapter: 3, Count: 2}}
	if got := bank.Chapters(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if bank.Len() != 4 {
		t.Errorf("expected 4 questions, got %d", bank.Len())
	}
}
