package questionbank

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"psp.com/chapter-quiz/internal/quiz"
)

var (
	ErrInvalidChapter = errors.New("chapter must be a positive integer")
	ErrEmptyPrompt    = errors.New("question text is required")
	ErrOptionCount    = errors.New("exactly 4 options are required")
	ErrCorrectIndex   = errors.New("correct index must be between 0 and 3")
	ErrEmptyBank      = errors.New("question bank is empty")
)

// Entry is a question as it appears in a bank source.
type Entry struct {
	ID          string   `json:"id,omitempty"`
	Chapter     int      `json:"chapter"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Validate checks the entry against the bank schema.
func (e Entry) Validate() error {
	if e.Chapter < 1 {
		return ErrInvalidChapter
	}
	if strings.TrimSpace(e.Question) == "" {
		return ErrEmptyPrompt
	}
	if len(e.Options) != quiz.OptionCount {
		return ErrOptionCount
	}
	if e.Correct < 0 || e.Correct >= quiz.OptionCount {
		return ErrCorrectIndex
	}
	return nil
}

// idSpace namespaces IDs derived from question text.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("psp.com/chapter-quiz/questions"))

// QuestionID returns the explicit id when present, otherwise a stable UUID
// derived from the question text, so identical texts share an identity.
func QuestionID(explicit, text string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return uuid.NewSHA1(idSpace, []byte(text)).String()
}

// DefaultMerges is the legacy token table: token "1" covers chapters 1 and 2.
func DefaultMerges() map[string][]int {
	return map[string][]int{"1": {1, 2}}
}

type Option func(*Bank)

// WithMerges replaces the merged-token table. A nil map disables merging.
func WithMerges(merges map[string][]int) Option {
	return func(b *Bank) { b.mergeTable = merges }
}

// Bank is the immutable, indexed question bank. It is safe for concurrent
// reads once built.
type Bank struct {
	questions  []*quiz.Question
	chapters   map[int][]*quiz.Question
	merged     map[string][]*quiz.Question
	mergeTable map[string][]int
}

// New validates entries and indexes them by chapter.
func New(entries []Entry, opts ...Option) (*Bank, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBank
	}
	b := &Bank{
		chapters:   make(map[int][]*quiz.Question),
		merged:     make(map[string][]*quiz.Question),
		mergeTable: DefaultMerges(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.questions = make([]*quiz.Question, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		q := &quiz.Question{
			ID:          QuestionID(e.ID, e.Question),
			Chapter:     e.Chapter,
			Prompt:      e.Question,
			Correct:     e.Correct,
			Explanation: strings.TrimSpace(e.Explanation),
		}
		copy(q.Options[:], e.Options)
		b.questions = append(b.questions, q)
		b.chapters[q.Chapter] = append(b.chapters[q.Chapter], q)
	}

	for token, chapters := range b.mergeTable {
		want := make(map[int]bool, len(chapters))
		for _, ch := range chapters {
			want[ch] = true
		}
		var list []*quiz.Question
		for _, q := range b.questions {
			if want[q.Chapter] {
				list = append(list, q)
			}
		}
		b.merged[strings.TrimSpace(token)] = list
	}
	return b, nil
}

// ByChapter returns the questions a chapter token selects: the whole bank for
// "all", a merged list for tokens in the merge table, the chapter's questions
// for a positive integer, and nothing otherwise. The result is shared and
// must not be modified.
func (b *Bank) ByChapter(token string) []*quiz.Question {
	token = strings.TrimSpace(token)
	if token == quiz.AllChapters {
		return b.questions
	}
	if list, ok := b.merged[token]; ok {
		return list
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return nil
	}
	return b.chapters[n]
}

func (b *Bank) Len() int { return len(b.questions) }

// ChapterStat is the number of questions in one chapter.
type ChapterStat struct {
	Chapter int `json:"chapter"`
	Count   int `json:"count"`
}

// Chapters lists chapters in ascending order.
func (b *Bank) Chapters() []ChapterStat {
	out := make([]ChapterStat, 0, len(b.chapters))
	for ch, qs := range b.chapters {
		out = append(out, ChapterStat{Chapter: ch, Count: len(qs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chapter < out[j].Chapter })
	return out
}
