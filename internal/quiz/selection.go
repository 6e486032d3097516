package quiz

import (
	"errors"
	"fmt"
)

// AllChapters selects the whole bank in native order.
const AllChapters = "all"

// Selection failures. They reach callers wrapped in *ValidationError.
var (
	ErrEmptySelection     = errors.New("no questions match the selection")
	ErrRangeInverted      = errors.New("range start is after range end")
	ErrRangeCountMismatch = errors.New("range length does not match question count")
	ErrRangeOutOfBounds   = errors.New("range end exceeds available questions")
	ErrRangeIncomplete    = errors.New("range needs both start and end")
)

// Request carries the user's choices on the selection screen.
// Count, RangeStart and RangeEnd use 0 for "unset".
type Request struct {
	Chapters         []string `json:"chapters"`
	ShuffleQuestions bool     `json:"shuffleQuestions"`
	ShuffleOptions   bool     `json:"shuffleOptions"`
	Count            int      `json:"count"`
	RangeStart       int      `json:"rangeStart"`
	RangeEnd         int      `json:"rangeEnd"`
}

// NewRequest returns a Request for the given chapters with the default
// flags: questions shuffled, options in bank order.
func NewRequest(chapters ...string) Request {
	return Request{Chapters: chapters, ShuffleQuestions: true}
}

func (r Request) normalized() Request {
	r.Count = max(r.Count, 0)
	r.RangeStart = max(r.RangeStart, 0)
	r.RangeEnd = max(r.RangeEnd, 0)
	return r
}

// ValidationError reports why a Request could not produce a session.
type ValidationError struct {
	Kind       error
	Count      int
	RangeStart int
	RangeEnd   int
	Available  int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrRangeInverted:
		return fmt.Sprintf("%v: start %d, end %d", e.Kind, e.RangeStart, e.RangeEnd)
	case ErrRangeCountMismatch:
		return fmt.Sprintf("%v: range %d-%d holds %d questions, count is %d",
			e.Kind, e.RangeStart, e.RangeEnd, e.RangeEnd-e.RangeStart+1, e.Count)
	case ErrRangeOutOfBounds:
		return fmt.Sprintf("%v: end %d, available %d", e.Kind, e.RangeEnd, e.Available)
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Code returns the machine-readable kind name.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrEmptySelection:
		return "EmptySelection"
	case ErrRangeInverted:
		return "RangeInverted"
	case ErrRangeCountMismatch:
		return "RangeCountMismatch"
	case ErrRangeOutOfBounds:
		return "RangeOutOfBounds"
	case ErrRangeIncomplete:
		return "RangeIncomplete"
	}
	return "Unknown"
}

// Seed is a resolved selection, ready to become a Session.
type Seed struct {
	Questions      []*Question
	LastCount      int
	ShuffleOptions bool
}

// Resolver turns selection requests into session seeds.
type Resolver struct {
	bank ChapterSource
	rnd  RandFunc
}

func NewResolver(bank ChapterSource, rnd RandFunc) *Resolver {
	return &Resolver{bank: bank, rnd: rnd}
}

// Candidates concatenates the questions of every token in request order and
// keeps the first occurrence of each ID. The result is a fresh slice.
func (r *Resolver) Candidates(chapters []string) []*Question {
	seen := map[string]struct{}{}
	var out []*Question
	for _, tok := range chapters {
		for _, q := range r.bank.ByChapter(tok) {
			if _, ok := seen[q.ID]; ok {
				continue
			}
			seen[q.ID] = struct{}{}
			out = append(out, q)
		}
	}
	return out
}

// Resolve runs the selection pipeline. Range mode slices the candidate list
// in its pre-shuffle order and ignores ShuffleQuestions.
func (r *Resolver) Resolve(req Request) (Seed, error) {
	req = req.normalized()
	candidates := r.Candidates(req.Chapters)
	m := len(candidates)

	var final []*Question
	switch {
	case req.Count == 0:
		if req.ShuffleQuestions {
			shuffle(candidates, r.rnd)
		}
		final = candidates

	case req.RangeStart > 0 && req.RangeEnd > 0:
		verr := &ValidationError{Count: req.Count, RangeStart: req.RangeStart, RangeEnd: req.RangeEnd, Available: m}
		switch {
		case req.RangeStart > req.RangeEnd:
			verr.Kind = ErrRangeInverted
		case req.RangeEnd-req.RangeStart+1 != req.Count:
			verr.Kind = ErrRangeCountMismatch
		case req.RangeEnd > m:
			verr.Kind = ErrRangeOutOfBounds
		}
		if verr.Kind != nil {
			return Seed{}, verr
		}
		final = candidates[req.RangeStart-1 : req.RangeEnd]

	case req.RangeStart > 0 || req.RangeEnd > 0:
		return Seed{}, &ValidationError{Kind: ErrRangeIncomplete, Count: req.Count,
			RangeStart: req.RangeStart, RangeEnd: req.RangeEnd, Available: m}

	default:
		if req.ShuffleQuestions {
			shuffle(candidates, r.rnd)
		}
		final = candidates[:min(req.Count, m)]
	}

	if len(final) == 0 {
		return Seed{}, &ValidationError{Kind: ErrEmptySelection, Count: req.Count, Available: m}
	}
	return Seed{Questions: final, LastCount: req.Count, ShuffleOptions: req.ShuffleOptions}, nil
}

// Build resolves req and starts a session from it.
func (r *Resolver) Build(req Request) (*Session, error) {
	seed, err := r.Resolve(req)
	if err != nil {
		return nil, err
	}
	return NewSession(seed, r.rnd)
}
