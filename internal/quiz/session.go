package quiz

import (
	"slices"

	"github.com/google/uuid"
)

// Unanswered marks a question the user has not answered yet.
const Unanswered = -1

// SessionMode is the session-internal mode.
type SessionMode string

const (
	SessionPlaying SessionMode = "playing"
	SessionReview  SessionMode = "review"
)

// Session is one attempt over a fixed list of questions. Each answer can be
// recorded once; score always equals the number of correct answers.
type Session struct {
	id          string
	questions   []*Question
	original    []*Question
	optionOrder []Perm
	answers     []int
	score       int
	cursor      int
	mode        SessionMode
	lastCount   int
	rnd         RandFunc
}

// NewSession starts a session from a resolved seed.
func NewSession(seed Seed, rnd RandFunc) (*Session, error) {
	if len(seed.Questions) == 0 {
		return nil, &ValidationError{Kind: ErrEmptySelection, Count: seed.LastCount}
	}
	s := &Session{
		original:  slices.Clone(seed.Questions),
		lastCount: seed.LastCount,
		rnd:       rnd,
	}
	s.reset(slices.Clone(seed.Questions), seed.ShuffleOptions)
	return s, nil
}

func (s *Session) reset(questions []*Question, shuffleOptions bool) {
	s.id = uuid.NewString()
	s.questions = questions
	s.optionOrder = PlanOptionOrders(len(questions), shuffleOptions, s.rnd)
	s.answers = make([]int, len(questions))
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.score = 0
	s.cursor = 0
	s.mode = SessionPlaying
}

func (s *Session) ID() string { return s.id }
func (s *Session) Len() int { return len(s.questions) }
func (s *Session) Cursor() int { return s.cursor }
func (s *Session) Mode() SessionMode { return s.mode }
func (s *Session) Score() int { return s.score }
func (s *Session) LastCount() int { return s.lastCount }
func (s *Session) Current() *Question { return s.questions[s.cursor] }

func (s *Session) QuestionAt(i int) *Question { return s.questions[i] }
func (s *Session) OptionOrder(i int) Perm { return s.optionOrder[i] }

// AnswerAt returns the recorded option index at i, or Unanswered.
func (s *Session) AnswerAt(i int) int { return s.answers[i] }

// Questions returns a copy of the active question list.
func (s *Session) Questions() []*Question { return slices.Clone(s.questions) }

// OriginalQuestions returns a copy of the list captured when the session
// was first built.
func (s *Session) OriginalQuestions() []*Question { return slices.Clone(s.original) }

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []int { return slices.Clone(s.answers) }

// Answered counts the questions with a recorded answer.
func (s *Session) Answered() int {
	n := 0
	for _, a := range s.answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// Locked reports whether the current question no longer accepts answers.
func (s *Session) Locked() bool {
	return s.mode == SessionReview || s.answers[s.cursor] != Unanswered
}

// Answer records option (an index into the question's options) for the
// current question. Calls after the first, and out-of-range options, are
// ignored. The cursor does not move.
func (s *Session) Answer(option int) {
	if s.answers[s.cursor] != Unanswered || option < 0 || option >= OptionCount {
		return
	}
	s.answers[s.cursor] = option
	if option == s.questions[s.cursor].Correct {
		s.score++
	}
}

func (s *Session) Next() {
	if s.cursor < len(s.questions)-1 {
		s.cursor++
	}
}

func (s *Session) Prev() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// EnterReview freezes answering and rewinds to the first question.
func (s *Session) EnterReview() {
	s.mode = SessionReview
	s.cursor = 0
}

// ExitReview leaves review; the caller shows results.
func (s *Session) ExitReview() {
	s.mode = SessionPlaying
}

// RetakeSame starts a new attempt over the original questions. With
// shuffleQuestions the list is reshuffled and cut back to the original count.
func (s *Session) RetakeSame(shuffleQuestions, shuffleOptions bool) {
	questions := slices.Clone(s.original)
	if shuffleQuestions {
		shuffle(questions, s.rnd)
		if s.lastCount > 0 && s.lastCount < len(questions) {
			questions = questions[:s.lastCount]
		}
	}
	s.reset(questions, shuffleOptions)
}

// Outcome is the result of one question after submission.
type Outcome struct {
	Number        int       `json:"number"`
	Question      *Question `json:"question"`
	Answer        int       `json:"answer"`
	AnswerLetter  string    `json:"answerLetter,omitempty"`
	CorrectLetter string    `json:"correctLetter"`
	Status        Status    `json:"status"`
}

// Outcomes lists every question with its answer, using display letters.
func (s *Session) Outcomes() []Outcome {
	out := make([]Outcome, len(s.questions))
	for i, q := range s.questions {
		order := s.optionOrder[i]
		o := Outcome{
			Number:        i + 1,
			Question:      q,
			Answer:        s.answers[i],
			CorrectLetter: Letter(order.display(q.Correct)),
			Status:        statusOf(q, s.answers[i]),
		}
		if o.Answer != Unanswered {
			o.AnswerLetter = Letter(order.display(o.Answer))
		}
		out[i] = o
	}
	return out
}

// display returns the display position showing option, or -1.
func (p Perm) display(option int) int {
	for d, v := range p {
		if v == option {
			return d
		}
	}
	return -1
}
