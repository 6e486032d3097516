package quiz

import "strconv"

// Status is the badge shown next to a question.
type Status string

const (
	StatusNone       Status = ""
	StatusUnanswered Status = "unanswered"
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
)

// Option classes understood by the rendering host.
const (
	ClassDisabled      = "disabled"
	ClassCorrectAnswer = "correct-answer"
	ClassCorrect       = "correct"
	ClassIncorrect     = "incorrect"
	ClassSelected      = "selected"
)

// QuestionLabelPrefix precedes the 1-based question number in labels.
const QuestionLabelPrefix = "Câu "

// OptionView is one rendered option, in display order.
type OptionView struct {
	DisplayIndex  int      `json:"displayIndex"`
	OriginalIndex int      `json:"-"`
	Letter        string   `json:"letter"`
	Text          string   `json:"text"`
	Classes       []string `json:"classes"`
	Clickable     bool     `json:"clickable"`
}

// Buttons holds navigation visibility. Next, Submit, RetakeFromReview and
// BackToResults are "shown" flags.
type Buttons struct {
	PrevDisabled     bool `json:"prevDisabled"`
	Next             bool `json:"next"`
	Submit           bool `json:"submit"`
	RetakeFromReview bool `json:"retakeFromReview"`
	BackToResults    bool `json:"backToResults"`
}

// ViewState is everything the host needs to draw the current question.
type ViewState struct {
	Mode               SessionMode  `json:"mode"`
	Index              int          `json:"index"`
	Total              int          `json:"total"`
	Progress           float64      `json:"progress"`
	QuestionLabel      string       `json:"questionLabel"`
	Prompt             string       `json:"prompt"`
	Score              int          `json:"score"`
	Status             Status       `json:"status,omitempty"`
	Options            []OptionView `json:"options"`
	ExplanationVisible bool         `json:"explanationVisible"`
	Explanation        string       `json:"explanation,omitempty"`
	Buttons            Buttons      `json:"buttons"`
}

func statusOf(q *Question, answer int) Status {
	switch {
	case answer == Unanswered:
		return StatusUnanswered
	case answer == q.Correct:
		return StatusCorrect
	default:
		return StatusIncorrect
	}
}

// Project derives the view of the session's current question.
func Project(s *Session) ViewState {
	q := s.Current()
	answer := s.answers[s.cursor]
	locked := s.Locked()
	last := s.cursor == len(s.questions)-1

	v := ViewState{
		Mode:          s.mode,
		Index:         s.cursor,
		Total:         len(s.questions),
		Progress:      float64(s.cursor+1) / float64(len(s.questions)) * 100,
		QuestionLabel: QuestionLabelPrefix + strconv.Itoa(s.cursor+1),
		Prompt:        q.Prompt,
		Score:         s.score,
		Options:       make([]OptionView, 0, OptionCount),
	}
	if locked {
		v.Status = statusOf(q, answer)
	}

	for display, original := range s.optionOrder[s.cursor] {
		opt := OptionView{
			DisplayIndex:  display,
			OriginalIndex: original,
			Letter:        Letter(display),
			Text:          q.Options[original],
			Classes:       []string{},
			Clickable:     !locked,
		}
		switch {
		case locked:
			opt.Classes = append(opt.Classes, ClassDisabled)
			if original == q.Correct {
				opt.Classes = append(opt.Classes, ClassCorrectAnswer)
				if answer == original {
					opt.Classes = append(opt.Classes, ClassCorrect)
				}
			} else if answer == original {
				opt.Classes = append(opt.Classes, ClassIncorrect)
			}
		case answer == original:
			opt.Classes = append(opt.Classes, ClassSelected)
		}
		v.Options = append(v.Options, opt)
	}

	if locked && q.Explanation != "" {
		v.ExplanationVisible = true
		v.Explanation = q.Explanation
	}

	v.Buttons.PrevDisabled = s.cursor == 0
	switch {
	case last && s.mode == SessionReview:
		v.Buttons.RetakeFromReview = true
		v.Buttons.BackToResults = true
	case last:
		v.Buttons.Submit = true
	default:
		v.Buttons.Next = true
	}
	return v
}
