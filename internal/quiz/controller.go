package quiz

import (
	"errors"
	"fmt"
)

// Mode is the screen the user is on.
type Mode string

const (
	ModeSelection Mode = "selection"
	ModePlaying   Mode = "playing"
	ModeResults   Mode = "results"
	ModeReview    Mode = "review"
)

// ErrInvalidTransition is returned for commands the current mode does not accept.
var ErrInvalidTransition = errors.New("command not allowed in current mode")

// Snapshot is the state emitted to the host after every command.
type Snapshot struct {
	Mode      Mode       `json:"mode"`
	SessionID string     `json:"sessionId,omitempty"`
	View      *ViewState `json:"view,omitempty"`
	Results   *Results   `json:"results,omitempty"`
}

// Controller drives the Selection → Playing → Results → Review cycle and
// owns the active session. It is not safe for concurrent use.
type Controller struct {
	bank    ChapterSource
	rnd     RandFunc
	mode    Mode
	session *Session
	request Request
}

func NewController(bank ChapterSource, rnd RandFunc) *Controller {
	return &Controller{bank: bank, rnd: rnd, mode: ModeSelection}
}

func (c *Controller) Mode() Mode { return c.mode }

// Session returns the active session, or nil on the selection screen.
func (c *Controller) Session() *Session { return c.session }

// Request returns the selection that built the active session.
func (c *Controller) Request() Request { return c.request }

func (c *Controller) expect(cmd string, modes ...Mode) error {
	for _, m := range modes {
		if c.mode == m {
			return nil
		}
	}
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, cmd, c.mode)
}

// Start builds a session from req. On error the selection screen and the
// previous state are kept.
func (c *Controller) Start(req Request) error {
	return c.StartWith(req, c.rnd)
}

// StartWith is Start drawing from rnd. rnd replaces the controller's random
// source only when the session is built.
func (c *Controller) StartWith(req Request, rnd RandFunc) error {
	if err := c.expect("start", ModeSelection); err != nil {
		return err
	}
	s, err := NewResolver(c.bank, rnd).Build(req)
	if err != nil {
		return err
	}
	c.rnd = rnd
	c.session = s
	c.request = req.normalized()
	c.mode = ModePlaying
	return nil
}

// SelectOption answers the current question with the option shown at
// displayIndex. Indices outside the display range are ignored.
func (c *Controller) SelectOption(displayIndex int) error {
	if err := c.expect("select option", ModePlaying); err != nil {
		return err
	}
	if displayIndex < 0 || displayIndex >= OptionCount {
		return nil
	}
	c.session.Answer(c.session.optionOrder[c.session.cursor][displayIndex])
	return nil
}

func (c *Controller) Next() error {
	if err := c.expect("next", ModePlaying, ModeReview); err != nil {
		return err
	}
	c.session.Next()
	return nil
}

func (c *Controller) Prev() error {
	if err := c.expect("prev", ModePlaying, ModeReview); err != nil {
		return err
	}
	c.session.Prev()
	return nil
}

// Submit ends the attempt and shows the results.
func (c *Controller) Submit() error {
	if err := c.expect("submit", ModePlaying); err != nil {
		return err
	}
	c.mode = ModeResults
	return nil
}

func (c *Controller) Review() error {
	if err := c.expect("review", ModeResults); err != nil {
		return err
	}
	c.session.EnterReview()
	c.mode = ModeReview
	return nil
}

func (c *Controller) BackToResults() error {
	if err := c.expect("back to results", ModeReview); err != nil {
		return err
	}
	c.session.ExitReview()
	c.mode = ModeResults
	return nil
}

// RetakeSame starts a new attempt over the same questions with the shuffle
// flags of the original selection.
func (c *Controller) RetakeSame() error {
	if err := c.expect("retake", ModeResults, ModeReview); err != nil {
		return err
	}
	c.session.rnd = c.rnd
	c.session.RetakeSame(c.request.ShuffleQuestions, c.request.ShuffleOptions)
	c.mode = ModePlaying
	return nil
}

// BackToChapters drops the session and returns to selection.
func (c *Controller) BackToChapters() error {
	if err := c.expect("back to chapters", ModeResults, ModeReview); err != nil {
		return err
	}
	c.Restart()
	return nil
}

// Restart returns to selection from any mode.
func (c *Controller) Restart() {
	c.session = nil
	c.mode = ModeSelection
}

// Snapshot returns the state the host renders for the current mode.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{Mode: c.mode}
	if c.session == nil {
		return snap
	}
	snap.SessionID = c.session.ID()
	switch c.mode {
	case ModePlaying, ModeReview:
		v := Project(c.session)
		snap.View = &v
	}
	switch c.mode {
	case ModeResults, ModeReview:
		r := Summarize(c.session)
		snap.Results = &r
	}
	return snap
}
