package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"psp.com/chapter-quiz/internal/questionbank"
	"psp.com/chapter-quiz/internal/quiz"
	"psp.com/chapter-quiz/internal/report"
)

const maxBody = 64 << 10

type chaptersResp struct {
	Total    int                        `json:"total"`
	All      string                     `json:"all"`
	Chapters []questionbank.ChapterStat `json:"chapters"`
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chaptersResp{Total: s.catalog.Len(), All: quiz.AllChapters, Chapters: s.catalog.Chapters()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

// startReq mirrors quiz.Request; absent toggles keep the selection screen defaults.
type startReq struct {
	Chapters         []string `json:"chapters"`
	ShuffleQuestions *bool    `json:"shuffleQuestions"`
	ShuffleOptions   *bool    `json:"shuffleOptions"`
	Count            int      `json:"count"`
	RangeStart       int      `json:"rangeStart"`
	RangeEnd         int      `json:"rangeEnd"`
	Seed             *int64   `json:"seed"`
}

func (b startReq) request() quiz.Request {
	req := quiz.NewRequest(b.Chapters...)
	if b.ShuffleQuestions != nil {
		req.ShuffleQuestions = *b.ShuffleQuestions
	}
	if b.ShuffleOptions != nil {
		req.ShuffleOptions = *b.ShuffleOptions
	}
	req.Count = b.Count
	req.RangeStart = b.RangeStart
	req.RangeEnd = b.RangeEnd
	return req
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var body startReq
	if !decode(w, r, &body) {
		return
	}
	s.run(w, r, "start", func(c *quiz.Controller) error {
		if body.Seed != nil {
			return c.StartWith(body.request(), quiz.NewRand(*body.Seed))
		}
		return c.Start(body.request())
	})
}

type answerReq struct {
	DisplayIndex *int `json:"displayIndex"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var body answerReq
	if !decode(w, r, &body) {
		return
	}
	if body.DisplayIndex == nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "displayIndex is required")
		return
	}
	s.run(w, r, "select option", func(c *quiz.Controller) error {
		return c.SelectOption(*body.DisplayIndex)
	})
}

func (s *Server) command(name string, fn func(*quiz.Controller) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { s.run(w, r, name, fn) }
}

// run applies one command under the controller lock and answers with the
// resulting snapshot.
func (s *Server) run(w http.ResponseWriter, r *http.Request, name string, fn func(*quiz.Controller) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
	from := s.ctrl.Mode()
	if err := fn(s.ctrl); err != nil {
		fail(log, w, name, err)
		return
	}
	snap := s.ctrl.Snapshot()
	if snap.Mode != from {
		log.Info("quiz mode changed",
			zap.String("command", name),
			zap.String("from", string(from)),
			zap.String("to", string(snap.Mode)),
			zap.String("session", snap.SessionID),
		)
	}
	writeJSON(w, http.StatusOK, snap)
}

func fail(log *zap.Logger, w http.ResponseWriter, name string, err error) {
	var verr *quiz.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("selection rejected", zap.String("command", name), zap.String("code", verr.Code()))
		writeError(w, http.StatusUnprocessableEntity, verr.Code(), verr.Error())
	case errors.Is(err, quiz.ErrInvalidTransition):
		log.Warn("command rejected", zap.String("command", name), zap.Error(err))
		writeError(w, http.StatusConflict, "InvalidTransition", err.Error())
	default:
		log.Error("command failed", zap.String("command", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal", "internal error")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	mode := s.ctrl.Mode()
	if mode != quiz.ModeResults && mode != quiz.ModeReview {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "InvalidTransition", fmt.Sprintf("no results in %s", mode))
		return
	}
	sheet := s.sheet()
	s.mu.Unlock()

	pdf, err := report.GeneratePDF(sheet)
	if err != nil {
		s.log.Error("report generation failed", zap.String("session", sheet.SessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal", "failed to generate report")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=results-"+sheet.SessionID+".pdf")
	w.Write(pdf)
}

// sheet collects the printable results of the active session. Callers hold s.mu.
func (s *Server) sheet() report.Sheet {
	sess := s.ctrl.Session()
	res := quiz.Summarize(sess)
	outcomes := sess.Outcomes()
	rows := make([]report.Row, len(outcomes))
	for i, o := range outcomes {
		rows[i] = report.Row{
			Number:  o.Number,
			Chapter: o.Question.Chapter,
			Prompt:  o.Question.Prompt,
			Answer:  o.AnswerLetter,
			Correct: o.CorrectLetter,
			Status:  string(o.Status),
		}
	}
	return report.Sheet{
		SessionID:  sess.ID(),
		Chapters:   s.ctrl.Request().Chapters,
		Date:       s.now(),
		Correct:    res.Correct,
		Total:      res.Total,
		Percentage: res.Percentage,
		Color:      res.Color,
		Rows:       rows,
	}
}

// --- Helpers ---

type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "malformed request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResp{Error: code, Message: msg})
}
