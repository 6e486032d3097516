package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psp.com/chapter-quiz/internal/questionbank"
)

// Headings look like "Chương 3: ..." or "Chapter 3 - ...".
var reChapter = regexp.MustCompile(`(?i)^(chương|chapter)\s+(\d+)`)

// ParseBank extracts question blocks from an HTML page.
//
// A block is any element with class "question". Its chapter comes from a
// data-chapter attribute on the block or an ancestor, otherwise from the
// closest preceding chapter heading. The prompt is in ".prompt", the four
// options are ".options li", the correct option is data-correct or the
// option marked with class "correct", and ".explanation" is optional.
func ParseBank(r io.Reader) ([]questionbank.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var (
		entries  []questionbank.Entry
		heading  int
		parseErr error
	)
	doc.Find("h1, h2, h3, .question").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !s.HasClass("question") {
			if m := reChapter.FindStringSubmatch(text(s)); m != nil {
				heading, _ = strconv.Atoi(m[2])
			}
			return true
		}

		e, err := parseBlock(s, heading)
		if err != nil {
			parseErr = fmt.Errorf("question %d: %w", len(entries)+1, err)
			return false
		}
		entries = append(entries, e)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(entries) == 0 {
		return nil, questionbank.ErrEmptyBank
	}
	return entries, nil
}

func parseBlock(s *goquery.Selection, heading int) (questionbank.Entry, error) {
	e := questionbank.Entry{
		ID:          strings.TrimSpace(s.AttrOr("data-id", "")),
		Chapter:     heading,
		Question:    text(s.Find(".prompt").First()),
		Explanation: text(s.Find(".explanation").First()),
		Correct:     -1,
	}

	if v, ok := s.Closest("[data-chapter]").Attr("data-chapter"); ok {
		ch, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return e, questionbank.ErrInvalidChapter
		}
		e.Chapter = ch
	}

	s.Find(".options li").Each(func(i int, li *goquery.Selection) {
		e.Options = append(e.Options, text(li))
		if li.HasClass("correct") {
			e.Correct = i
		}
	})

	if v, ok := s.Attr("data-correct"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return e, questionbank.ErrCorrectIndex
		}
		e.Correct = n
	}
	return e, nil
}

// text collapses whitespace the way the page renders it.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
