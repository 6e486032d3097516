package questionbank

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrMissingColumn = errors.New("missing column")

// column aliases accepted in the header row, lower-cased.
var columnAliases = map[string]string{
	"id":          "id",
	"chapter":     "chapter",
	"question":    "question",
	"a":           "a",
	"option_a":    "a",
	"option a":    "a",
	"b":           "b",
	"option_b":    "b",
	"option b":    "b",
	"c":           "c",
	"option_c":    "c",
	"option c":    "c",
	"d":           "d",
	"option_d":    "d",
	"option d":    "d",
	"correct":     "correct",
	"explanation": "explanation",
}

var requiredColumns = []string{"chapter", "question", "a", "b", "c", "d", "correct"}

// ReadXLSX reads entries from a worksheet whose first row names the columns.
// Blank rows are skipped. The correct column holds 0..3 or a letter A..D.
func ReadXLSX(r io.Reader, sheet string) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyBank
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyBank
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var entries []Entry
	for n, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		line := n + 2
		chapter, err := strconv.Atoi(cell(row, "chapter"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, ErrInvalidChapter)
		}
		correct, err := parseCorrect(cell(row, "correct"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		entries = append(entries, Entry{
			ID:          cell(row, "id"),
			Chapter:     chapter,
			Question:    cell(row, "question"),
			Options:     []string{cell(row, "a"), cell(row, "b"), cell(row, "c"), cell(row, "d")},
			Correct:     correct,
			Explanation: cell(row, "explanation"),
		})
	}
	return entries, nil
}

func parseCorrect(s string) (int, error) {
	if len(s) == 1 {
		if c := strings.ToUpper(s)[0]; c >= 'A' && c <= 'D' {
			return int(c - 'A'), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 3 {
		return 0, ErrCorrectIndex
	}
	return n, nil
}
