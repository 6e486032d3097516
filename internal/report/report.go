package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Row is one question of the results table.
type Row struct {
	Number  int
	Chapter int
	Prompt  string
	Answer  string // display letter, empty when unanswered
	Correct string // display letter
	Status  string
}

// Sheet holds everything printed on a results sheet.
type Sheet struct {
	SessionID  string
	Chapters   []string
	Date       time.Time
	Correct    int
	Total      int
	Percentage int
	Color      string // hex, e.g. "#10b981"
	Rows       []Row
}

const (
	promptWidth = 60
	family      = "DejaVu"
)

// UTF-8 fonts covering Vietnamese.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// GeneratePDF renders the sheet as an A4 portrait PDF.
func GeneratePDF(data Sheet) ([]byte, error) {
	return generate(data, true)
}

func generate(data Sheet, compress bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.AddUTF8FontFromBytes(family, "", regularFont)
	pdf.AddUTF8FontFromBytes(family, "B", boldFont)
	pdf.AddPage()

	pdf.SetFont(family, "B", 22)
	pdf.CellFormat(0, 14, "Practice Quiz Results", "", 1, "C", false, 0, "")

	pdf.SetFont(family, "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Chapters: %s | Date: %s",
		join(data.Chapters), data.Date.Format("2006-01-02")), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	r, g, b := hexRGB(data.Color)
	pdf.SetTextColor(r, g, b)
	pdf.SetFont(family, "B", 28)
	pdf.CellFormat(0, 14, fmt.Sprintf("%d%%", data.Percentage), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(family, "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d / %d correct", data.Correct, data.Total), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 7, "Chapter", "1", 0, "C", false, 0, "")
	pdf.CellFormat(100, 7, "Question", "1", 0, "L", false, 0, "")
	pdf.CellFormat(18, 7, "Answer", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 7, "Correct", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 7, "Status", "1", 1, "C", false, 0, "")

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", row.Number), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", row.Chapter), "1", 0, "C", false, 0, "")
		pdf.CellFormat(100, 6, truncate(row.Prompt, promptWidth), "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, dash(row.Answer), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, row.Correct, "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 6, row.Status, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(0, 6, "Session ID: "+data.SessionID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func join(ss []string) string {
	if len(ss) == 0 {
		return "-"
	}
	out := ss[0]
	for _, s := range ss[1:] {
		out += ", " + s
	}
	return out
}

func hexRGB(hex string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
