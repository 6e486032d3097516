package quiz

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is an immutable multiple-choice entry of the bank.
type Question struct {
	ID          string              `json:"id"`
	Chapter     int                 `json:"chapter"`
	Prompt      string              `json:"question"`
	Options     [OptionCount]string `json:"options"`
	Correct     int                 `json:"correct"`
	Explanation string              `json:"explanation,omitempty"`
}

// ChapterSource resolves a chapter token to the questions it selects.
// Returned slices are shared views and must not be modified.
type ChapterSource interface {
	ByChapter(token string) []*Question
}

// letters label display positions.
var letters = [OptionCount]string{"A", "B", "C", "D"}

// Letter returns the display letter for a position, or "" when out of range.
func Letter(displayIndex int) string {
	if displayIndex < 0 || displayIndex >= OptionCount {
		return ""
	}
	return letters[displayIndex]
}
