package questionbank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported bank format")

// ReadFile reads bank entries from path, choosing the decoder by extension.
// sheet selects the worksheet of an .xlsx bank; empty means the first one.
func ReadFile(path, sheet string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".xlsx":
		return ReadXLSX(f, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadJSON accepts either a bare array of entries or an object holding them
// under "questions".
func ReadJSON(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyBank
	}

	var entries []Entry
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode bank: %w", err)
		}
		return entries, nil
	}

	var wrapper struct {
		Questions []Entry `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return wrapper.Questions, nil
}
