// Package mushroom loads the UCI mushroom dataset.
//
// Raw data imported from
//
//	Frank, A. & Asuncion, A. (2010). UCI Machine Learning Repository
//	[http://archive.ics.uci.edu/ml]. Irvine, CA: University of California,
//	School of Information and Computer Science.
//
// The file is comma separated, one record per line, no header, with the class
// (p = poisonous, e = edible) as the first field.
package mushroom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPath is the file loaded when no path is given.
const DefaultPath = "raw_data"

// Labels names the raw class tokens.
var Labels = map[string]string{
	"e": "Edible",
	"p": "Poisonous",
}

// Label returns the display name of a class token, or the token itself.
func Label(tok string) string {
	if name, ok := Labels[tok]; ok {
		return name
	}
	return tok
}

// ErrEmpty is returned for input without records.
var ErrEmpty = errors.New("mushroom: no records")

// RaggedRowError reports a record whose field count differs from the first record.
type RaggedRowError struct {
	Line int
	Want int
	Got  int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("mushroom: line %d has %d fields, want %d", e.Line, e.Got, e.Want)
}

// Load reads the dataset file at path.
func Load(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Parse reads records from r, trimming whitespace around every token.
// Blank lines are skipped and every record must be as wide as the first.
func Parse(r io.Reader) ([][]string, error) {
	return parse(r, true)
}

// ParseRows is Parse for rows to classify: records may differ in width, so
// rows with and without the class field can be mixed.
func ParseRows(r io.Reader) ([][]string, error) {
	return parse(r, false)
}

func parse(r io.Reader, sameWidth bool) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if sameWidth && len(rows) > 0 && len(rec) != len(rows[0]) {
			line, _ := reader.FieldPos(0)
			return nil, &RaggedRowError{Line: line, Want: len(rows[0]), Got: len(rec)}
		}
		row := make([]string, len(rec))
		for i, tok := range rec {
			row[i] = strings.TrimSpace(tok)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}
