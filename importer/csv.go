package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// csvRow is one data row in file order. Num starts at 2 (row 1 is the
// header) for human-readable error messages. ParseErr is set when the CSV
// layer itself rejected the row (bad quoting); such rows still occupy their
// position so later rows keep their numbers.
type csvRow struct {
	Num      int
	Cells    []string
	ParseErr string
}

// csvRows reads the full CSV payload into a header-index map and the data
// rows. A missing required header is a whole-batch failure before any row is
// touched.
func csvRows(content string, required []string) (map[string]int, []csvRow, *ImportError) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &ImportError{MissingHeaders: required}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, newHeaderError(missing)
	}

	var rows []csvRow
	num := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		num++
		row := csvRow{Num: num, Cells: record}
		if err != nil {
			row.ParseErr = err.Error()
		}
		rows = append(rows, row)
	}

	return index, rows, nil
}

// field returns the trimmed cell for a header, "" when the row is short or
// the optional header is absent.
func field(row csvRow, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[i])
}
