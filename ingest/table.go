package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// table is a CSV file indexed by header name.
type table struct {
	columns map[string]int
	rows    [][]string
}

// readTable reads a CSV with a header line. Rows may be ragged.
func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &table{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := t.columns[name]; !dup {
			t.columns[name] = i
		}
	}
	t.rows, err = reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	return t, nil
}

// has reports whether the column exists.
func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// first returns the first of the candidate columns present, or "".
func (t *table) first(candidates ...string) string {
	for _, c := range candidates {
		if t.has(c) {
			return c
		}
	}
	return ""
}

// get returns the trimmed cell of row i in column, "" when missing.
func (t *table) get(i int, column string) string {
	j, ok := t.columns[column]
	if !ok || j >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][j])
}
