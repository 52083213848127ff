// Package table loads the CSV input of the dayroll command into the
// column slices the rolling engine works on.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ErrMissingColumn = errors.New("table: missing column")
	ErrNoRows        = errors.New("table: no rows")
)

// Columns names the columns Read extracts.
type Columns struct {
	Time  string
	Value string
	// Group is optional.
	Group string
}

// DefaultColumns match the sample data layout: timestamp,value.
var DefaultColumns = Columns{
	Time:  "timestamp",
	Value: "value",
}

// Table holds the raw rows plus the parsed columns, all in input order.
type Table struct {
	Header     []string
	Rows       [][]string
	Timestamps []int64
	Values     []float64
	// Keys is nil unless a group column was requested.
	Keys []string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Read parses CSV with a header row. Timestamps are parsed in UTC and
// stored as Unix nanoseconds; empty values become NaN.
func Read(r io.Reader, cols Columns) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	timeIdx, err := columnIndex(header, cols.Time)
	if err != nil {
		return nil, err
	}
	valueIdx, err := columnIndex(header, cols.Value)
	if err != nil {
		return nil, err
	}
	groupIdx := -1
	if cols.Group != "" {
		if groupIdx, err = columnIndex(header, cols.Group); err != nil {
			return nil, err
		}
	}

	t := &Table{Header: header}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		ts, err := dateparse.ParseIn(strings.TrimSpace(rec[timeIdx]), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", line, rec[timeIdx], err)
		}
		v, err := parseValue(rec[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q: %w", line, rec[valueIdx], err)
		}

		t.Rows = append(t.Rows, rec)
		t.Timestamps = append(t.Timestamps, ts.UnixNano())
		t.Values = append(t.Values, v)
		if groupIdx >= 0 {
			t.Keys = append(t.Keys, rec[groupIdx])
		}
	}

	if t.Len() == 0 {
		return nil, ErrNoRows
	}
	return t, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
