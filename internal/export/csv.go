// Package export renders report rows as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Placeholder is written for missing values unless Options override it.
const Placeholder = "N/A"

// Escaping selects how delimiter characters inside fields are handled.
type Escaping int

const (
	// StripCommas removes commas and folds line breaks into spaces, so
	// every field is written bare.
	StripCommas Escaping = iota
	// Quote applies RFC 4180 quoting and keeps field content intact.
	Quote
)

// Column describes one output column.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Options controls serialization.
type Options struct {
	Escaping    Escaping
	Placeholder string
}

// DefaultOptions strips commas and writes "N/A" for missing values.
func DefaultOptions() Options {
	return Options{Escaping: StripCommas, Placeholder: Placeholder}
}

// Write serializes rows under a header row. Lines end in CRLF. The output
// depends only on rows, cols and opts.
func Write[T any](w io.Writer, rows []T, cols []Column[T], opts Options) error {
	if len(cols) == 0 {
		return fmt.Errorf("export: no columns")
	}
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = Placeholder
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, c := range cols {
			v := ""
			if c.Value != nil {
				v = c.Value(row)
			}
			if strings.TrimSpace(v) == "" {
				v = placeholder
			}
			record[i] = v
		}
		records = append(records, record)
	}

	if opts.Escaping == Quote {
		cw := csv.NewWriter(w)
		cw.UseCRLF = true
		if err := cw.WriteAll(records); err != nil {
			return fmt.Errorf("export: writing csv: %w", err)
		}
		return nil
	}

	for _, record := range records {
		for i := range record {
			if record[i] = strip(record[i]); strings.TrimSpace(record[i]) == "" {
				record[i] = placeholder
			}
		}
		if _, err := io.WriteString(w, strings.Join(record, ",")+"\r\n"); err != nil {
			return fmt.Errorf("export: writing csv: %w", err)
		}
	}
	return nil
}

// ToCSV serializes rows to a string.
func ToCSV[T any](rows []T, cols []Column[T], opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows, cols, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stripper removes the characters that would change how a reader splits fields.
var stripper = strings.NewReplacer(",", "", "\"", "", "\r\n", " ", "\n", " ", "\r", " ")

func strip(v string) string {
	return stripper.Replace(v)
}
