// Package dataset loads law corpora from tabular files and applies the
// subject filter that selects consolidated statute texts.
package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Law is one dataset row: the law's subject line and its full text.
type Law struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Report tallies what the loader kept and why rows were dropped.
type Report struct {
	Rows        int `json:"rows"`
	Kept        int `json:"kept"`
	FilteredOut int `json:"filtered_out"`
	Malformed   int `json:"malformed"`
}

const (
	subjectColumn = "subject"
	textColumn    = "text"

	keepMarker    = "mới nhất"
	excludeMarker = "sửa đổi"
)

// Filter selects dataset rows by their subject line. The zero value
// keeps nothing; use DefaultFilter for the standard markers.
type Filter struct {
	// KeepMarker must appear in the subject.
	KeepMarker string
	// ExcludeMarker drops the row even when the keep marker is present.
	ExcludeMarker string
}

// DefaultFilter selects the latest consolidated text of each law:
// subjects carrying "mới nhất" but not "sửa đổi". Amendment texts are
// excluded even when they also carry the latest marker.
func DefaultFilter() Filter {
	return Filter{KeepMarker: keepMarker, ExcludeMarker: excludeMarker}
}

// Keep reports whether a subject passes the filter.
func (f Filter) Keep(subject string) bool {
	return strings.Contains(subject, f.KeepMarker) && !strings.Contains(subject, f.ExcludeMarker)
}

// Loader reads law datasets, dropping malformed rows and rows its
// filter rejects.
type Loader struct {
	Filter Filter
}

// NewLoader returns a loader with the default subject filter.
func NewLoader() *Loader {
	return &Loader{Filter: DefaultFilter()}
}

// LoadFile reads a CSV law dataset from path. Files ending in .gz are
// decompressed transparently.
func (l *Loader) LoadFile(path string) ([]Law, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip dataset: %w", err)
		}
		defer gr.Close()
		r = gr
	}

	return l.Load(r)
}

// Load reads a CSV law dataset. The header row must name a subject and
// a text column (case-insensitive, any order); extra columns are
// ignored. Rows that cannot be read or that have an empty subject or
// text are counted malformed and skipped, never fatal.
func (l *Loader) Load(r io.Reader) ([]Law, *Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading dataset header: %w", err)
	}

	subjectIdx, textIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case subjectColumn:
			subjectIdx = i
		case textColumn:
			textIdx = i
		}
	}
	if subjectIdx < 0 || textIdx < 0 {
		return nil, nil, fmt.Errorf("dataset header must contain %q and %q columns, got %v", subjectColumn, textColumn, header)
	}

	report := &Report{}
	var laws []Law

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		report.Rows++
		if err != nil {
			report.Malformed++
			continue
		}
		if subjectIdx >= len(record) || textIdx >= len(record) {
			report.Malformed++
			continue
		}

		subject := record[subjectIdx]
		text := record[textIdx]
		if strings.TrimSpace(subject) == "" || strings.TrimSpace(text) == "" {
			report.Malformed++
			continue
		}

		if !l.Filter.Keep(subject) {
			report.FilteredOut++
			continue
		}

		laws = append(laws, Law{Subject: subject, Text: text})
		report.Kept++
	}

	return laws, report, nil
}

// Load reads a CSV law dataset with the default filter.
func Load(r io.Reader) ([]Law, *Report, error) {
	return NewLoader().Load(r)
}

// LoadFile reads a CSV law dataset from path with the default filter.
// Files ending in .gz are decompressed transparently.
func LoadFile(path string) ([]Law, *Report, error) {
	return NewLoader().LoadFile(path)
}
