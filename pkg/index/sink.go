package index

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Sink receives finished records. Implementations must be safe for
// concurrent Index calls.
type Sink interface {
	Index(ctx context.Context, records []Record) error
	io.Closer
}

// persistedRecord is the on-disk JSONL shape: the record text plus its
// metadata, keyed by an opaque identifier.
type persistedRecord struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// JSONLSink writes records to a JSON-lines file, one object per record.
// Writes are buffered; Close flushes.
type JSONLSink struct {
	mu    sync.Mutex
	file  *os.File
	buf   *bufio.Writer
	enc   *json.Encoder
	count int
}

// NewJSONLSink creates (or truncates) the file at path.
func NewJSONLSink(path string) (*JSONLSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating sink file: %w", err)
	}
	buf := bufio.NewWriter(f)
	return &JSONLSink{file: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Index appends the records to the file, assigning each a fresh UUID.
func (s *JSONLSink) Index(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		row := persistedRecord{
			ID:       uuid.NewString(),
			Text:     records[i].Content,
			Metadata: records[i].Metadata(),
		}
		if err := s.enc.Encode(&row); err != nil {
			return fmt.Errorf("encoding record %s: %w", records[i].Title, err)
		}
		s.count++
	}
	return nil
}

// Count returns the number of records written so far.
func (s *JSONLSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close flushes and closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flushing sink file: %w", err)
	}
	return s.file.Close()
}

// MemorySink collects records in memory, for tests and dry runs.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Index appends the records.
func (s *MemorySink) Index(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Records returns a copy of everything indexed so far.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Close is a no-op provided for interface consistency.
func (s *MemorySink) Close() error {
	return nil
}
