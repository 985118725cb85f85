package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/slidelayout/pkg/errors"
)

// FileSink appends records to a file as JSON lines.
// Safe for concurrent use.
type FileSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewFileSink opens path for appending, creating it and its parent
// directories if needed.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidSink, "file sink needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileSink{path: path, f: f}, nil
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string { return s.path }

// Write appends one line per record. A batch is written with a single
// write call so concurrent batches never interleave.
func (s *FileSink) Write(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return errors.New(errors.ErrCodeInternal, "file sink %s is closed", s.path)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	_, err := s.f.Write(buf.Bytes())
	return err
}

// Name returns "file".
func (s *FileSink) Name() string { return "file" }

// Close closes the underlying file. Closing twice is a no-op.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// Ensure FileSink implements Sink.
var _ Sink = (*FileSink)(nil)
