package audit

import "context"

// NullSink is a no-op sink that never stores anything.
// Used when auditing is disabled.
type NullSink struct{}

// NewNullSink creates a null sink.
func NewNullSink() Sink {
	return &NullSink{}
}

// Write does nothing.
func (s *NullSink) Write(ctx context.Context, records []Record) error {
	return nil
}

// Name returns "null".
func (s *NullSink) Name() string { return "null" }

// Close does nothing.
func (s *NullSink) Close() error {
	return nil
}

// Ensure NullSink implements Sink.
var _ Sink = (*NullSink)(nil)
