package cli

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	buf := captureOut(t)

	s := newSpinner(context.Background(), "Rendering rule diagram...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := buf.String()
	if !strings.Contains(got, "Rendering rule diagram...") {
		t.Errorf("spinner output missing message: %q", got)
	}
	if !strings.Contains(got, spinnerFrames[0]) {
		t.Errorf("spinner output missing first frame: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner line not cleared: %q", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop, want false")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	captureOut(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Rendering rule diagram...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureOut(t)

	s := newSpinner(context.Background(), "Checking slides...")
	s.Stop() // before Start
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithStatus(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
		want string
	}{
		{"success", func(s *Spinner) { s.StopWithSuccess("Rendered rule diagram (%d bytes)", 512) }, iconSuccess + " Rendered rule diagram (512 bytes)"},
		{"error", func(s *Spinner) { s.StopWithError("Render failed") }, iconError + " Render failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOut(t)
			s := newSpinner(context.Background(), "Rendering rule diagram...")
			s.Start()
			tt.stop(s)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}
