package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	s := newSpinnerWithContext(ctx, msg)
	var buf bytes.Buffer
	s.w = &buf
	return s, &buf
}

func TestSpinnerBasic(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
	if !strings.Contains(buf.String(), "Rendering...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s, _ := quietSpinner(ctx, "Loading records...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx, "Converting...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Stopping...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	out := captureStdout(t)

	s, _ := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.StopWithSuccess("Rendered chart")

	s, _ = quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.StopWithError("Render failed")

	got := out.String()
	if !strings.Contains(got, "Rendered chart") || !strings.Contains(got, "Render failed") {
		t.Errorf("output = %q", got)
	}
}
