package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StopWithSuccess(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Searching...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.StopWithSuccess("Done")

	got := out.String()
	if !strings.Contains(got, "Searching...") {
		t.Errorf("spinner never drew its message: %q", got)
	}
	if !strings.Contains(got, iconSuccess+" Done") {
		t.Errorf("missing success line: %q", got)
	}
}

func TestSpinner_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Waiting...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit after cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation")
	}
	s.Stop()
}

func TestSpinner_StopIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithError("again")
}

func TestSpinner_StopBeforeStart(t *testing.T) {
	done := make(chan struct{})
	go func() {
		newSpinner(context.Background(), &syncBuffer{}, "never started").Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop before Start blocked")
	}
}
