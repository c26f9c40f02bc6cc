package lifecycle

import (
	"testing"
	"time"
)

func TestManagerInitialState(t *testing.T) {
	m := NewManager()

	if m.Requested() {
		t.Error("fresh manager reports a pending restart")
	}

	select {
	case <-m.Done():
		t.Error("Done closed before any request")
	default:
	}
}

func TestManagerRequest(t *testing.T) {
	m := NewManager()

	m.Request()

	if !m.Requested() {
		t.Error("Requested() = false after Request()")
	}

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Error("Done not closed after Request()")
	}
}

func TestManagerRequestIdempotent(t *testing.T) {
	m := NewManager()

	// a second request must not panic on the closed channel
	m.Request()
	m.Request()
	m.Request()

	if !m.Requested() {
		t.Error("Requested() = false after repeated requests")
	}
}

func TestManagerConcurrentRequests(t *testing.T) {
	m := NewManager()
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			m.Request()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if !m.Requested() {
		t.Error("Requested() = false after concurrent requests")
	}
}
