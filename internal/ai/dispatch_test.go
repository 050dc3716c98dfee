package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type stubSource struct {
	questions []string
	err       error
	calls     int
}

func (s *stubSource) Generate(_ context.Context, _ string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

func TestDispatcherPrefersRemote(t *testing.T) {
	remote := &stubSource{questions: []string{"q1", "q2", "q3"}}
	offline := &stubSource{questions: []string{"f1", "f2", "f3"}}

	d := NewDispatcher(remote, offline, zap.NewNop())

	result, err := d.Generate(context.Background(), "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != OriginRemote {
		t.Fatalf("expected remote origin, got %q", result.Origin)
	}

	if offline.calls != 0 {
		t.Fatalf("fallback should not be called when remote succeeds")
	}
}

func TestDispatcherSubstitutesFallbackOnUnavailable(t *testing.T) {
	remote := &stubSource{err: fmt.Errorf("%w: rate limited", ErrUnavailable)}
	offline := &stubSource{questions: []string{"f1", "f2", "f3"}}

	d := NewDispatcher(remote, offline, zap.NewNop())

	result, err := d.Generate(context.Background(), "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != OriginFallback {
		t.Fatalf("expected fallback origin, got %q", result.Origin)
	}

	if remote.calls != 1 {
		t.Fatalf("expected a single remote attempt, got %d", remote.calls)
	}
}

func TestDispatcherWithoutRemoteNeverCallsIt(t *testing.T) {
	offline := &stubSource{questions: []string{"f1", "f2", "f3"}}

	d := NewDispatcher(nil, offline, zap.NewNop())

	if d.RemoteConfigured() {
		t.Fatalf("expected no remote source")
	}

	result, err := d.Generate(context.Background(), "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != OriginFallback {
		t.Fatalf("expected fallback origin, got %q", result.Origin)
	}
}

func TestDispatcherPropagatesUnexpectedRemoteErrors(t *testing.T) {
	remote := &stubSource{err: errors.New("programming error")}
	offline := &stubSource{questions: []string{"f1", "f2", "f3"}}

	d := NewDispatcher(remote, offline, zap.NewNop())

	if _, err := d.Generate(context.Background(), "Go"); err == nil {
		t.Fatalf("expected error to propagate")
	}

	if offline.calls != 0 {
		t.Fatalf("fallback must not mask unexpected errors")
	}
}
