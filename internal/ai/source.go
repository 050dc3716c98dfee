package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a question source when it cannot produce
// questions: no credential, network failure, or an unparseable response.
// The dispatcher treats any error wrapping it as a signal to substitute
// the fallback source.
var ErrUnavailable = errors.New("question generation unavailable")

const (
	// OriginRemote marks questions produced by the remote generator.
	OriginRemote = "remote"
	// OriginFallback marks questions taken from the static bank.
	OriginFallback = "fallback"
)

// Source yields technical screening questions for a technology name.
type Source interface {
	Generate(ctx context.Context, technology string) ([]string, error)
}
