package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Result carries the questions for one technology together with the source
// that produced them, so a fallback substitution stays observable.
type Result struct {
	Technology string
	Questions  []string
	Origin     string
}

// Dispatcher selects between the remote and fallback sources per call.
// The remote source is attempted only when configured; any unavailability
// falls through to the fallback for that single technology, without retry.
type Dispatcher struct {
	remote   Source
	fallback Source
	logger   *zap.Logger
}

// NewDispatcher builds the dispatch policy. remote may be nil, in which case
// every call uses the fallback and no network call is ever attempted.
// fallback must never be nil: it is the guarantee that Generate succeeds.
func NewDispatcher(remote, fallback Source, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{remote: remote, fallback: fallback, logger: logger}
}

// RemoteConfigured reports whether a remote source is available.
func (d *Dispatcher) RemoteConfigured() bool {
	return d.remote != nil
}

// Generate produces questions for one technology. A remote failure is
// recovered by substituting the fallback; an error is returned only when
// the fallback itself fails, which a static bank does not do.
func (d *Dispatcher) Generate(ctx context.Context, technology string) (*Result, error) {
	if d.remote != nil {
		questions, err := d.remote.Generate(ctx, technology)
		if err == nil {
			return &Result{Technology: technology, Questions: questions, Origin: OriginRemote}, nil
		}

		if !errors.Is(err, ErrUnavailable) {
			return nil, fmt.Errorf("remote generation: %w", err)
		}

		d.logger.Warn("remote generation unavailable, substituting fallback",
			zap.String("technology", technology),
			zap.Error(err),
		)
	}

	questions, err := d.fallback.Generate(ctx, technology)
	if err != nil {
		return nil, fmt.Errorf("fallback generation: %w", err)
	}

	return &Result{Technology: technology, Questions: questions, Origin: OriginFallback}, nil
}
