package service

import (
	"context"
	"time"
)

const bestEffortTimeout = 3 * time.Second

// bestEffort runs a side effect whose failure must never affect the primary
// result. The work gets a fresh deadline detached from the request's
// cancellation, errors and panics are logged and swallowed
func (s *Svc) bestEffort(ctx context.Context, name string, fn func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("task", name).Interface("panic", r).Msg("best-effort task panicked")
		}
	}()

	bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bestEffortTimeout)
	defer cancel()

	if err := fn(bctx); err != nil {
		s.log.Warn().Str("task", name).Err(err).Msg("best-effort task failed")
	}
}
