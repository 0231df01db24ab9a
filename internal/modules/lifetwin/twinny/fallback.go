package twinny

import (
	"context"
	"time"

	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

// FallbackNarrator bounds the primary narrator with a timeout and answers with the rule
// based summary whenever the primary fails.
type FallbackNarrator struct {
	primary Narrator
	timeout time.Duration
	log     *logger.Logger
}

func NewFallbackNarrator(primary Narrator, timeout time.Duration, baseLog *logger.Logger) *FallbackNarrator {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &FallbackNarrator{
		primary: primary,
		timeout: timeout,
		log:     baseLog.With("narrator", "FallbackNarrator"),
	}
}

func (f *FallbackNarrator) Narrate(ctx context.Context, in Input) (Summary, error) {
	if f.primary == nil {
		return Generate(in), nil
	}
	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	type result struct {
		summary Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := f.primary.Narrate(callCtx, in)
		done <- result{summary: s, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			f.log.Warn("narrator failed; using rule summary", "error", r.err, "user_id", in.UserID)
			return Generate(in), nil
		}
		return r.summary, nil
	case <-callCtx.Done():
		f.log.Warn("narrator timed out; using rule summary", "error", callCtx.Err(), "user_id", in.UserID)
		return Generate(in), nil
	}
}
