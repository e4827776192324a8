package services

import (
	"context"
	"fmt"
	"time"

	"github.com/boxalarm/dropletforge/internal/types"
)

type fetchFunc func(ctx context.Context) (*types.Instance, error)

// waitFor polls fetch every interval until done reports true, the timeout
// elapses or ctx is cancelled. The first fetch happens after one interval.
// tick, if set, is called before every fetch.
func waitFor(
	ctx context.Context,
	interval, timeout time.Duration,
	fetch fetchFunc,
	done func(*types.Instance) bool,
	tick func(),
) (*types.Instance, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var last *types.Instance
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			status := "unknown"
			if last != nil {
				status = string(last.Status)
			}
			return nil, fmt.Errorf("%w after %s (last status %q)", ErrPollTimeout, timeout, status)
		case <-ticker.C:
			if tick != nil {
				tick()
			}
			inst, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			last = inst
			if done(inst) {
				return inst, nil
			}
		}
	}
}
