package gccontroller

import (
	"context"
	"fmt"
	"time"
)

// Mouse moves the system cursor and presses its buttons. Coordinates are
// absolute screen pixels.
type Mouse interface {
	MoveTo(ctx context.Context, x, y int) error
	Press(ctx context.Context, b MouseButton) error
	Release(ctx context.Context, b MouseButton) error
}

// Run dispatches actions in order. A canceled ctx stops the run at the next
// wait. Any button still held when Run returns early is released.
func Run(ctx context.Context, m Mouse, actions []Action) (err error) {
	held := make(map[MouseButton]bool)
	defer func() {
		for b := range held {
			// ctx may be done already, the release must still happen
			if rerr := m.Release(context.Background(), b); rerr != nil && err == nil {
				err = fmt.Errorf("failed to release %s: %w", b, rerr)
			}
		}
	}()

	for _, a := range actions {
		switch a.Kind {
		case ActionMove:
			err = m.MoveTo(ctx, a.X, a.Y)
		case ActionPress:
			err = m.Press(ctx, a.Button)
			if err == nil {
				held[a.Button] = true
			}
		case ActionRelease:
			err = m.Release(ctx, a.Button)
			if err == nil {
				delete(held, a.Button)
			}
		case ActionWait:
			err = sleep(ctx, a.Duration)
		}
		if err != nil {
			return fmt.Errorf("failed to %s: %w", a, err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
