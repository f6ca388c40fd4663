package gccontroller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cdr.dev/slog"

	"oss.terrastruct.com/gridclick/gcstore"
	"oss.terrastruct.com/gridclick/lib/geo"
	"oss.terrastruct.com/gridclick/lib/log"
)

// STORE_KEY is where the controller state lives in the settings store.
const STORE_KEY = "controllerState"

var (
	ErrNotRestored = errors.New("controller state has not been restored yet")
	ErrInProgress  = errors.New("a click run is already in progress")
)

// Window is the overlay window. It must let clicks pass through while a
// run is in progress or the clicks would land on the overlay itself.
type Window interface {
	SetTransparent(ctx context.Context, transparent bool) error
}

type Controller struct {
	Mouse Mouse
	// Window is optional.
	Window Window

	mu       sync.Mutex
	state    State
	restored bool
}

// New returns a controller holding DefaultState. It refuses to click until
// Restore has run.
func New(m Mouse) *Controller {
	return &Controller{
		Mouse: m,
		state: DefaultState(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	if st.HomePoint != nil {
		st.HomePoint = st.HomePoint.Copy()
	}
	return st
}

// Update changes the click settings. The in progress flag is owned by the
// controller and cannot be changed through it.
func (c *Controller) Update(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inProgress := c.state.CursorClickingInProgress
	fn(&c.state)
	c.state.CursorClickingInProgress = inProgress
}

// Restore merges the persisted state into the current one. Fields missing
// from the store keep their current values. A run interrupted before the
// state was last written is not considered in progress.
func (c *Controller) Restore(ctx context.Context, s *gcstore.Store) error {
	raw := gcstore.Get[map[string]json.RawMessage](s, STORE_KEY, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.CursorClickingInProgress {
		return ErrInProgress
	}
	st := c.state
	if err := st.Merge(raw); err != nil {
		return fmt.Errorf("failed to restore controller state: %w", err)
	}
	st.CursorClickingInProgress = false
	c.state = st
	c.restored = true
	log.Debug(ctx, "controller state restored", slog.F("keys", len(raw)))
	return nil
}

func (c *Controller) Save(ctx context.Context, s *gcstore.Store) error {
	return s.Set(ctx, STORE_KEY, c.State())
}

// Plan is the click plan for points under the current settings.
func (c *Controller) Plan(points geo.Points) []Action {
	st := c.State()
	return Plan(points, st.HomePoint, st.GridClickOpts, st.HomeClickOpts)
}

func (c *Controller) begin() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.restored {
		return State{}, ErrNotRestored
	}
	if c.state.CursorClickingInProgress {
		return State{}, ErrInProgress
	}
	c.state.CursorClickingInProgress = true
	return c.state, nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CursorClickingInProgress = false
}

// ClickPoints clicks every point in order with the current settings,
// making the window transparent for the duration of the run.
func (c *Controller) ClickPoints(ctx context.Context, points geo.Points) (err error) {
	st, err := c.begin()
	if err != nil {
		return err
	}
	defer c.end()

	if c.Mouse == nil {
		return errors.New("no mouse to click with")
	}

	if c.Window != nil {
		if err := c.Window.SetTransparent(ctx, true); err != nil {
			return fmt.Errorf("failed to make window transparent: %w", err)
		}
		defer func() {
			if werr := c.Window.SetTransparent(context.Background(), false); werr != nil && err == nil {
				err = fmt.Errorf("failed to restore window: %w", werr)
			}
		}()
	}

	actions := Plan(points, st.HomePoint, st.GridClickOpts, st.HomeClickOpts)
	log.Info(ctx, "clicking points",
		slog.F("points", len(points)),
		slog.F("actions", len(actions)),
		slog.F("button", st.GridClickOpts.Button),
	)
	if err := Run(ctx, c.Mouse, actions); err != nil {
		log.Error(ctx, "click run stopped", slog.Error(err))
		return err
	}
	return nil
}
