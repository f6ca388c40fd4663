package gccli

import (
	"context"
	"encoding/json"
	"fmt"

	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/gridclick/gccontroller"
	"oss.terrastruct.com/gridclick/gcstore"
	"oss.terrastruct.com/gridclick/lib/env"
)

func gcstoreDefaultHint() string {
	return "$GRIDCLICK_STATE or " + gcstore.DEFAULT_FILE_NAME + " in the user config directory"
}

// clickFlags override the stored controller settings. Only flags given on
// the command line or through the environment are applied.
type clickFlags struct {
	button        *string
	hold          *int64
	interval      *int64
	homeButton    *string
	homeHold      *int64
	homeAtStart   *bool
	homeInBetween *bool
	homeAtEnd     *bool

	envs map[string]string
}

func registerClickFlags(ms *xmain.State) (*clickFlags, error) {
	f := &clickFlags{
		envs: map[string]string{
			"button":          "GRIDCLICK_BUTTON",
			"hold":            "GRIDCLICK_HOLD",
			"interval":        "GRIDCLICK_INTERVAL",
			"home-button":     "GRIDCLICK_HOME_BUTTON",
			"home-hold":       "GRIDCLICK_HOME_HOLD",
			"home-at-start":   "GRIDCLICK_HOME_AT_START",
			"home-in-between": "GRIDCLICK_HOME_IN_BETWEEN",
			"home-at-end":     "GRIDCLICK_HOME_AT_END",
		},
	}
	def := gccontroller.DefaultState()
	var err error

	f.button = ms.Opts.String(f.envs["button"], "button", "", string(def.GridClickOpts.Button), "mouse button clicked on grid points (left, middle, right)")
	f.hold, err = ms.Opts.Int64(f.envs["hold"], "hold", "", int64(def.GridClickOpts.Duration), "milliseconds the button is held on each grid point")
	if err != nil {
		return nil, err
	}
	f.interval, err = ms.Opts.Int64(f.envs["interval"], "interval", "", int64(def.GridClickOpts.Interval), "milliseconds between consecutive clicks")
	if err != nil {
		return nil, err
	}
	f.homeButton = ms.Opts.String(f.envs["home-button"], "home-button", "", string(def.HomeClickOpts.Button), "mouse button clicked on the home point")
	f.homeHold, err = ms.Opts.Int64(f.envs["home-hold"], "home-hold", "", int64(def.HomeClickOpts.Duration), "milliseconds the button is held on the home point")
	if err != nil {
		return nil, err
	}
	f.homeAtStart, err = ms.Opts.Bool(f.envs["home-at-start"], "home-at-start", "", false, "click the home point before the first grid point")
	if err != nil {
		return nil, err
	}
	f.homeInBetween, err = ms.Opts.Bool(f.envs["home-in-between"], "home-in-between", "", false, "click the home point between grid points")
	if err != nil {
		return nil, err
	}
	f.homeAtEnd, err = ms.Opts.Bool(f.envs["home-at-end"], "home-at-end", "", false, "click the home point after the last grid point")
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *clickFlags) set(ms *xmain.State, name string) bool {
	return ms.Opts.Flags.Changed(name) || ms.Env.Getenv(f.envs[name]) != ""
}

func (f *clickFlags) apply(ms *xmain.State, o *overlay, st *gccontroller.State) error {
	button := func(name string, v string, dst *gccontroller.MouseButton) error {
		if !f.set(ms, name) {
			return nil
		}
		b, err := gccontroller.ParseMouseButton(v)
		if err != nil {
			return xmain.UsageErrorf("invalid --%s: %v", name, err)
		}
		*dst = b
		return nil
	}
	millis := func(name string, v int64, dst *uint64) error {
		if !f.set(ms, name) {
			return nil
		}
		if v < 0 {
			return xmain.UsageErrorf("--%s must not be negative, got %d", name, v)
		}
		*dst = uint64(v)
		return nil
	}
	flag := func(name string, v bool, dst *bool) {
		if f.set(ms, name) {
			*dst = v
		}
	}

	if err := button("button", *f.button, &st.GridClickOpts.Button); err != nil {
		return err
	}
	if err := millis("hold", *f.hold, &st.GridClickOpts.Duration); err != nil {
		return err
	}
	if err := millis("interval", *f.interval, &st.GridClickOpts.Interval); err != nil {
		return err
	}
	if err := button("home-button", *f.homeButton, &st.HomeClickOpts.Button); err != nil {
		return err
	}
	if err := millis("home-hold", *f.homeHold, &st.HomeClickOpts.Duration); err != nil {
		return err
	}
	flag("home-at-start", *f.homeAtStart, &st.HomeClickOpts.ClickAtStart)
	flag("home-in-between", *f.homeInBetween, &st.HomeClickOpts.ClickInBetween)
	flag("home-at-end", *f.homeAtEnd, &st.HomeClickOpts.ClickAtEnd)
	if o.home != nil {
		st.HomePoint = o.home.Copy()
	}
	return nil
}

func openController(ctx context.Context, ms *xmain.State, statePath string) (*gccontroller.Controller, *gcstore.Store, error) {
	if statePath == "" {
		statePath = env.StatePath()
	} else {
		statePath = ms.AbsPath(statePath)
	}
	ms.Log.Debug.Printf("using settings store %s", statePath)

	store, err := gcstore.OpenPath(ctx, statePath)
	if err != nil {
		return nil, nil, err
	}
	c := gccontroller.New(nil)
	if err := c.Restore(ctx, store); err != nil {
		store.Close()
		return nil, nil, err
	}
	return c, store, nil
}

// applyFlags folds the command line overrides into the controller settings.
func applyFlags(ms *xmain.State, c *gccontroller.Controller, o *overlay, f *clickFlags) error {
	st := c.State()
	if err := f.apply(ms, o, &st); err != nil {
		return err
	}
	c.Update(func(cur *gccontroller.State) {
		*cur = st
	})
	return nil
}

// planCmd prints the actions a click run over the grid points would dispatch.
func planCmd(ctx context.Context, ms *xmain.State, o *overlay, statePath string, f *clickFlags) (err error) {
	c, store, err := openController(ctx, ms, statePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := applyFlags(ms, c, o, f); err != nil {
		return err
	}

	res, err := o.gridPoints()
	if err != nil {
		return err
	}
	for _, a := range c.Plan(res.GridPoints) {
		fmt.Fprintln(ms.Stdout, a.String())
	}
	return nil
}

// configCmd persists the click settings given as flags and prints the result.
func configCmd(ctx context.Context, ms *xmain.State, o *overlay, statePath string, f *clickFlags) error {
	c, store, err := openController(ctx, ms, statePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := applyFlags(ms, c, o, f); err != nil {
		return err
	}
	if err := c.Save(ctx, store); err != nil {
		return err
	}

	b, err := json.MarshalIndent(c.State(), "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = ms.Stdout.Write(b)
	return err
}
