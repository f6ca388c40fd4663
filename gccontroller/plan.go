package gccontroller

import (
	"fmt"
	"time"

	"oss.terrastruct.com/gridclick/lib/geo"
)

type ActionKind int8

const (
	ActionMove ActionKind = iota
	ActionPress
	ActionRelease
	ActionWait
)

// Action is one step of a click run. X and Y are set for moves, Button for
// presses and releases, Duration for waits.
type Action struct {
	Kind     ActionKind
	X        int
	Y        int
	Button   MouseButton
	Duration time.Duration
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("move %d,%d", a.X, a.Y)
	case ActionPress:
		return fmt.Sprintf("press %s", a.Button)
	case ActionRelease:
		return fmt.Sprintf("release %s", a.Button)
	case ActionWait:
		return fmt.Sprintf("wait %s", a.Duration)
	}
	return "unknown"
}

func move(p *geo.Point) Action {
	x, y := p.Round()
	return Action{Kind: ActionMove, X: x, Y: y}
}

func wait(d time.Duration) Action {
	return Action{Kind: ActionWait, Duration: d}
}

func click(p *geo.Point, b MouseButton, hold time.Duration) []Action {
	return []Action{
		move(p),
		{Kind: ActionPress, Button: b},
		wait(hold),
		{Kind: ActionRelease, Button: b},
	}
}

// Plan lists the actions clicking every point in order. With a home point,
// homeOpts adds clicks on it before the first point, between points and
// after the last one. Coordinates are rounded to the nearest pixel.
func Plan(points geo.Points, home *geo.Point, opts ClickOpts, homeOpts HomeClickOpts) []Action {
	var actions []Action
	interval := ms(opts.Interval)
	homeClick := func() {
		actions = append(actions, click(home, homeOpts.Button, ms(homeOpts.Duration))...)
	}

	if home != nil && homeOpts.ClickAtStart {
		homeClick()
		if len(points) > 0 {
			actions = append(actions, wait(interval))
		}
	}

	for i, p := range points {
		actions = append(actions, click(p, opts.Button, ms(opts.Duration))...)
		if i < len(points)-1 {
			actions = append(actions, wait(interval))
			if home != nil && homeOpts.ClickInBetween {
				homeClick()
				actions = append(actions, wait(interval))
			}
		}
	}

	if home != nil && homeOpts.ClickAtEnd {
		homeClick()
	}
	return actions
}
