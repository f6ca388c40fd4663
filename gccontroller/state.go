// Package gccontroller turns grid points into mouse clicks.
//
// Plan computes the exact sequence of moves, presses, holds and releases for
// a run, Run dispatches it against a Mouse, and Controller owns the
// persisted click settings around both.
package gccontroller

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"oss.terrastruct.com/gridclick/lib/geo"
)

type MouseButton string

const (
	Left   MouseButton = "Left"
	Middle MouseButton = "Middle"
	Right  MouseButton = "Right"
)

func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "middle":
		return Middle, nil
	case "right":
		return Right, nil
	}
	return "", fmt.Errorf("unknown mouse button %q, expected left, middle or right", s)
}

func (b MouseButton) IsValid() bool {
	return b == Left || b == Middle || b == Right
}

// ClickOpts configures the click on every grid point. Durations are in milliseconds.
type ClickOpts struct {
	Button MouseButton `json:"button"`
	// Duration is how long the button is held.
	Duration uint64 `json:"duration"`
	// Interval is the pause between consecutive clicks.
	Interval uint64 `json:"interval"`
}

// HomeClickOpts configures the optional click on the home point.
type HomeClickOpts struct {
	Button         MouseButton `json:"button"`
	Duration       uint64      `json:"duration"`
	ClickAtStart   bool        `json:"clickAtStart"`
	ClickInBetween bool        `json:"clickInBetween"`
	ClickAtEnd     bool        `json:"clickAtEnd"`
}

func ms(v uint64) time.Duration {
	return time.Duration(v) * time.Millisecond
}

type State struct {
	GridClickOpts ClickOpts     `json:"gridClickOpts"`
	HomeClickOpts HomeClickOpts `json:"homeClickOpts"`
	HomePoint     *geo.Point    `json:"homePoint,omitempty"`
	// CursorClickingInProgress is never trusted from disk, a crash mid run
	// must not lock the controller forever.
	CursorClickingInProgress bool `json:"cursorClickingInProgress"`
}

func DefaultState() State {
	return State{
		GridClickOpts: ClickOpts{
			Button:   Left,
			Duration: 50,
			Interval: 100,
		},
		HomeClickOpts: HomeClickOpts{
			Button:   Left,
			Duration: 50,
		},
	}
}

// Merge overwrites the fields present and non null in raw, a JSON object
// written by an earlier Save. Unknown keys are ignored.
func (s *State) Merge(raw map[string]json.RawMessage) error {
	fields := map[string]interface{}{
		"gridClickOpts":            &s.GridClickOpts,
		"homeClickOpts":            &s.HomeClickOpts,
		"homePoint":                &s.HomePoint,
		"cursorClickingInProgress": &s.CursorClickingInProgress,
	}
	for k, v := range raw {
		dst, ok := fields[k]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("invalid %s: %w", k, err)
		}
	}
	return nil
}
