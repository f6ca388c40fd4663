package env

import (
	"os"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// StatePath is where the controller state is persisted when no --state flag is given.
func StatePath() string {
	if p := os.Getenv("GRIDCLICK_STATE"); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "gridclick" + string(os.PathSeparator) + "__grid_clicker_internal.json"
	}
	return "__grid_clicker_internal.json"
}
