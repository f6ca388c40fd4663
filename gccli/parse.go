package gccli

import (
	"fmt"
	"strconv"
	"strings"

	"oss.terrastruct.com/gridclick/gcrenderers/gcascii"
	"oss.terrastruct.com/gridclick/gctarget"
	"oss.terrastruct.com/gridclick/lib/geo"
)

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		out = append(out, f)
	}
	return out, nil
}

// parseRect reads "x,y,width,height".
func parseRect(s string) (gctarget.Rectangle, error) {
	f, err := parseFloats(s, 4)
	if err != nil {
		return gctarget.Rectangle{}, err
	}
	return gctarget.NewRectangle(f[0], f[1], f[2], f[3]), nil
}

// parsePoint reads "x,y". An empty string is no point at all.
func parsePoint(s string) (*geo.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	f, err := parseFloats(s, 2)
	if err != nil {
		return nil, err
	}
	return geo.NewPoint(f[0], f[1]), nil
}

func parseScale(s string) (gcascii.Scale, error) {
	f, err := parseFloats(s, 2)
	if err != nil {
		return gcascii.Scale{}, err
	}
	if f[0] <= 0 || f[1] <= 0 {
		return gcascii.Scale{}, fmt.Errorf("cell size must be positive, got %q", s)
	}
	return gcascii.Scale{CellWidth: f[0], CellHeight: f[1]}, nil
}
