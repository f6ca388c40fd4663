package gccli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"oss.terrastruct.com/util-go/go2"
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/gridclick/gcgrid"
	"oss.terrastruct.com/gridclick/gcrenderers/gcascii"
	"oss.terrastruct.com/gridclick/gcrenderers/gcoverlay"
	"oss.terrastruct.com/gridclick/gcrenderers/gcpng"
	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/gcrenderers/gcsvg"
	"oss.terrastruct.com/gridclick/gctarget"
	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/geo"
	"oss.terrastruct.com/gridclick/lib/log"
	"oss.terrastruct.com/gridclick/lib/version"
)

const (
	DEFAULT_PADDING  = 20
	HOME_MARKER_SIZE = 8
	LABEL_OFFSET     = 6
)

// overlay is everything needed to draw one frame.
type overlay struct {
	rect  gctarget.Rectangle
	style gctarget.RectangleStyle
	grid  gcgrid.Grid
	home  *geo.Point
	label string
	pad   int
	scale gcascii.Scale
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	rectFlag := ms.Opts.String("GRIDCLICK_RECT", "rect", "r", "0,0,100,100", "selection rectangle as x,y,width,height in screen pixels")
	rowsFlag, err := ms.Opts.Int64("GRIDCLICK_ROWS", "rows", "", 1, "number of grid rows")
	if err != nil {
		return err
	}
	columnsFlag, err := ms.Opts.Int64("GRIDCLICK_COLUMNS", "columns", "c", 1, "number of grid columns")
	if err != nil {
		return err
	}
	alignmentFlag := ms.Opts.String("GRIDCLICK_ALIGNMENT", "alignment", "a", string(gcgrid.MiddleCenter), "where each click point sits in its cell. One of "+alignmentNames())
	strokeFlag := ms.Opts.String("GRIDCLICK_STROKE", "stroke", "", gctarget.DefaultRectangleStyle.StrokeColor, "color of the border, grid lines and points. none hides them")
	fillFlag := ms.Opts.String("GRIDCLICK_FILL", "fill", "", gctarget.DefaultRectangleStyle.FillColor, "fill color of the rectangle")
	lineWidthFlag, err := ms.Opts.Float64("GRIDCLICK_LINE_WIDTH", "line-width", "", gctarget.DEFAULT_LINE_WIDTH, "border width. Grid lines and points are scaled from it")
	if err != nil {
		return err
	}
	homeFlag := ms.Opts.String("GRIDCLICK_HOME", "home", "", "", "home point as x,y. Drawn as a cross, and clicked around the grid when configured")
	labelFlag := ms.Opts.String("GRIDCLICK_LABEL", "label", "", "", "text drawn above the rectangle")
	padFlag, err := ms.Opts.Int64("GRIDCLICK_PAD", "pad", "", DEFAULT_PADDING, "pixels added right of and below the overlay")
	if err != nil {
		return err
	}
	cellFlag := ms.Opts.String("GRIDCLICK_CELL", "cell", "", fmt.Sprintf("%d,%d", gcascii.DEFAULT_CELL_WIDTH, gcascii.DEFAULT_CELL_HEIGHT), "pixels per character cell as width,height for text output and preview")
	stateFlag := ms.Opts.String("GRIDCLICK_STATE", "state", "", "", "settings store used by plan and config. A .db or .sqlite extension selects SQLite.\nDefaults to "+gcstoreDefaultHint())
	stdoutFormatFlag := ms.Opts.String("", "stdout-format", "", "", "output format when writing to stdout (svg, png, ascii, txt). Usage: gridclick --stdout-format png - > overlay.png")
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}
	clickFlags, err := registerClickFlags(ms)
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	ctx = log.Writer(ctx, ms.Stderr, *debugFlag)
	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
	}

	args := ms.Opts.Flags.Args()
	if len(args) > 0 && args[0] == "version" {
		if len(args) > 1 {
			return xmain.UsageErrorf("version subcommand accepts no arguments")
		}
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}
	if len(args) == 0 {
		if *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	}

	o, err := parseOverlay(ms, *rectFlag, *rowsFlag, *columnsFlag, *alignmentFlag, *strokeFlag, *fillFlag, *lineWidthFlag, *homeFlag, *labelFlag, *padFlag, *cellFlag)
	if err != nil {
		return err
	}
	ms.Log.Debug.Printf("rendering %v with %v", o.rect, o.grid)

	switch args[0] {
	case "points":
		if len(args) > 1 {
			return xmain.UsageErrorf("points subcommand accepts no arguments")
		}
		return pointsCmd(ms, o)
	case "plan":
		if len(args) > 1 {
			return xmain.UsageErrorf("plan subcommand accepts no arguments")
		}
		return planCmd(ctx, ms, o, *stateFlag, clickFlags)
	case "config":
		if len(args) > 1 {
			return xmain.UsageErrorf("config subcommand accepts no arguments")
		}
		return configCmd(ctx, ms, o, *stateFlag, clickFlags)
	case "preview":
		if len(args) > 1 {
			return xmain.UsageErrorf("preview subcommand accepts no arguments")
		}
		return previewCmd(ctx, ms, o)
	}

	if len(args) > 1 {
		return xmain.UsageErrorf("too many arguments passed")
	}
	outputPath := args[0]
	outputFormat, err := getOutputFormat(stdoutFormatFlag, outputPath)
	if err != nil {
		return xmain.UsageErrorf("%v", err)
	}
	if outputPath != "-" {
		outputPath = ms.AbsPath(outputPath)
	} else if outputFormat.isBinary() {
		ms.Log.Debug.Printf("writing binary %s output to stdout", outputFormat)
	}

	out, res, err := render(o, outputFormat)
	if err != nil {
		return err
	}
	err = ms.WritePath(outputPath, out)
	if err != nil {
		return err
	}
	if outputPath != "-" {
		ms.Log.Success.Printf("successfully rendered %d grid points to %v", len(res.GridPoints), filepath.Base(outputPath))
	}
	return nil
}

func alignmentNames() string {
	var names []string
	for _, a := range gcgrid.Alignments() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func parseOverlay(ms *xmain.State, rect string, rows, columns int64, alignment, stroke, fill string, lineWidth float64, home, label string, pad int64, cell string) (*overlay, error) {
	r, err := parseRect(rect)
	if err != nil {
		return nil, xmain.UsageErrorf("invalid --rect: %v", err)
	}
	if r.Width <= 0 || r.Height <= 0 {
		ms.Log.Warn.Printf("--rect %v has no area, nothing will be drawn", r)
	}
	a, err := gcgrid.ParseAlignment(alignment)
	if err != nil {
		return nil, xmain.UsageErrorf("invalid --alignment: %v", err)
	}
	for _, c := range []struct {
		flag  string
		value string
	}{{"stroke", stroke}, {"fill", fill}} {
		if color.IsNone(c.value) {
			continue
		}
		if _, err := color.Parse(c.value); err != nil {
			return nil, xmain.UsageErrorf("invalid --%s: %v", c.flag, err)
		}
	}
	if lineWidth <= 0 || math.IsInf(lineWidth, 0) || math.IsNaN(lineWidth) {
		return nil, xmain.UsageErrorf("--line-width must be a positive number, got %v", lineWidth)
	}
	if rows > gcgrid.MAX_DIMENSION || columns > gcgrid.MAX_DIMENSION {
		return nil, xmain.UsageErrorf("--rows and --columns must be at most %d, got %dx%d", gcgrid.MAX_DIMENSION, rows, columns)
	}
	if rows < 1 || columns < 1 {
		ms.Log.Warn.Printf("grid of %dx%d is treated as at least 1x1", rows, columns)
	}
	h, err := parsePoint(home)
	if err != nil {
		return nil, xmain.UsageErrorf("invalid --home: %v", err)
	}
	if pad < 0 {
		return nil, xmain.UsageErrorf("--pad must not be negative, got %d", pad)
	}
	scale, err := parseScale(cell)
	if err != nil {
		return nil, xmain.UsageErrorf("invalid --cell: %v", err)
	}
	return &overlay{
		rect: r,
		style: gctarget.RectangleStyle{
			FillColor:   fill,
			StrokeColor: stroke,
			LineWidth:   lineWidth,
		},
		grid:  gcgrid.New(int(rows), int(columns), a),
		home:  h,
		label: label,
		pad:   int(pad),
		scale: scale,
	}, nil
}

// size is the canvas size needed to show the overlay in absolute screen coordinates.
func (o *overlay) size() (int, int) {
	right := o.rect.X + math.Max(o.rect.Width, 0)
	bottom := o.rect.Y + math.Max(o.rect.Height, 0)
	if o.home != nil {
		right = math.Max(right, o.home.X+HOME_MARKER_SIZE)
		bottom = math.Max(bottom, o.home.Y+HOME_MARKER_SIZE)
	}
	w := go2.Max(int(math.Ceil(right))+o.pad, 1)
	h := go2.Max(int(math.Ceil(bottom))+o.pad, 1)
	return w, h
}

// draw paints the whole overlay: rectangle and grid, home cross, label.
func (o *overlay) draw(s gcsurface.Surface) (*gcoverlay.Result, error) {
	res, err := gcoverlay.RenderRectangleWithGrid(s, o.rect, &gcoverlay.RenderOpts{
		Style: &o.style,
		Grid:  &o.grid,
	})
	if err != nil {
		return nil, err
	}
	if o.home != nil {
		hs := gctarget.DefaultHomeStyle
		err = gcoverlay.DrawMarkerCross(s, o.home.X, o.home.Y, HOME_MARKER_SIZE, hs.StrokeColor, hs.LineWidth)
		if err != nil {
			return nil, err
		}
	}
	if o.label != "" {
		c := o.style.StrokeColor
		if color.IsNone(c) {
			c = color.White
		}
		y := math.Max(o.rect.Y-LABEL_OFFSET, gcoverlay.DEFAULT_FONT_SIZE)
		err = gcoverlay.DrawLabel(s, o.label, o.rect.X, y, c, 0, 0)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func render(o *overlay, format exportExtension) ([]byte, *gcoverlay.Result, error) {
	w, h := o.size()
	switch format {
	case PNG:
		s := gcpng.New(w, h)
		res, err := o.draw(s)
		if err != nil {
			return nil, nil, err
		}
		b, err := s.Bytes()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode png: %w", err)
		}
		return b, res, nil
	case TXT:
		s := gcascii.New(w, h, o.scale)
		res, err := o.draw(s)
		if err != nil {
			return nil, nil, err
		}
		return s.Bytes(), res, nil
	default:
		s := gcsvg.New(w, h)
		res, err := o.draw(s)
		if err != nil {
			return nil, nil, err
		}
		return s.Bytes(), res, nil
	}
}

// gridPoints computes the points without producing any output.
func (o *overlay) gridPoints() (*gcoverlay.Result, error) {
	return o.draw(gcsurface.NewRecorder())
}

func pointsCmd(ms *xmain.State, o *overlay) error {
	res, err := o.gridPoints()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = ms.Stdout.Write(b)
	return err
}
