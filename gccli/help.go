package gccli

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/gridclick/lib/version"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--rect=x,y,w,h] [--rows=1] [--columns=1] [--alignment=center] [file.svg | file.png | file.txt | -]
  %[1]s points [flags]
  %[1]s plan [flags]
  %[1]s config [flags]
  %[1]s preview [flags]

%[1]s draws a selection rectangle subdivided into a grid, with a marker on the
point that gets clicked in every cell. The output format follows the file
extension and defaults to svg.

Use - to write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s points - Prints the rectangle and its grid points as JSON
  %[1]s plan - Prints every mouse action a click run over the grid would dispatch
  %[1]s config - Saves the click flags given to the settings store and prints the result
  %[1]s preview - Draws the overlay in the terminal until a key is pressed
  %[1]s version - Prints the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Defaults())
}
