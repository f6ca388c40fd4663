package gccli

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/gridclick/gcrenderers/gcascii"
)

// newScreen is replaced in tests with a simulation screen.
var newScreen = tcell.NewScreen

// previewCmd draws the overlay on the terminal until a key is pressed.
func previewCmd(ctx context.Context, ms *xmain.State, o *overlay) error {
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	w, h := o.size()
	s := gcascii.New(w, h, o.scale)
	res, err := o.draw(s)
	if err != nil {
		return err
	}
	ms.Log.Debug.Printf("previewing %d grid points", len(res.GridPoints))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks PollEvent
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	redraw := func() {
		screen.Clear()
		s.Blit(screen, 0, 0)
		screen.Show()
	}
	redraw()
	for {
		switch screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			redraw()
		case *tcell.EventKey:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		}
	}
}
