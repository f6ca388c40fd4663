// Package gcpng implements a gcsurface.Surface that rasterizes into an RGBA image.
//
// Strokes use butt caps with round joins. Text is always set in Go Regular
// whatever family the font asks for.
package gcpng

import (
	"bytes"
	"image"
	stdcolor "image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/geo"
)

var (
	regularOnce sync.Once
	regular     *truetype.Font
	regularErr  error
)

func regularFont() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

type Surface struct {
	gcsurface.Painter
	gcsurface.Path

	img    *image.RGBA
	faces  map[float64]font.Face
	closed bool
}

var _ gcsurface.Surface = &Surface{}

// New returns a transparent width by height surface.
func New(width, height int) *Surface {
	return &Surface{
		Painter: gcsurface.NewPainter(),
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		faces:   make(map[float64]font.Face),
	}
}

func (s *Surface) Save() error {
	if s == nil || s.closed {
		return gcsurface.ErrSurfaceUnavailable
	}
	return s.Painter.Save()
}

func (s *Surface) Close() {
	s.closed = true
}

// Image is the backing image. It stays valid after Close.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// EncodePNG closes the surface and writes it to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.Close()
	return png.Encode(w, s.img)
}

func (s *Surface) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := s.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) Fill() {
	st := s.State()
	if color.IsNone(st.FillColor) {
		return
	}
	polys := s.Flatten()
	if len(polys) == 0 {
		return
	}
	mask := s.newMask()
	z := s.newRasterizer()
	for _, pl := range polys {
		addPolygon(z, pl.Points)
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	s.composite(mask, st.FillColor, st.Shadow)
}

func (s *Surface) Stroke() {
	st := s.State()
	if color.IsNone(st.StrokeColor) {
		return
	}
	polys := s.Flatten()
	if len(polys) == 0 {
		return
	}
	half := st.LineWidth / 2
	dash := gcsurface.Resolvable(st.LineDash, 1)
	mask := s.newMask()
	z := s.newRasterizer()
	for _, pl := range polys {
		for _, piece := range gcsurface.Dash(pl, dash) {
			for i := 1; i < len(piece); i++ {
				addQuad(z, piece[i-1], piece[i], half)
				if i < len(piece)-1 {
					addPolygon(z, gcsurface.ArcPoints(piece[i].X, piece[i].Y, half, 0, 2*math.Pi))
				}
			}
		}
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	s.composite(mask, st.StrokeColor, st.Shadow)
}

func (s *Surface) FillText(text string, x, y float64) {
	st := s.State()
	if color.IsNone(st.FillColor) {
		return
	}
	mask, ok := s.textMask(text, x, y, st.Font, 0)
	if !ok {
		return
	}
	s.composite(mask, st.FillColor, st.Shadow)
}

// StrokeText approximates an outline by stamping the glyphs around a circle
// of the line width.
func (s *Surface) StrokeText(text string, x, y float64) {
	st := s.State()
	if color.IsNone(st.StrokeColor) {
		return
	}
	mask, ok := s.textMask(text, x, y, st.Font, st.LineWidth/2)
	if !ok {
		return
	}
	s.composite(mask, st.StrokeColor, st.Shadow)
}

func (s *Surface) face(size float64) (font.Face, bool) {
	if f, ok := s.faces[size]; ok {
		return f, true
	}
	ttf, err := regularFont()
	if err != nil {
		return nil, false
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	s.faces[size] = f
	return f, true
}

func (s *Surface) textMask(text string, x, y float64, f gcsurface.Font, spread float64) (*image.Alpha, bool) {
	face, ok := s.face(f.Size)
	if !ok || text == "" {
		return nil, false
	}
	mask := s.newMask()
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}
	offsets := []*geo.Point{geo.NewPoint(0, 0)}
	if spread > 0 {
		offsets = gcsurface.ArcPoints(0, 0, spread, 0, 2*math.Pi)
	}
	for _, o := range offsets {
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(math.Round((x + o.X) * 64)),
			Y: fixed.Int26_6(math.Round((y + o.Y) * 64)),
		}
		d.DrawString(text)
	}
	return mask, true
}

func (s *Surface) newMask() *image.Alpha {
	return image.NewAlpha(s.img.Bounds())
}

func (s *Surface) newRasterizer() *vector.Rasterizer {
	b := s.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

// composite paints c through mask, with the shadow underneath.
func (s *Surface) composite(mask *image.Alpha, c string, sh gcsurface.Shadow) {
	paint, err := color.Parse(c)
	if err != nil || paint.A == 0 {
		return
	}
	if sh.Visible() {
		// a translucent paint casts a proportionally lighter shadow
		if shadowColor, err := color.WithAlpha(sh.Color, float64(paint.A)/255); err == nil && shadowColor.A > 0 {
			blurred := boxBlur(mask, int(math.Ceil(sh.Blur/2)))
			offset := image.Pt(-int(math.Round(sh.OffsetX)), -int(math.Round(sh.OffsetY)))
			draw.DrawMask(s.img, s.img.Bounds(), image.NewUniform(shadowColor), image.Point{}, blurred, offset, draw.Over)
		}
	}
	draw.DrawMask(s.img, s.img.Bounds(), image.NewUniform(paint), image.Point{}, mask, image.Point{}, draw.Over)
}

func addPolygon(z *vector.Rasterizer, pts geo.Points) {
	if len(pts) < 2 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// addQuad adds the rectangle covering segment ab at half width h. Its winding
// matches ArcPoints so overlapping pieces do not cancel out.
func addQuad(z *vector.Rasterizer, a, b *geo.Point, h float64) {
	l := a.DistanceTo(b)
	if l == 0 || h <= 0 {
		return
	}
	nx := -(b.Y - a.Y) / l * h
	ny := (b.X - a.X) / l * h
	addPolygon(z, geo.Points{
		geo.NewPoint(a.X-nx, a.Y-ny),
		geo.NewPoint(b.X-nx, b.Y-ny),
		geo.NewPoint(b.X+nx, b.Y+ny),
		geo.NewPoint(a.X+nx, a.Y+ny),
	})
}

// boxBlur is a separable box blur of radius r, a cheap stand-in for a gaussian.
func boxBlur(src *image.Alpha, r int) *image.Alpha {
	if r <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewAlpha(b)
	dst := image.NewAlpha(b)
	span := 2*r + 1

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for k := -r; k <= r; k++ {
				if xx := x + k; xx >= 0 && xx < w {
					sum += int(src.Pix[y*src.Stride+xx])
				}
			}
			tmp.Pix[y*tmp.Stride+x] = uint8(sum / span)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for k := -r; k <= r; k++ {
				if yy := y + k; yy >= 0 && yy < h {
					sum += int(tmp.Pix[yy*tmp.Stride+x])
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / span)
		}
	}
	return dst
}

// At returns the pixel at (x, y) without premultiplied alpha.
func (s *Surface) At(x, y int) stdcolor.NRGBA {
	return stdcolor.NRGBAModel.Convert(s.img.At(x, y)).(stdcolor.NRGBA)
}
