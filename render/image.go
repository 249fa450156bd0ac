package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	mandel "github.com/marben/mandelzoom"
)

// ZoomColor outlines the zoom rectangle.
var ZoomColor = color.RGBA{R: 255, A: 255}

// Colorize paints every pixel of f with the balanced colour of its depth.
func Colorize(f *Frame, p *Palette) *image.RGBA {
	w, h := f.Depths.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, p.Color(f.Depths.At(x, y)))
		}
	}
	return img
}

// Outline draws the one pixel wide border of r onto img.
func Outline(img *image.RGBA, r mandel.ScreenRect, c color.RGBA) {
	b := r.Image().Intersect(img.Bounds())
	if b.Empty() {
		return
	}
	x1, y1, x2, y2 := r.X, r.Y, r.X+r.W-1, r.Y+r.H-1
	for x := b.Min.X; x < b.Max.X; x++ {
		if y1 == b.Min.Y {
			img.SetRGBA(x, y1, c)
		}
		if y2 == b.Max.Y-1 {
			img.SetRGBA(x, y2, c)
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if x1 == b.Min.X {
			img.SetRGBA(x1, y, c)
		}
		if x2 == b.Max.X-1 {
			img.SetRGBA(x2, y, c)
		}
	}
}

// Caption writes lines of text into the top left corner of img.
func Caption(img *image.RGBA, lines []string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ZoomColor),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(4, (i+1)*face.Height)
		d.DrawString(line)
	}
}

// ViewCaption formats v the way the viewer prints it.
func ViewCaption(v mandel.ViewRect, precision float64, maxDP int) []string {
	c := mandel.CompactView(v, precision, maxDP)
	return []string{
		"Center X = " + c[0],
		"Center Y = " + c[1],
		"Width    = " + c[2],
		"Height   = " + c[3],
	}
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return bw.Flush()
}
