package images

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// OverlayColor is the status text colour.
var OverlayColor = color.RGBA{R: 0xFF, A: 0xFF}

// overlayBaseline is the text baseline on a 480px tall frame.
const overlayBaseline = 80

// DrawOverlay returns a copy of frame with text centred horizontally on the
// status baseline. frame itself is never written. Empty text yields a plain copy.
func DrawOverlay(frame image.Image, text string) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), frame, b.Min, draw.Src)
	if text == "" {
		return dst
	}

	mask, ascent := renderText(text)
	scale := overlayScale(b.Dy())
	w, h := mask.Bounds().Dx()*scale, mask.Bounds().Dy()*scale
	big := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(big, big.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	x := (b.Dx() - w) / 2
	y := overlayBaseline*b.Dy()/480 - ascent*scale
	target := image.Rect(x, y, x+w, y+h)
	draw.DrawMask(dst, target, image.NewUniform(OverlayColor), image.Point{}, big, image.Point{}, draw.Over)
	return dst
}

// overlayScale picks an integer upscale of the 13px face for frameH.
func overlayScale(frameH int) int {
	return max(frameH/160, 1)
}

// renderText draws text into an alpha mask with the basic bitmap face.
func renderText(text string) (*image.Alpha, int) {
	face := basicfont.Face7x13
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	width := font.MeasureString(face, text).Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, max(width, 1), m.Height.Ceil()))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(text)
	return mask, ascent
}
