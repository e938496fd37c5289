package vision

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Высота глифа Hershey Simplex при масштабе 1.0, к ней приводится FontScale.
const hersheyGlyphHeight = 22

// drawOutline рисует рамку от (r.Min) до (r.Max) включительно толщиной thickness внутрь.
func drawOutline(img draw.Image, r image.Rectangle, thickness int, col color.RGBA) {
	if thickness < 1 {
		thickness = 1
	}
	outer := image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1)
	src := image.NewUniform(col)

	strips := [...]image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+thickness),
		image.Rect(outer.Min.X, outer.Max.Y-thickness, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+thickness, outer.Max.Y),
		image.Rect(outer.Max.X-thickness, outer.Min.Y, outer.Max.X, outer.Max.Y),
	}
	for _, s := range strips {
		draw.Draw(img, s, src, image.Point{}, draw.Src)
	}
}

// drawLabel пишет текст так, что его базовая линия проходит через baseline.
// Всё, что выходит за границы изображения, отсекается.
func drawLabel(img draw.Image, text string, baseline image.Point, col color.RGBA, fontScale float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	ascent, height := m.Ascent.Ceil(), m.Height.Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	label := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	scale := fontScale * hersheyGlyphHeight / float64(height)
	sw := int(math.Round(float64(width) * scale))
	sh := int(math.Round(float64(height) * scale))
	if sw < 1 || sh < 1 {
		return
	}

	top := baseline.Y - int(math.Round(float64(ascent)*scale))
	dr := image.Rect(baseline.X, top, baseline.X+sw, top+sh)
	draw.NearestNeighbor.Scale(img, dr, label, label.Bounds(), draw.Over, nil)
}
