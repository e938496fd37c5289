package vision

import (
	"image"

	"golang.org/x/image/draw"
)

// luminance переводит изображение в оттенки серого (веса BT.601, как COLOR_BGR2GRAY).
func luminance(img image.Image) *image.Gray {
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray
}

// differenceScore суммирует модуль разницы яркости по всем пикселям.
// ok == false, если одна из областей пуста или размеры не совпадают.
func differenceScore(ref, cand *image.Gray) (score int64, ok bool) {
	rb, cb := ref.Bounds(), cand.Bounds()
	if rb.Empty() || cb.Empty() || rb.Size() != cb.Size() {
		return 0, false
	}

	w := rb.Dx()
	for y := 0; y < rb.Dy(); y++ {
		ro := ref.PixOffset(rb.Min.X, rb.Min.Y+y)
		co := cand.PixOffset(cb.Min.X, cb.Min.Y+y)
		refRow := ref.Pix[ro : ro+w]
		candRow := cand.Pix[co : co+w]
		for x := range refRow {
			d := int64(refRow[x]) - int64(candRow[x])
			if d < 0 {
				d = -d
			}
			score += d
		}
	}
	return score, true
}
