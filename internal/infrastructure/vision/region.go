package vision

import (
	"image"

	"pcb-inspector/internal/domain/entity"
)

// extractRegion возвращает пересечение области с изображением.
// Область задаётся относительно левого верхнего угла изображения; результат может быть пустым.
func extractRegion(img *image.Gray, rect entity.Rectangle) *image.Gray {
	if rect.Empty() {
		return &image.Gray{}
	}
	b := img.Bounds()
	r := rect.Bounds().Add(b.Min).Intersect(b)
	if r.Empty() {
		return &image.Gray{}
	}
	return img.SubImage(r).(*image.Gray)
}
