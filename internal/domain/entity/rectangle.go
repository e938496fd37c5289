package entity

import "image"

// Rectangle область компонента в абсолютных пикселях.
// Координаты не обрезаются по границам изображения и могут быть отрицательными.
type Rectangle struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Center возвращает координаты центра области
func (r Rectangle) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Bounds переводит область в image.Rectangle [X, X+Width) x [Y, Y+Height).
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty сообщает, что область не содержит ни одного пикселя.
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
