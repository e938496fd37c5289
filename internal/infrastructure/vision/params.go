package vision

import (
	"image/color"

	"pcb-inspector/internal/domain/entity"
)

// Params настройки проверки и разметки.
type Params struct {
	Threshold    int64      // порог суммарной разницы яркости
	PresentColor color.RGBA // цвет рамки найденного компонента
	MissingColor color.RGBA // цвет рамки отсутствующего компонента
	Thickness    int        // толщина рамки и текста
	FontScale    float64    // масштаб подписи в единицах Hershey Simplex
	LabelOffset  int        // расстояние от базовой линии подписи до верхней грани рамки
	JPEGQuality  int        // качество результирующего JPEG
}

// DefaultParams возвращает настройки, совпадающие с исходной калибровкой.
func DefaultParams() Params {
	return Params{
		Threshold:    entity.DefaultThreshold,
		PresentColor: color.RGBA{G: 255, A: 255},
		MissingColor: color.RGBA{R: 255, A: 255},
		Thickness:    2,
		FontScale:    0.6,
		LabelOffset:  10,
		JPEGQuality:  90,
	}
}

func (p Params) colorFor(status entity.ComponentStatus) color.RGBA {
	if status == entity.StatusMissing {
		return p.MissingColor
	}
	return p.PresentColor
}

func labelFor(name string, status entity.ComponentStatus) string {
	if status == entity.StatusMissing {
		return "Missing: " + name
	}
	return name
}
