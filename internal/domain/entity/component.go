package entity

import (
	"fmt"
	"math"
)

// ComponentStatus итог классификации компонента
type ComponentStatus string

const (
	StatusPresent ComponentStatus = "present" // компонент на месте
	StatusMissing ComponentStatus = "missing" // компонент отсутствует или смещён
)

// DefaultThreshold порог суммарной разницы яркости, подобранный для 8-битных
// изображений и областей типичного размера компонента.
const DefaultThreshold int64 = 50000

// ComponentSpec одна запись манифеста. Координаты нормализованы к размеру
// изображения: X, Y — центр, W, H — ширина и высота.
type ComponentSpec struct {
	Name string  `json:"name" yaml:"name"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	W    float64 `json:"w" yaml:"w"`
	H    float64 `json:"h" yaml:"h"`
}

// Rect переводит нормализованные координаты в пиксели изображения imgW x imgH.
// Результат не обрезается по границам изображения.
func (c ComponentSpec) Rect(imgW, imgH int) Rectangle {
	cx := c.X * float64(imgW)
	cy := c.Y * float64(imgH)
	bw := c.W * float64(imgW)
	bh := c.H * float64(imgH)

	return Rectangle{
		X:      int(math.Floor(cx - bw/2)),
		Y:      int(math.Floor(cy - bh/2)),
		Width:  int(bw),
		Height: int(bh),
	}
}

// Validate проверяет наличие имени и диапазоны координат.
func (c ComponentSpec) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: component name is empty", ErrInvalidManifest)
	}
	for _, v := range []float64{c.X, c.Y, c.W, c.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: component %q has non-finite coordinates", ErrInvalidManifest, c.Name)
		}
	}
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 {
		return fmt.Errorf("%w: component %q center (%g, %g) is outside [0, 1]", ErrInvalidManifest, c.Name, c.X, c.Y)
	}
	if c.W <= 0 || c.W > 1 || c.H <= 0 || c.H > 1 {
		return fmt.Errorf("%w: component %q size (%g, %g) is outside (0, 1]", ErrInvalidManifest, c.Name, c.W, c.H)
	}
	return nil
}

// Manifest упорядоченный список компонентов платы
type Manifest []ComponentSpec

// Validate проверяет каждую запись манифеста.
func (m Manifest) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no components", ErrInvalidManifest)
	}
	for i, c := range m {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// Classify сравнивает оценку с порогом: строго больше порога — компонент отсутствует.
func Classify(score, threshold int64) ComponentStatus {
	if score > threshold {
		return StatusMissing
	}
	return StatusPresent
}
