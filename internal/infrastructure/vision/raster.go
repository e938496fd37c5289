package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// RasterInspector проверяет плату на чистом Go, без OpenCV.
type RasterInspector struct {
	Params Params
}

// NewRasterInspector создаёт инспектор с заданными настройками.
func NewRasterInspector(params Params) *RasterInspector {
	return &RasterInspector{Params: params}
}

// Inspect декодирует оба фото, проверяет компоненты и возвращает размеченное фото в JPEG.
func (r *RasterInspector) Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*entity.InspectionResult, []byte, error) {
	_ = ctx

	refImg, err := decodeImage(reference, "reference")
	if err != nil {
		return nil, nil, err
	}
	candImg, err := decodeImage(candidate, "candidate")
	if err != nil {
		return nil, nil, err
	}

	result, err := r.InspectImages(refImg, candImg, manifest)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, candImg, &jpeg.Options{Quality: r.Params.JPEGQuality}); err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}

	return result, buf.Bytes(), nil
}

// InspectImages проверяет компоненты манифеста и рисует разметку прямо на candidate.
// Яркость обоих изображений считается до разметки, поэтому подписи не влияют на оценки соседей.
func (r *RasterInspector) InspectImages(reference, candidate *image.RGBA, manifest entity.Manifest) (*entity.InspectionResult, error) {
	if reference == nil || candidate == nil {
		return nil, fmt.Errorf("%w: image is not set", entity.ErrInvalidImage)
	}
	rb, cb := reference.Bounds(), candidate.Bounds()
	if rb.Empty() || cb.Empty() {
		return nil, fmt.Errorf("%w: empty image", entity.ErrInvalidImage)
	}
	if rb.Size() != cb.Size() {
		return nil, fmt.Errorf("%w: reference is %dx%d, candidate is %dx%d",
			entity.ErrInvalidImage, rb.Dx(), rb.Dy(), cb.Dx(), cb.Dy())
	}

	refGray := luminance(reference)
	candGray := luminance(candidate)

	result := &entity.InspectionResult{
		ImageWidth:  cb.Dx(),
		ImageHeight: cb.Dy(),
	}

	for _, spec := range manifest {
		rect := spec.Rect(cb.Dx(), cb.Dy())

		score, ok := differenceScore(extractRegion(refGray, rect), extractRegion(candGray, rect))
		if !ok {
			log.Printf("Skipping component %q: empty region %+v", spec.Name, rect)
			result.Skipped = append(result.Skipped, spec.Name)
			continue
		}

		status := entity.Classify(score, r.Params.Threshold)
		r.annotate(candidate, rect, spec.Name, status)
		result.Add(entity.ComponentOutcome{
			Spec:   spec,
			Rect:   rect,
			Score:  score,
			Status: status,
		})
	}

	result.Finalize()
	return result, nil
}

func (r *RasterInspector) annotate(img *image.RGBA, rect entity.Rectangle, name string, status entity.ComponentStatus) {
	col := r.Params.colorFor(status)
	box := rect.Bounds().Add(img.Bounds().Min)

	drawOutline(img, box, r.Params.Thickness, col)
	drawLabel(img, labelFor(name, status), image.Pt(box.Min.X, box.Min.Y-r.Params.LabelOffset), col, r.Params.FontScale)
}

// decodeImage декодирует фото в RGBA с началом координат в (0, 0).
func decodeImage(data []byte, label string) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s image is empty", entity.ErrInvalidImage, label)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s image: %v", entity.ErrInvalidImage, label, err)
	}

	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba, nil
}

var _ port.ComponentInspector = (*RasterInspector)(nil)
