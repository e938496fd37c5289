//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log"

	"gocv.io/x/gocv"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// GoCVInspector проверяет плату средствами OpenCV.
type GoCVInspector struct {
	Params Params
}

// NewGoCVInspector создаёт инспектор на OpenCV.
func NewGoCVInspector(params Params) *GoCVInspector {
	return &GoCVInspector{Params: params}
}

// Inspect сравнивает области манифеста на эталоне и проверяемом фото.
func (i *GoCVInspector) Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*entity.InspectionResult, []byte, error) {
	_ = ctx

	refMat, err := decodeToMat(reference)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reference: %v", entity.ErrInvalidImage, err)
	}
	defer refMat.Close()

	candMat, err := decodeToMat(candidate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: candidate: %v", entity.ErrInvalidImage, err)
	}
	defer candMat.Close()

	if refMat.Cols() != candMat.Cols() || refMat.Rows() != candMat.Rows() {
		return nil, nil, fmt.Errorf("%w: reference is %dx%d, candidate is %dx%d",
			entity.ErrInvalidImage, refMat.Cols(), refMat.Rows(), candMat.Cols(), candMat.Rows())
	}

	// Переводим в серый до разметки, чтобы подписи не попадали в соседние области.
	refGray := gocv.NewMat()
	defer refGray.Close()
	gocv.CvtColor(refMat, &refGray, gocv.ColorBGRToGray)

	candGray := gocv.NewMat()
	defer candGray.Close()
	gocv.CvtColor(candMat, &candGray, gocv.ColorBGRToGray)

	imgW, imgH := candMat.Cols(), candMat.Rows()
	bounds := image.Rect(0, 0, imgW, imgH)
	result := &entity.InspectionResult{ImageWidth: imgW, ImageHeight: imgH}

	for _, spec := range manifest {
		rect := spec.Rect(imgW, imgH)

		roi := image.Rectangle{}
		if !rect.Empty() {
			roi = rect.Bounds().Intersect(bounds)
		}
		if roi.Empty() {
			log.Printf("Skipping component %q: empty region %+v", spec.Name, rect)
			result.Skipped = append(result.Skipped, spec.Name)
			continue
		}

		score := regionScore(refGray, candGray, roi)
		status := entity.Classify(score, i.Params.Threshold)

		col := i.Params.colorFor(status)
		box := image.Rect(rect.X, rect.Y, rect.X+rect.Width+1, rect.Y+rect.Height+1)
		gocv.Rectangle(&candMat, box, col, i.Params.Thickness)
		gocv.PutText(&candMat, labelFor(spec.Name, status), image.Pt(rect.X, rect.Y-i.Params.LabelOffset),
			gocv.FontHersheySimplex, i.Params.FontScale, col, i.Params.Thickness)

		result.Add(entity.ComponentOutcome{
			Spec:   spec,
			Rect:   rect,
			Score:  score,
			Status: status,
		})
	}
	result.Finalize()

	img, err := candMat.ToImage()
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: i.Params.JPEGQuality}); err != nil {
		return nil, nil, err
	}

	return result, buf.Bytes(), nil
}

// regionScore считает сумму абсолютной разницы яркости внутри roi.
func regionScore(refGray, candGray gocv.Mat, roi image.Rectangle) int64 {
	refROI := refGray.Region(roi)
	defer refROI.Close()
	candROI := candGray.Region(roi)
	defer candROI.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(refROI, candROI, &diff)

	return int64(diff.Sum().Val1)
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), errors.New("empty image data")
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.New("failed to decode image")
	}
	return mat, nil
}

var _ port.ComponentInspector = (*GoCVInspector)(nil)
