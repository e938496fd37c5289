//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// ErrGoCVDisabled бинарник собран без тега gocv.
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

type GoCVInspector struct {
	Params Params
}

// NewGoCVInspector создаёт инспектор-заглушку (без OpenCV).
func NewGoCVInspector(params Params) *GoCVInspector {
	return &GoCVInspector{Params: params}
}

// Inspect возвращает ошибку, если сборка без тега gocv.
func (i *GoCVInspector) Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*entity.InspectionResult, []byte, error) {
	_ = ctx
	_ = reference
	_ = candidate
	_ = manifest
	return nil, nil, ErrGoCVDisabled
}

var _ port.ComponentInspector = (*GoCVInspector)(nil)
