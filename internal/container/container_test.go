package container

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/config"
	"pcb-inspector/internal/infrastructure/storage"
	"pcb-inspector/internal/infrastructure/vision"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		InspectorBackend: backend,
		Threshold:        777,
		BoxThickness:     3,
		FontScale:        0.5,
		LabelOffset:      8,
		JPEGQuality:      80,
		PresentColor:     color.RGBA{B: 255, A: 255},
		MissingColor:     color.RGBA{R: 255, G: 255, A: 255},
	}
}

func TestNewInspector(t *testing.T) {
	inspector, err := NewInspector(testConfig(config.BackendRaster))
	require.NoError(t, err)
	raster, ok := inspector.(*vision.RasterInspector)
	require.True(t, ok)
	require.Equal(t, int64(777), raster.Params.Threshold)
	require.Equal(t, 3, raster.Params.Thickness)
	require.Equal(t, color.RGBA{B: 255, A: 255}, raster.Params.PresentColor)

	inspector, err = NewInspector(testConfig(config.BackendGoCV))
	require.NoError(t, err)
	require.IsType(t, &vision.GoCVInspector{}, inspector)

	_, err = NewInspector(testConfig("tpu"))
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	inspector, err := NewInspector(testConfig(config.BackendRaster))
	require.NoError(t, err)

	c := New(storage.NewMemoryUserRepository(), storage.NewMemorySessionRepository(), inspector)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.InspectionService)
}
