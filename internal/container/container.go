package container

import (
	"fmt"

	"pcb-inspector/config"
	app "pcb-inspector/internal/application"
	"pcb-inspector/internal/domain/port"
	"pcb-inspector/internal/infrastructure/vision"
)

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
}

func New(userRepo port.UserRepository, sessions port.SessionRepository, inspector port.ComponentInspector) *Container {
	userService := app.NewUserService(userRepo)
	inspectionService := app.NewInspectionService(userService, sessions, inspector)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
	}
}

// Params переводит конфигурацию в настройки проверки.
func Params(cfg *config.Config) vision.Params {
	return vision.Params{
		Threshold:    cfg.Threshold,
		PresentColor: cfg.PresentColor,
		MissingColor: cfg.MissingColor,
		Thickness:    cfg.BoxThickness,
		FontScale:    cfg.FontScale,
		LabelOffset:  cfg.LabelOffset,
		JPEGQuality:  cfg.JPEGQuality,
	}
}

// NewInspector выбирает реализацию проверки по inspector_backend.
func NewInspector(cfg *config.Config) (port.ComponentInspector, error) {
	params := Params(cfg)

	switch cfg.InspectorBackend {
	case config.BackendRaster:
		return vision.NewRasterInspector(params), nil
	case config.BackendGoCV:
		return vision.NewGoCVInspector(params), nil
	default:
		return nil, fmt.Errorf("unknown inspector backend %q", cfg.InspectorBackend)
	}
}
