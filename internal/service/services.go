package service

import (
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/store"
)

// Services aggregates the application's business operations. One instance is
// created at startup and shared by every transport handler and worker.
type Services struct {
	JobService     JobService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the service layer over the given storages and optional
// event publisher.
func NewServices(storages *store.Storages, publisher EventPublisher, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		JobService:     NewJobService(storages, publisher, cfg.Jobs, logger),
		AuthService:    NewAuthService(cfg.Auth, logger),
		AppInfoService: NewAppInfoService(cfg.App, logger),
	}
}
