package service

import (
	"context"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService builds the metadata service. An unset version is
// reported as "N/A" rather than failing startup; the endpoint is purely
// informational.
func NewAppInfoService(cfg config.App, logger *logger.Logger) AppInfoService {
	version := cfg.Version
	if version == "" {
		version = "N/A"
	}

	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
