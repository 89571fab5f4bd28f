package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/service"
)

// Handler is the root gRPC transport handler.
//
// The gRPC surface of the service is intentionally small: it exposes the
// standard grpc.health.v1 service so orchestrators can probe liveness
// without going through the HTTP API.
type Handler struct {
	services *service.Services

	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches the handler's services to the given gRPC server.
func (h *Handler) Register(srv *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(srv, h.health)
	h.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown transitions all health statuses to NOT_SERVING so probes fail
// before the process exits.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
