// Package api is the gRPC edge of the posts and statistics services.
package api

import (
	"context"
	"errors"
	"path"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/garaevmir/NanoServices/internal/metrics"
	"github.com/garaevmir/NanoServices/internal/service"
)

// NewGRPCServer creates a gRPC server with the logging interceptor and the
// standard health service registered. The returned health server starts SERVING.
func NewGRPCServer(serviceName string, log *zap.Logger) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryInterceptor(serviceName, log)))

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}

// UnaryInterceptor logs every call, records request metrics and turns panics into Internal
func UnaryInterceptor(serviceName string, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		method := path.Base(info.FullMethod)

		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic in RPC handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			elapsed := time.Since(start)
			metrics.RPCRequests.WithLabelValues(serviceName, method, code.String()).Inc()
			metrics.RPCDuration.WithLabelValues(serviceName, method).Observe(elapsed.Seconds())

			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("code", code.String()),
				zap.Duration("duration", elapsed),
			}
			if code == codes.Internal || code == codes.Unknown {
				log.Error("RPC failed", append(fields, zap.Error(err))...)
				return
			}
			log.Debug("RPC handled", fields...)
		}()

		return handler(ctx, req)
	}
}

// toStatus maps service errors onto gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, messageOf(err))
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, messageOf(err))
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func messageOf(err error) string {
	var target *service.Error
	if errors.As(err, &target) {
		return target.Message
	}
	return err.Error()
}
