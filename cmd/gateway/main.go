package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/garaevmir/NanoServices/docs"
	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/handler"
	"github.com/garaevmir/NanoServices/internal/logger"
	"github.com/garaevmir/NanoServices/internal/rpc"
	"github.com/garaevmir/NanoServices/internal/server"
)

// @title NanoServices API
// @version 1.0
// @description REST gateway for the posts and statistics services
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	docs.SwaggerInfo.Host = cfg.Gateway.Host

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Gateway stopped with error", zap.Error(err))
	}
	log.Info("Gateway stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	addr := fmt.Sprintf(":%s", cfg.Gateway.Port)

	log.Info("Starting gateway",
		zap.String("environment", cfg.Service.Environment),
		zap.String("address", addr),
		zap.String("posts_addr", cfg.Gateway.PostsAddr),
		zap.String("stats_addr", cfg.Gateway.StatsAddr))

	postsConn, err := dial(cfg.Gateway.PostsAddr)
	if err != nil {
		return fmt.Errorf("failed to create posts client: %w", err)
	}
	defer postsConn.Close()

	statsConn, err := dial(cfg.Gateway.StatsAddr)
	if err != nil {
		return fmt.Errorf("failed to create statistics client: %w", err)
	}
	defer statsConn.Close()

	h := handler.NewHandler(rpc.NewPostServiceClient(postsConn), rpc.NewStatsServiceClient(statsConn), log)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	g := server.NewGroup(ctx, log)
	g.HTTP(&http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}, lis)

	return g.Wait()
}

// dial creates a lazily connecting client; the connection is established on the first call
func dial(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
}
