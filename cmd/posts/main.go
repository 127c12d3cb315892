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

	"github.com/garaevmir/NanoServices/internal/api"
	"github.com/garaevmir/NanoServices/internal/config"
	"github.com/garaevmir/NanoServices/internal/handler"
	"github.com/garaevmir/NanoServices/internal/logger"
	"github.com/garaevmir/NanoServices/internal/producer"
	"github.com/garaevmir/NanoServices/internal/queue/bus"
	"github.com/garaevmir/NanoServices/internal/repository/postgres"
	"github.com/garaevmir/NanoServices/internal/rpc"
	"github.com/garaevmir/NanoServices/internal/server"
	"github.com/garaevmir/NanoServices/internal/service"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Posts service stopped with error", zap.Error(err))
	}
	log.Info("Posts service stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	grpcAddr := cfg.Service.GRPCAddr("50051")
	httpAddr := cfg.Service.HTTPAddr("8081")

	log.Info("Starting posts service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("grpc_address", grpcAddr),
		zap.String("http_address", httpAddr),
		zap.String("bus_driver", cfg.Bus.Driver))

	// Initialize Postgres client
	pgClient, err := postgres.NewClient(ctx, &cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to create Postgres client: %w", err)
	}

	repo := postgres.NewRepository(pgClient, log)
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close Postgres client", zap.Error(err))
		}
	}()

	if err := repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Info("Database schema initialized")

	// Initialize event publisher
	publisher, err := bus.NewPublisher(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}

	events := producer.New(publisher, cfg.Producer, log)
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("Failed to close event producer", zap.Error(err))
		}
	}()

	postService := service.NewPostService(repo, events, log)

	grpcServer, healthServer := api.NewGRPCServer(rpc.PostServiceName, log)
	rpc.RegisterPostServiceServer(grpcServer, api.NewPostServer(postService))

	grpcLis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	g := server.NewGroup(ctx, log)
	g.GRPC(grpcServer, grpcLis, healthServer)
	g.HTTP(&http.Server{
		Handler:           handler.NewOpsHandler(log, handler.HealthCheck{Name: "postgres", Check: repo.Ping}),
		ReadHeaderTimeout: 5 * time.Second,
	}, httpLis)

	return g.Wait()
}
