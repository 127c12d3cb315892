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
	"github.com/garaevmir/NanoServices/internal/consumer"
	"github.com/garaevmir/NanoServices/internal/handler"
	"github.com/garaevmir/NanoServices/internal/logger"
	"github.com/garaevmir/NanoServices/internal/queue"
	"github.com/garaevmir/NanoServices/internal/queue/bus"
	"github.com/garaevmir/NanoServices/internal/repository/clickhouse"
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
		log.Fatal("Statistics service stopped with error", zap.Error(err))
	}
	log.Info("Statistics service stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	grpcAddr := cfg.Service.GRPCAddr("50052")
	httpAddr := cfg.Service.HTTPAddr("8082")

	log.Info("Starting statistics service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("grpc_address", grpcAddr),
		zap.String("http_address", httpAddr),
		zap.String("bus_driver", cfg.Bus.Driver))

	// Initialize ClickHouse client
	chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		return fmt.Errorf("failed to create ClickHouse client: %w", err)
	}

	repo := clickhouse.NewRepository(chClient, log)
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}()

	if err := repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Info("Database schema initialized")

	// Subscribe before serving so an unreachable bus aborts startup
	subscriber, err := bus.NewSubscriber(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	subscribe := func(context.Context) (queue.Subscriber, error) {
		return subscriber, nil
	}
	c := consumer.NewConsumer(cfg.Consumer, subscribe, repo, log)

	statsService := service.NewStatsService(repo, log)

	grpcServer, healthServer := api.NewGRPCServer(rpc.StatsServiceName, log)
	rpc.RegisterStatsServiceServer(grpcServer, api.NewStatsServer(statsService))

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

	// A failing consumer stops the servers and fails the process
	g.Go(func(ctx context.Context) error {
		log.Info("Consumer starting")
		return c.Start(ctx)
	})

	g.GRPC(grpcServer, grpcLis, healthServer)
	g.HTTP(&http.Server{
		Handler: handler.NewOpsHandler(log,
			handler.HealthCheck{Name: "clickhouse", Check: repo.Ping},
			handler.HealthCheck{Name: "consumer", Check: func(context.Context) error {
				if state := c.State(); state == consumer.StateStopped {
					return fmt.Errorf("consumer is %s", state)
				}
				return nil
			}},
		),
		ReadHeaderTimeout: 5 * time.Second,
	}, httpLis)

	return g.Wait()
}
