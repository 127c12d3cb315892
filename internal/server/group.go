// Package server runs the long-lived members of a process (gRPC server, HTTP
// server, background workers) and stops all of them when one fails or the
// process is signalled.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ShutdownTimeout bounds the graceful stop of HTTP servers
const ShutdownTimeout = 5 * time.Second

// Group is an errgroup whose context is cancelled by the first failing member
type Group struct {
	g   *errgroup.Group
	ctx context.Context
	log *zap.Logger
}

// NewGroup creates a group bound to ctx
func NewGroup(ctx context.Context, log *zap.Logger) *Group {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx, log: log}
}

// Context is cancelled when the parent is done or any member returns an error
func (g *Group) Context() context.Context {
	return g.ctx
}

// GRPC serves s on lis and stops it gracefully once the group is done.
// healthServer may be nil; otherwise it reports NOT_SERVING before the stop.
func (g *Group) GRPC(s *grpc.Server, lis net.Listener, healthServer *health.Server) {
	g.g.Go(func() error {
		g.log.Info("gRPC server starting", zap.String("address", lis.Addr().String()))
		// a stop that lands before Serve is a clean shutdown
		if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.g.Go(func() error {
		<-g.ctx.Done()
		g.log.Info("Stopping gRPC server")
		if healthServer != nil {
			healthServer.Shutdown()
		}
		s.GracefulStop()
		return nil
	})
}

// HTTP serves s on lis and shuts it down within ShutdownTimeout once the group is done
func (g *Group) HTTP(s *http.Server, lis net.Listener) {
	g.g.Go(func() error {
		g.log.Info("HTTP server starting", zap.String("address", lis.Addr().String()))
		if err := s.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.g.Go(func() error {
		<-g.ctx.Done()
		g.log.Info("Stopping HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	})
}

// Go runs a worker with the group context
func (g *Group) Go(worker func(ctx context.Context) error) {
	g.g.Go(func() error {
		return worker(g.ctx)
	})
}

// Wait blocks until every member has returned and reports the first error
func (g *Group) Wait() error {
	return g.g.Wait()
}
