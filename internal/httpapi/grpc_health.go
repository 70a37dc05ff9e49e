package httpapi

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCHealth exposes the stock gRPC health service so orchestrators that
// probe over gRPC get the same readiness signal as /readyz.
type GRPCHealth struct {
	server *grpc.Server
	health *health.Server
	probe  ReadyProbe
	done   chan struct{}
}

func NewGRPCHealth(probe ReadyProbe) *GRPCHealth {
	g := &GRPCHealth{
		server: grpc.NewServer(),
		health: health.NewServer(),
		probe:  probe,
		done:   make(chan struct{}),
	}
	grpc_health_v1.RegisterHealthServer(g.server, g.health)
	return g
}

// Serve blocks, refreshing the serving status from the probe until the
// listener closes.
func (g *GRPCHealth) Serve(lis net.Listener) error {
	go g.refreshLoop()
	return g.server.Serve(lis)
}

func (g *GRPCHealth) Stop() {
	close(g.done)
	g.health.Shutdown()
	g.server.GracefulStop()
}

func (g *GRPCHealth) refreshLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	g.refresh()
	for {
		select {
		case <-ticker.C:
			g.refresh()
		case <-g.done:
			return
		}
	}
}

func (g *GRPCHealth) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := g.probe.Check(ctx); err != nil {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	g.health.SetServingStatus("", status)
}
