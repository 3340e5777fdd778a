package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-dungeon/internal/config"
	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/run"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
)

const redisPingTimeout = 5 * time.Second

var grpcPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the dungeon gRPC server. Runs are kept in Redis when redis.address is set, in memory otherwise.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides server.port)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logging.Info().Msg("received shutdown signal, gracefully stopping")
		cancel()
	}()

	port := cfg.Server.Port
	if grpcPort != 0 {
		port = grpcPort
	}

	repo, err := newRunRepository(ctx, cfg)
	if err != nil {
		return err
	}

	runService, err := run.NewOrchestrator(&run.Config{
		Repository:    repo,
		EventBus:      events.NewBus(),
		DiceRoller:    dice.DefaultRoller,
		Clock:         clock.New(),
		IDGenerator:   idgen.NewUUID(idgen.RunPrefix),
		DungeonConfig: cfg.Dungeon,
		Layout:        cfg.Layout,
		SpawnRules:    cfg.Spawns,
		RunTTL:        cfg.Redis.TTL.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create run service: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{RunService: runService})
	if err != nil {
		return fmt.Errorf("failed to create dungeon handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	recovery := grpc_recovery.WithRecoveryHandler(func(p any) error {
		logging.Error().Str("panic", fmt.Sprint(p)).Msg("recovered from handler panic")
		return status.Error(codes.Internal, "internal error")
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logging.GRPCLogger()),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logging.GRPCLogger()),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)

	v1alpha1.RegisterDungeonServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		logging.Info().Int("port", port).Msg("gRPC server starting")
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logging.Warn().Msg("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logging.Info().Msg("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newRunRepository(ctx context.Context, cfg *config.File) (runs.Repository, error) {
	if cfg.Redis.Address == "" {
		logging.Warn().Msg("redis.address not set, runs are kept in memory")
		return runs.NewInMemory(), nil
	}

	client, err := redis.NewClient(cfg.Redis.Address, &redis.Options{
		PoolSize: cfg.Redis.PoolSize,
		UseTLS:   cfg.Redis.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	// a configured but unreachable redis is fatal; only an empty address means memory
	if err := redis.Ping(ctx, client, redisPingTimeout); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Address, err)
	}

	logging.Info().Str("address", cfg.Redis.Address).Msg("storing runs in redis")
	return runs.NewRedisRepository(&runs.Config{Client: client})
}
