package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
)

var (
	serverAddr    string
	clientTimeout time.Duration
	clientSeed    int64
	abandonRun    bool
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running dungeon server",
}

type clientCall func(ctx context.Context, client v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error)

// invoke dials the server, sends fields and prints the response
func invoke(cmd *cobra.Command, fields map[string]any, call clientCall) error {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	resp, err := call(ctx, v1alpha1.NewDungeonServiceClient(conn), req)
	if err != nil {
		return err
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

var clientGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd, map[string]any{"seed": strconv.FormatInt(clientSeed, 10)},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.GenerateDungeon(ctx, req)
			})
	},
}

var clientStartCmd = &cobra.Command{
	Use:   "start [player-id]",
	Short: "Start a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, map[string]any{"player_id": args[0], "seed": strconv.FormatInt(clientSeed, 10)},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.StartRun(ctx, req)
			})
	},
}

var clientGetCmd = &cobra.Command{
	Use:   "get [run-id]",
	Short: "Show a run and the doors of its current room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, map[string]any{"run_id": args[0]},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.GetRun(ctx, req)
			})
	},
}

var clientTraverseCmd = &cobra.Command{
	Use:   "traverse [run-id] [up|down|left|right]",
	Short: "Walk through a door",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, map[string]any{"run_id": args[0], "direction": args[1]},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.Traverse(ctx, req)
			})
	},
}

var clientClearCmd = &cobra.Command{
	Use:   "clear [run-id]",
	Short: "Clear the current room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, map[string]any{"run_id": args[0]},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.ClearRoom(ctx, req)
			})
	},
}

var clientFailCmd = &cobra.Command{
	Use:   "fail [run-id]",
	Short: "End a run as failed, or abandoned with --abandon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, map[string]any{"run_id": args[0], "abandon": abandonRun},
			func(ctx context.Context, c v1alpha1.DungeonServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
				return c.FailRun(ctx, req)
			})
	},
}

func init() {
	clientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	clientCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 30*time.Second, "request timeout")
	clientGenerateCmd.Flags().Int64Var(&clientSeed, "seed", 0, "random seed (0 lets the server pick)")
	clientStartCmd.Flags().Int64Var(&clientSeed, "seed", 0, "random seed (0 lets the server pick)")
	clientFailCmd.Flags().BoolVar(&abandonRun, "abandon", false, "end the run as abandoned")

	clientCmd.AddCommand(clientGenerateCmd)
	clientCmd.AddCommand(clientStartCmd)
	clientCmd.AddCommand(clientGetCmd)
	clientCmd.AddCommand(clientTraverseCmd)
	clientCmd.AddCommand(clientClearCmd)
	clientCmd.AddCommand(clientFailCmd)
}
