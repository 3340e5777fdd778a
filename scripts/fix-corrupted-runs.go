package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

// runProblem explains why a stored run cannot be resumed, empty when it can
func runProblem(data []byte) string {
	var run entities.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return fmt.Sprintf("corrupted JSON: %v", err)
	}
	if run.Dungeon == nil || run.Dungeon.Len() == 0 {
		return "no dungeon"
	}
	if !run.Status.Valid() {
		return fmt.Sprintf("unknown status %q", run.Status)
	}
	if !run.Dungeon.Contains(run.Current) {
		return fmt.Sprintf("current room %s does not exist", run.Current)
	}
	if reached := run.Dungeon.Reachable(entities.Origin); len(reached) != run.Dungeon.Len() {
		return fmt.Sprintf("%d of %d rooms unreachable", run.Dungeon.Len()-len(reached), run.Dungeon.Len())
	}
	return ""
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	client, err := redis.NewFromURL(redisURL, nil)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for runs that cannot be resumed...")

	iter := client.Scan(ctx, 0, "dungeon_run:*", 0).Iterator()

	var brokenKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		if problem := runProblem(data); problem != "" {
			fmt.Printf("✗ %s: %s\n", key, problem)
			brokenKeys = append(brokenKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d runs, found %d broken\n", checkedCount, len(brokenKeys))
	if len(brokenKeys) == 0 {
		return
	}

	fmt.Print("\nDo you want to DELETE these runs? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range brokenKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
