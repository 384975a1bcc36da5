// Command ingest is the Touchline data ingestion CLI.
//
// Usage:
//
//	touchline-ingest roster import --file club.json
//	touchline-ingest roster seed-demo
//	touchline-ingest ratings load
//	touchline-ingest ratings resolve "kylian mbape" --no-live
//	touchline-ingest ratings names
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/touchline/touchline-data/internal/config"
	"github.com/touchline/touchline-data/internal/db"
	"github.com/touchline/touchline-data/internal/ratings"
	"github.com/touchline/touchline-data/internal/roster"
	"github.com/touchline/touchline-data/internal/seed"
	"github.com/touchline/touchline-data/internal/sofifa"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "touchline-ingest",
		Short: "Touchline club data CLI",
	}

	root.AddCommand(rosterCmd())
	root.AddCommand(ratingsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// roster command
// --------------------------------------------------------------------------

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Import club data into the database",
	}
	cmd.AddCommand(rosterImportCmd())
	cmd.AddCommand(rosterSeedDemoCmd())
	return cmd
}

func rosterImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a club snapshot JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := roster.NewStore(pool.Pool)
				start := time.Now()
				result, err := seed.ImportFile(ctx, store, file)
				if err != nil {
					return err
				}
				logger.Info("Import finished",
					"file", file,
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("import error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the snapshot JSON file")
	return cmd
}

func rosterSeedDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Seed the demo club for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := roster.NewStore(pool.Pool)
				result := seed.SeedDemo(ctx, store)
				logger.Info("Demo seed finished", "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// ratings command
// --------------------------------------------------------------------------

func ratingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Inspect the player ratings dataset",
	}
	cmd.AddCommand(ratingsLoadCmd())
	cmd.AddCommand(ratingsResolveCmd())
	cmd.AddCommand(ratingsNamesCmd())
	return cmd
}

func ratingsLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the ratings dataset and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			resolver := buildResolver(cfg, false)
			start := time.Now()
			ok := resolver.LoadDataset(ctx)
			names := resolver.Names(ctx)
			logger.Info("Dataset load finished",
				"from_sources", ok,
				"players", len(names),
				"duration", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func ratingsResolveCmd() *cobra.Command {
	var noLive bool
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a player rating by name (exact then fuzzy)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			resolver := buildResolver(cfg, !noLive)
			result := resolver.Lookup(ctx, args[0], ratings.Options{UseLiveData: !noLive})
			if result == nil {
				return fmt.Errorf("no rating found for %q", args[0])
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noLive, "no-live", false, "Skip live enrichment")
	return cmd
}

func ratingsNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List every name in the ratings dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			resolver := buildResolver(cfg, false)
			for _, name := range resolver.Names(ctx) {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// buildResolver wires the ratings pipeline from config. The live client is
// only constructed when the command will actually use it.
func buildResolver(cfg *config.Config, withLive bool) *ratings.Resolver {
	store := ratings.NewStore()
	sources := make([]ratings.Source, 0, len(cfg.RatingsDatasetPaths)+1)
	for _, p := range cfg.RatingsDatasetPaths {
		sources = append(sources, &ratings.FileSource{Path: p})
	}
	if cfg.RatingsDatasetURL != "" {
		sources = append(sources, &ratings.HTTPSource{URL: cfg.RatingsDatasetURL})
	}
	loader := ratings.NewLoader(store, sources, logger)

	var live ratings.LiveClient
	if withLive && cfg.LiveDataEnabled {
		live = sofifa.NewClient(cfg.SofifaRequestsMin, cfg.SofifaCacheTTL, logger)
	}
	return ratings.NewResolver(store, loader, live, logger)
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runDB handles config loading, DB connection, and context cancellation.
func runDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
