package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"listas-pipeline/internal/config"
	"listas-pipeline/internal/pipeline"
	"listas-pipeline/internal/store"
	"listas-pipeline/pkg/log"
)

func main() {
	command := newRootCommand()
	if err := command.Execute(); err != nil {
		zap.S().Fatalw("command failed", "error", err)
	}
}

func newRootCommand() *cobra.Command {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := log.InitLogs(cfg.LogLevel)

	root := &cobra.Command{
		Use:   "listas",
		Short: "Candidate-list document processing pipeline",
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.AddCommand(newProcessCommand(cfg))
	root.AddCommand(newStatusCommand(cfg))
	root.AddCommand(newModelsCommand(cfg))
	return root
}

func newProcessCommand(cfg *config.Config) *cobra.Command {
	var jobID string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Run the full pipeline over the given documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID == "" {
				jobID = uuid.NewString()
			}

			jobStore, err := store.NewJobStore(dataDir)
			if err != nil {
				return err
			}
			pipe, err := pipeline.New(jobStore, nil, pipeline.DefaultRules(), dataDir)
			if err != nil {
				return err
			}

			result, err := pipe.Run(cmd.Context(), jobID, args)
			if err != nil {
				return fmt.Errorf("job %s failed: %w", jobID, err)
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringVar(&jobID, "job-id", "", "job identifier (generated when omitted)")
	cmd.Flags().StringVar(&dataDir, "data-dir", cfg.DataDir, "base directory for job state and outputs")
	return cmd
}

func newStatusCommand(cfg *config.Config) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the stored metadata for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobStore, err := store.NewJobStore(dataDir)
			if err != nil {
				return err
			}
			meta, err := jobStore.Load(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, meta)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", cfg.DataDir, "base directory for job state and outputs")
	return cmd
}

func newModelsCommand(cfg *config.Config) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage the parser model registry",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to the registry database")

	register := &cobra.Command{
		Use:   "register <version> [metric=value]...",
		Short: "Record a model version with its evaluation metrics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := parseMetrics(args[1:])
			if err != nil {
				return err
			}

			registry, err := store.OpenRegistry(dbPath)
			if err != nil {
				return err
			}
			defer registry.Close()

			if err := registry.Register(args[0], metrics); err != nil {
				return err
			}
			cmd.Printf("registered %s\n", args[0])
			return nil
		},
	}

	var page, size int
	history := &cobra.Command{
		Use:   "history",
		Short: "List registered model versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := store.OpenRegistry(dbPath)
			if err != nil {
				return err
			}
			defer registry.Close()

			result, err := registry.History(page, size)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	history.Flags().IntVar(&page, "page", 1, "1-based page number")
	history.Flags().IntVar(&size, "size", 20, "page size")

	cmd.AddCommand(register)
	cmd.AddCommand(history)
	return cmd
}

func parseMetrics(pairs []string) (map[string]float64, error) {
	metrics := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid metric %q, expected name=value", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid metric value in %q: %w", pair, err)
		}
		metrics[key] = value
	}
	return metrics, nil
}

func printJSON(cmd *cobra.Command, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
