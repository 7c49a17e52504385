package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/event-content-pipeline/internal/service"
	"github.com/spf13/cobra"
)

// backend is what the commands need from the wired application
type backend interface {
	Pipeline() service.PipelineService
	Migrate() error
	MigrateDown() error
	MigrateTo(version uint) error
	Close() error
}

type connectFunc func() (backend, error)

func newRootCmd(out io.Writer, connect connectFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "contentctl",
		Short: "Event content pipeline operator CLI",
		Long: `contentctl runs the content pipeline and its migrations without the HTTP server.

Configuration is read from the environment (and CONFIG_FILE) like the server.

Example usage:
  contentctl migrate up            # Apply pending migrations
  contentctl generate -n 3         # Generate up to 3 articles
  contentctl stats                 # Print counts as JSON
  contentctl cleanup               # Delete all generated articles`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newMigrateCmd(connect),
		newGenerateCmd(connect),
		newCleanupCmd(connect),
		newStatsCmd(connect),
	)
	return root
}

func withBackend(connect connectFunc, fn func(b backend) error) error {
	b, err := connect()
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

func newMigrateCmd(connect connectFunc) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(connect, func(b backend) error {
					if err := b.Migrate(); err != nil {
						return err
					}
					cmd.Println("Migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(connect, func(b backend) error {
					if err := b.MigrateDown(); err != nil {
						return err
					}
					cmd.Println("Migration rolled back")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "goto VERSION",
			Short: "Migrate up or down to a specific version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return withBackend(connect, func(b backend) error {
					if err := b.MigrateTo(uint(version)); err != nil {
						return err
					}
					cmd.Printf("Migrated to version %d\n", version)
					return nil
				})
			},
		},
	)
	return migrate
}

func newGenerateCmd(connect connectFunc) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate articles for the next eligible events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize < 0 {
				return fmt.Errorf("batch size must not be negative")
			}
			return withBackend(connect, func(b backend) error {
				result, err := b.Pipeline().Generate(cmd.Context(), batchSize)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().IntVarP(&batchSize, "batch-size", "n", 0, "events to process (default: PIPELINE_BATCH_SIZE)")
	return cmd
}

func newCleanupCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every generated article and processed marker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(connect, func(b backend) error {
				result, err := b.Pipeline().Cleanup(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

func newStatsCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print article, marker and pending event counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(connect, func(b backend) error {
				stats, err := b.Pipeline().Stats(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
