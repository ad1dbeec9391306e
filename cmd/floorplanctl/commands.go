package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floorplan/internal/config"
	"floorplan/internal/database"
	"floorplan/internal/database/migration"
	"floorplan/internal/logging"
	"floorplan/internal/uploadpath"
)

var errOwnerConflict = errors.New("only one of --site and --location may be set")

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "floorplanctl",
		Short:         "Administer the floorplan image service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (defaults to LOG_LEVEL)")

	newLogger := func(cfg *config.AppConfig) *zap.Logger {
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		return logging.New(root.ErrOrStderr(), cfg.Location(), level)
	}

	root.AddCommand(newPathCmd(), newMigrateCmd(newLogger))
	return root
}

func newPathCmd() *cobra.Command {
	var siteID, locationID int64

	cmd := &cobra.Command{
		Use:   "path <filename>",
		Short: "Print the storage path an upload would be written to",
		Example: `  floorplanctl path --site 5 "floor 1.png"
  floorplanctl path --location 7 plan.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site := optionalID(cmd, "site", siteID)
			location := optionalID(cmd, "location", locationID)
			if site != nil && location != nil {
				return errOwnerConflict
			}

			owner := uploadpath.ResolveOwner(site, location)
			if !owner.Valid() {
				return fmt.Errorf("invalid %s id %d", owner.Kind, owner.ID)
			}
			filename, err := uploadpath.CleanFilename(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), uploadpath.Build(owner, filename))
			return err
		},
	}
	cmd.Flags().Int64Var(&siteID, "site", 0, "owning site ID")
	cmd.Flags().Int64Var(&locationID, "location", 0, "owning location ID")
	return cmd
}

// optionalID returns nil unless the flag was given on the command line.
func optionalID(cmd *cobra.Command, name string, v int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newMigrateCmd(newLogger func(*config.AppConfig) *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the floorplan_images schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)
			defer func() { _ = logger.Sync() }()

			db, err := database.NewPostgres(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			return migration.EnsureMigrated(cmd.Context(), db, logger, cfg.Database.Host)
		},
	}
}
