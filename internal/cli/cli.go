// Package cli wires the batchboard commands: serve (default), migrate,
// backup and restore.
package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"batchboard/b/internal/api"
	"batchboard/b/internal/backup"
	"batchboard/b/internal/cache"
	"batchboard/b/internal/config"
	"batchboard/b/internal/database"
	"batchboard/b/internal/migrations"
	"batchboard/b/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "batchboard",
	Short:        "Inventory and customer dashboard backend for batch-tracked products",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and seed the default admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := database.Open(cfg.DatabaseDSN, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		return migrations.Apply(db, cfg.SeedAdminPassword)
	},
}

var (
	backupOut          string
	backupIncludeUsers bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON snapshot of every collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := database.Open(cfg.DatabaseDSN, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()

		snap, err := backup.Dump(db, backupIncludeUsers)
		if err != nil {
			return err
		}
		raw, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		raw = append(raw, '\n')

		if backupOut == "" || backupOut == "-" {
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		}
		if err := os.WriteFile(backupOut, raw, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s written to %s\n", snap.ID, backupOut)
		return nil
	},
}

var restoreIn string

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace all collections from a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(restoreIn)
		if err != nil {
			return err
		}
		var snap backup.Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return fmt.Errorf("invalid snapshot file: %w", err)
		}

		cfg := config.Load()
		db, err := database.Open(cfg.DatabaseDSN, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := backup.Restore(db, snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored snapshot %s\n", snap.ID)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupOut, "out", "", "output file (default stdout)")
	backupCmd.Flags().BoolVar(&backupIncludeUsers, "include-users", false, "include user accounts in the snapshot")
	restoreCmd.Flags().StringVar(&restoreIn, "in", "", "snapshot file to restore")
	_ = restoreCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(serveCmd, migrateCmd, backupCmd, restoreCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db := database.Connect(cfg.DatabaseDSN, cfg.SQLitePath)
	defer db.Close()

	migrations.Run(db, cfg.SeedAdminPassword)

	handler := api.New(db, cfg.Secret, cache.New(cfg.RedisAddr), log)

	log.Info("batchboard server starting",
		"port", cfg.HTTPPort,
		"driver", db.DriverName(),
		"redis", cfg.RedisAddr != "")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
