package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finwellhq/personaflow/internal/cli"
	"github.com/finwellhq/personaflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version. Run this
once before importing snapshots or assigning personas.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	statusOnly, _ := cmd.Flags().GetBool("status")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if statusOnly {
		version, err := store.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("schema version %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
		return nil
	}

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	cmd.Println(cli.SuccessStyle.Render("Database schema is up to date"))
	return nil
}
