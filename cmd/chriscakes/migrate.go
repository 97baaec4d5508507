package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"chriscakes/internal/database"
	"chriscakes/internal/store"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply pending migrations to the Postgres content mirror. With --seed
the mirror is replaced by the YAML content tree (CONTENT_DIR, or the
bundled fixtures when unset).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		version, err := database.Version(ctx, db)
		if err != nil {
			return err
		}
		slog.Info("schema up to date", "version", version)

		if !migrateSeed {
			return nil
		}

		files, err := openFiles(cfg)
		if err != nil {
			return err
		}
		stats, err := store.New(db).Import(ctx, files.Snapshot())
		if err != nil {
			return err
		}
		slog.Info("content imported",
			"pages", stats.Pages,
			"categories", stats.Categories,
			"items", stats.Items,
			"faqs", stats.FAQs,
			"testimonials", stats.Testimonials,
		)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "import the YAML content tree after migrating")
	rootCmd.AddCommand(migrateCmd)
}
