package cmd

import (
	"stock-manager/feature/integrity/checks"
	"stock-manager/feature/inventory"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the inventory tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Connecting runs the migration.
		rt, err := newDeps(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer rt.close()

		report, err := checks.CheckSchema(rt.repo.DB(), inventory.Models())
		if err != nil {
			return err
		}
		if !report.Matched {
			rt.logger.Warn("Schema differs from the models after migration", zap.String("driver", report.Driver))
		} else {
			rt.logger.Info("Database schema is up to date", zap.String("driver", report.Driver))
		}
		return printJSON(report)
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
