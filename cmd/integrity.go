package cmd

import (
	"context"

	"stock-manager/feature/integrity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage, schema and stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the receipt archive folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the inventory tables against their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// stockCmd represents the integrity stock command
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Audit the catalog and ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing bucket and folders")

	integrityCmd.AddCommand(structureCmd)
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(stockCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema, runStock bool) error {
	rt, err := newDeps(ctx, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer rt.close()
	logg := rt.logger

	svc := integrity.NewService(rt.store, rt.cfg.Storage.Bucket, rt.repo, logg)

	if runStructure {
		if !svc.StorageEnabled() {
			logg.Info("Storage is disabled, skipping structure check.")
		} else {
			logg.Info("Checking folder structure...")
			missing, err := svc.CheckStructure(ctx)
			switch {
			case err != nil && !fixFlag:
				return err
			case err == nil && len(missing) == 0:
				logg.Info("Structure is intact.")
			case fixFlag:
				logg.Warn("Fixing structure", zap.Strings("missing", missing), zap.Error(err))
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				logg.Info("Structure fixed successfully.")
			default:
				logg.Warn("Missing folders detected", zap.Strings("missing", missing))
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runSchema {
		logg.Info("Checking database schema...")
		report, err := svc.CheckSchema(ctx)
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Database schema matches the models.", zap.String("driver", report.Driver))
		} else {
			logg.Warn("Database schema mismatches found", zap.String("driver", report.Driver))
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if tblReport.Status == "missing" {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runStock {
		logg.Info("Auditing stock...")
		report, err := svc.CheckStock(ctx)
		if err != nil {
			return err
		}
		fields := []zap.Field{
			zap.Int("products", report.Products),
			zap.Int("lots", report.Lots),
			zap.Int("placeholder_products", report.PlaceholderProducts),
			zap.Int("empty_lots", len(report.EmptyLots)),
			zap.Int("multi_lot_products", len(report.MultiLotProducts)),
		}
		if report.Healthy {
			logg.Info("Stock is consistent.", fields...)
		} else {
			logg.Warn("Stock inconsistencies found", append(fields,
				zap.Int("orphan_lots", len(report.OrphanLots)),
				zap.Int("negative_lots", len(report.NegativeLots)),
				zap.Strings("duplicate_barcodes", report.DuplicateBarcodes),
			)...)
		}
	}

	return nil
}
