package cmd

import (
	"stock-manager/core/reconcile"
	"stock-manager/feature/inventory"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// scanCmd groups the barcode commands
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Add or remove one unit by barcode",
}

// scanAddCmd represents the scan add command
var scanAddCmd = &cobra.Command{
	Use:   "add [barcode]",
	Short: "Add one unit of a scanned product",
	Long:  `Adds one unit to the product's stock lot. Unknown barcodes create a new product using --name, --brand and --unit.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newDeps(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer rt.close()

		var meta reconcile.ProductMeta
		for flag, dst := range map[string]**string{"name": &meta.Name, "brand": &meta.Brand, "unit": &meta.Unit} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}

		res, err := inventory.NewService(rt.inventoryOptions()).Scan(cmd.Context(), args[0], meta)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

// scanRemoveCmd represents the scan remove command
var scanRemoveCmd = &cobra.Command{
	Use:   "remove [barcode]",
	Short: "Remove one unit of a scanned product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newDeps(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer rt.close()

		res, err := inventory.NewService(rt.inventoryOptions()).Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	scanAddCmd.Flags().String("name", "", "Product name for a new barcode")
	scanAddCmd.Flags().String("brand", "", "Product brand for a new barcode")
	scanAddCmd.Flags().String("unit", "", "Unit of measure for a new barcode")

	scanCmd.AddCommand(scanAddCmd)
	scanCmd.AddCommand(scanRemoveCmd)
	RootCmd.AddCommand(scanCmd)
}
