package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"stock-manager/feature/inventory"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// receiptCmd groups the receipt commands
var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Import and inspect purchase receipts",
}

// receiptImportCmd represents the receipt import command
var receiptImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Apply a parsed receipt to the stock",
	Long:  `Reads a parsed receipt (raw_payload, store_name, purchase_date, items) from a JSON file and applies every line in order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read receipt: %w", err)
		}

		var in inventory.ReceiptInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("%w: %v", inventory.ErrInvalidReceipt, err)
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		rt, err := newDeps(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer rt.close()

		report, err := inventory.NewService(rt.inventoryOptions()).ImportReceipt(cmd.Context(), in, dryRun)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

// receiptShowCmd represents the receipt show command
var receiptShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a stored receipt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid receipt id: %w", err)
		}

		rt, err := newDeps(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer rt.close()

		receipt, err := inventory.NewService(rt.inventoryOptions()).Receipt(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(receipt)
	},
}

func init() {
	receiptImportCmd.Flags().Bool("dry-run", false, "Compute the result without saving")

	receiptCmd.AddCommand(receiptImportCmd)
	receiptCmd.AddCommand(receiptShowCmd)
	RootCmd.AddCommand(receiptCmd)
}
