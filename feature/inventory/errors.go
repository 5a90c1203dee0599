package inventory

import "errors"

var (
	// ErrInvalidBarcode is returned for empty or oversized barcodes.
	ErrInvalidBarcode = errors.New("invalid barcode")
	// ErrInvalidReceipt is returned for receipts failing validation.
	ErrInvalidReceipt = errors.New("invalid receipt")
	// ErrDuplicateReceipt is returned when a receipt ID was already applied.
	ErrDuplicateReceipt = errors.New("receipt already processed")
	// ErrReceiptNotFound is returned when a stored receipt does not exist.
	ErrReceiptNotFound = errors.New("receipt not found")
	// ErrArchiveDisabled is returned when raw payloads are requested without object storage.
	ErrArchiveDisabled = errors.New("receipt archive is disabled")
)
