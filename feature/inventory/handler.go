package inventory

import (
	"errors"
	"strings"

	"stock-manager/core/logger"
	"stock-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ScanRequest is the body of a scan.
type ScanRequest struct {
	Barcode string  `json:"barcode"`
	Name    *string `json:"name,omitempty"`
	Brand   *string `json:"brand,omitempty"`
	Unit    *string `json:"unit,omitempty"`
}

// RemoveRequest is the body of a removal.
type RemoveRequest struct {
	Barcode string `json:"barcode"`
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/scan", h.HandleScan)
	group.Post("/remove", h.HandleRemove)
	group.Post("/receipts", h.HandleReceipt)
	group.Get("/receipts/:id", h.HandleGetReceipt)
	group.Get("/receipts/:id/raw", h.HandleGetRawReceipt)
	group.Get("/products", h.HandleListProducts)
	group.Get("/lots", h.HandleListLots)
}

// HandleScan adds one unit for a scanned barcode.
// @Summary Scan In
// @Description Adds one unit for the barcode, creating the product and lot on first sight.
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body ScanRequest true "Scanned barcode and optional product metadata"
// @Success 200 {object} ScanResult "Product and lot after the scan"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body: "+err.Error())
	}

	meta := reconcile.ProductMeta{Name: req.Name, Brand: req.Brand, Unit: req.Unit}
	res, err := h.service.Scan(c.Context(), strings.TrimSpace(req.Barcode), meta)
	if err != nil {
		return h.fail(c, l, "Scan failed", err)
	}
	return c.JSON(res)
}

// HandleRemove takes one unit out for a barcode.
// @Summary Scan Out
// @Description Removes one unit. The outcome is not_found, depleted (lot removed) or decremented.
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body RemoveRequest true "Scanned barcode"
// @Success 200 {object} RemoveReport "Tagged removal result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/remove [post]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RemoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body: "+err.Error())
	}

	res, err := h.service.Remove(c.Context(), strings.TrimSpace(req.Barcode))
	if err != nil {
		return h.fail(c, l, "Remove failed", err)
	}
	return c.JSON(res)
}

// HandleReceipt reconciles a parsed receipt.
// @Summary Import Receipt
// @Description Applies every receipt line in order. Fractional quantities are truncated to whole units.
// @Tags inventory
// @Accept json
// @Produce json
// @Param dry_run query bool false "Compute the result without saving"
// @Param body body ReceiptInput true "Parsed receipt"
// @Success 200 {object} ReceiptReport "One result per receipt line"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Receipt already processed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/receipts [post]
func (h *Handler) HandleReceipt(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in ReceiptInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body: "+err.Error())
	}

	report, err := h.service.ImportReceipt(c.Context(), in, c.QueryBool("dry_run"))
	if err != nil {
		return h.fail(c, l, "Receipt import failed", err)
	}
	return c.JSON(report)
}

// HandleGetReceipt returns a stored receipt.
// @Summary Get Receipt
// @Tags inventory
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} reconcile.Receipt "Receipt"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/receipts/{id} [get]
func (h *Handler) HandleGetReceipt(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid receipt id")
	}
	receipt, err := h.service.Receipt(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Receipt lookup failed", err)
	}
	return c.JSON(receipt)
}

// HandleGetRawReceipt returns the archived raw payload of a receipt.
// @Summary Get Raw Receipt
// @Tags inventory
// @Produce plain
// @Param id path string true "Receipt ID"
// @Success 200 {string} string "Raw payload"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Receipt archive is disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/receipts/{id}/raw [get]
func (h *Handler) HandleGetRawReceipt(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid receipt id")
	}
	raw, err := h.service.RawReceipt(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Raw receipt fetch failed", err)
	}
	return c.SendString(raw)
}

// HandleListProducts returns the catalog.
// @Summary List Products
// @Tags inventory
// @Produce json
// @Success 200 {array} reconcile.Product "Catalog in insertion order"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	products, err := h.service.Products(c.Context())
	if err != nil {
		return h.fail(c, l, "Product listing failed", err)
	}
	return c.JSON(products)
}

// HandleListLots returns the ledger.
// @Summary List Stock Lots
// @Tags inventory
// @Produce json
// @Success 200 {array} reconcile.StockLot "Ledger in insertion order"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/lots [get]
func (h *Handler) HandleListLots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	lots, err := h.service.Lots(c.Context())
	if err != nil {
		return h.fail(c, l, "Lot listing failed", err)
	}
	return c.JSON(lots)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidBarcode), errors.Is(err, ErrInvalidReceipt):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrDuplicateReceipt):
		status = fiber.StatusConflict
	case errors.Is(err, ErrReceiptNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrArchiveDisabled):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Info(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
