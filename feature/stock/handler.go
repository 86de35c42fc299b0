package stock

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"stock-checker/core/logger"
	"stock-checker/core/reconcile"
	"stock-checker/core/tableio"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OutputFileName is the attachment name of the reconciled table.
const OutputFileName = "vystup.xlsx"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// thresholdFields maps form fields to the size classes they override.
var thresholdFields = map[string]reconcile.SizeClass{
	"threshold_1": reconcile.SizeLarge,
	"threshold_2": reconcile.SizeMediumLarge,
	"threshold_3": reconcile.SizeMedium,
	"threshold_4": reconcile.SizeSmall,
}

// Handler handles HTTP requests for stock reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stock routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stock")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/config", h.HandleConfig)
}

// HandleReconcile reconciles an uploaded local catalog against a supplier export.
//
// The local catalog is the multipart file "local". The supplier export is either the
// file "supplier" or the form field "supplier_ref" (http(s):// or s3://).
// Optional form fields min_stock and threshold_1..4 override the configured thresholds.
// With ?format=json the report is returned, otherwise the updated table as xlsx.
// With ?archive=true the table is also uploaded to the results bucket.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	overrides, err := parseOverrides(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	opts, err := h.service.Options(overrides)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	local, err := uploadedTable(c, "local")
	if err != nil {
		l.Warn("Invalid local upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var supplier *tableio.Table
	if ref := c.FormValue("supplier_ref"); ref != "" {
		supplier, err = h.service.FetchSupplier(c.Context(), ref)
		if err != nil {
			l.Error("Supplier fetch failed", zap.String("ref", ref), zap.Error(err))
			status := fiber.StatusBadGateway
			if errors.Is(err, ErrUnsupportedSource) {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
	} else {
		supplier, err = uploadedTable(c, "supplier")
		if err != nil {
			l.Warn("Invalid supplier upload", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	outcome, err := h.service.Reconcile(local, supplier, opts)
	if err != nil {
		if errors.Is(err, tableio.ErrMissingColumn) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if c.Query("archive") == "true" {
		rid, _ := c.Locals("ray_id").(string)
		ref, err := h.service.Archive(c.Context(), rid, outcome.Table)
		if err != nil {
			l.Error("Archiving failed", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("X-Stock-Archive", ref)
	}

	report := outcome.Result.Report
	if c.Query("format") == "json" {
		return c.JSON(report)
	}

	var buf bytes.Buffer
	if err := tableio.Encode(&buf, OutputFileName, outcome.Table); err != nil {
		l.Error("Failed to encode output", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("X-Stock-Changes", strconv.Itoa(report.StockChanges))
	c.Set("X-Stock-Hidden", strconv.Itoa(report.HiddenCount))
	c.Set("X-Stock-Visible", strconv.Itoa(report.VisibleCount))
	c.Set("X-Stock-Missing", strconv.Itoa(len(report.MissingProducts)))
	c.Set("X-Stock-Total-Visible", strconv.Itoa(report.TotalVisible))
	c.Attachment(OutputFileName)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

// HandleConfig returns the effective thresholds, ignored codes and bundle categories.
func (h *Handler) HandleConfig(c *fiber.Ctx) error {
	view, err := h.service.Config()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

func parseOverrides(c *fiber.Ctx) (Overrides, error) {
	var o Overrides

	if raw := c.FormValue("min_stock"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return o, fmt.Errorf("invalid min_stock %q", raw)
		}
		o.MinStock = &v
	}

	for field, class := range thresholdFields {
		raw := c.FormValue(field)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return o, fmt.Errorf("invalid %s %q", field, raw)
		}
		if o.Bundle == nil {
			o.Bundle = make(map[reconcile.SizeClass]int)
		}
		o.Bundle[class] = v
	}

	return o, nil
}

func uploadedTable(c *fiber.Ctx, field string) (*tableio.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file %q", field)
	}
	data, err := readUpload(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", tableio.ErrInputUnavailable, field, err)
	}
	return tableio.Decode(fh.Filename, data)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
