package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-checker/core/reconcile"
	"stock-checker/core/tableio"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedSource is returned for supplier references other than http(s):// and s3://.
	ErrUnsupportedSource = errors.New("unsupported supplier reference")
	// ErrArchiveDisabled is returned when archiving is requested without a storage client.
	ErrArchiveDisabled = errors.New("result archiving is not configured")
)

// Overrides are per-request changes to the configured thresholds.
type Overrides struct {
	MinStock *int
	Bundle   map[reconcile.SizeClass]int
}

// Outcome is the result of reconciling one pair of tables.
type Outcome struct {
	Table  *tableio.Table
	Result *reconcile.Result
}

// ConfigView is the effective reconciliation policy.
type ConfigView struct {
	Thresholds       reconcile.ThresholdConfig `json:"thresholds"`
	IgnoreCodes      []string                  `json:"ignore_codes"`
	BundleCategories []string                  `json:"bundle_categories"`
}

// Service runs reconciliations for uploaded tables.
type Service struct {
	defaults reconcile.Config
	deps     tableio.Deps
	bucket   string
	logger   *zap.Logger
}

// NewService creates a new stock service.
func NewService(defaults reconcile.Config, deps tableio.Deps, bucket string, logger *zap.Logger) *Service {
	return &Service{
		defaults: defaults,
		deps:     deps,
		bucket:   bucket,
		logger:   logger,
	}
}

// Options returns the configured options with the overrides applied.
func (s *Service) Options(o Overrides) (reconcile.Options, error) {
	opts, err := s.defaults.Options()
	if err != nil {
		return reconcile.Options{}, err
	}

	if o.MinStock != nil {
		opts.Thresholds.MinStockToShow = *o.MinStock
	}
	for class, v := range o.Bundle {
		opts.Thresholds.Bundle[class] = v
	}

	if err := opts.Thresholds.Validate(); err != nil {
		return reconcile.Options{}, err
	}
	return opts, nil
}

// Config returns the effective policy without overrides.
func (s *Service) Config() (*ConfigView, error) {
	opts, err := s.defaults.Options()
	if err != nil {
		return nil, err
	}
	return &ConfigView{
		Thresholds:       opts.Thresholds,
		IgnoreCodes:      opts.Ignore.Codes(),
		BundleCategories: opts.BundleCategories,
	}, nil
}

// FetchSupplier loads a supplier export from a remote reference.
// Local paths and database tables are not reachable over HTTP.
func (s *Service) FetchSupplier(ctx context.Context, ref string) (*tableio.Table, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") && !strings.HasPrefix(ref, "s3://") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, ref)
	}

	src, err := tableio.ParseSource(ref, s.deps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	s.logger.Info("Fetching supplier export", zap.String("source", src.Name()))
	return src.Fetch(ctx)
}

// Reconcile runs one pass over the tables and returns the updated local table.
func (s *Service) Reconcile(local, supplier *tableio.Table, opts reconcile.Options) (*Outcome, error) {
	rows, layout := tableio.LocalRows(local)

	supplierRows, err := tableio.SupplierRows(supplier)
	if err != nil {
		return nil, err
	}

	result := reconcile.Run(rows, supplierRows, opts)
	out := tableio.ApplyRows(local, layout, result.Rows)

	r := result.Report
	s.logger.Info("Reconciliation finished",
		zap.Int("rows", len(rows)),
		zap.Int("stock_changes", r.StockChanges),
		zap.Int("hidden", r.HiddenCount),
		zap.Int("visible", r.VisibleCount),
		zap.Int("missing", len(r.MissingProducts)),
	)
	if len(r.SupplierCollisions) > 0 {
		s.logger.Warn("Supplier export has repeated keys", zap.Int("collisions", len(r.SupplierCollisions)))
	}

	return &Outcome{Table: out, Result: result}, nil
}

// Archive uploads the output table to the results prefix of the bucket and returns its reference.
func (s *Service) Archive(ctx context.Context, id string, t *tableio.Table) (string, error) {
	if s.deps.Storage == nil {
		return "", ErrArchiveDisabled
	}
	if id == "" {
		id = uuid.NewString()
	}

	ref := fmt.Sprintf("s3://%s/results/%s-%s.xlsx", s.bucket, time.Now().UTC().Format("20060102T150405Z"), id)
	if err := tableio.Save(ctx, ref, t, s.deps.Storage); err != nil {
		return "", err
	}

	s.logger.Info("Result archived", zap.String("ref", ref))
	return ref, nil
}
