package cmd

import (
	"context"
	"fmt"
	"strings"

	"stock-checker/core/config"
	"stock-checker/core/database"
	"stock-checker/core/logger"
	"stock-checker/core/reconcile"
	"stock-checker/core/storage"
	"stock-checker/core/tableio"

	"go.uber.org/zap"
)

// session holds what every catalog command needs.
type session struct {
	cfg  *config.Config
	log  *zap.Logger
	opts reconcile.Options
	deps tableio.Deps
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	opts, err := cfg.Reconcile.Options()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:  cfg,
		log:  l,
		opts: opts,
		deps: tableio.Deps{
			HTTPClient: cfg.Source.HTTPClient(),
			Retries:    cfg.Source.Retries,
			RetryDelay: cfg.Source.RetryDelay(),
		},
	}, nil
}

// resolve expands a bare "db://" to the configured catalog table.
func (s *session) resolve(ref string) string {
	if ref == "db://" {
		return "db://" + s.cfg.Database.Table
	}
	return ref
}

// connect opens the storage client and the database only when one of refs needs them.
func (s *session) connect(refs ...string) error {
	for _, ref := range refs {
		switch {
		case strings.HasPrefix(ref, "s3://") && s.deps.Storage == nil:
			client, err := storage.NewClient(s.cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			s.deps.Storage = client

		case strings.HasPrefix(ref, "db://") && s.deps.DB == nil:
			db, err := database.Connect(s.cfg.Database)
			if err != nil {
				return fmt.Errorf("%w: %v", tableio.ErrInputUnavailable, err)
			}
			s.deps.DB = db
		}
	}
	return nil
}

func (s *session) fetch(ctx context.Context, ref string) (*tableio.Table, error) {
	src, err := tableio.ParseSource(ref, s.deps)
	if err != nil {
		return nil, err
	}

	s.log.Info("Loading table", zap.String("source", src.Name()))
	t, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	s.log.Info("Table loaded",
		zap.String("source", src.Name()),
		zap.Int("rows", len(t.Rows)),
		zap.Int("columns", len(t.Headers)),
	)
	return t, nil
}

// pass is one loaded and reconciled pair of tables.
type pass struct {
	local  *tableio.Table
	layout tableio.LocalLayout
	before []reconcile.ProductRow
	result *reconcile.Result
}

// run loads both tables and reconciles them. extra lists further refs the caller will write to.
func (s *session) run(ctx context.Context, localRef, supplierRef string, extra ...string) (*pass, error) {
	localRef, supplierRef = s.resolve(localRef), s.resolve(supplierRef)
	if err := s.connect(append([]string{localRef, supplierRef}, extra...)...); err != nil {
		return nil, err
	}

	local, err := s.fetch(ctx, localRef)
	if err != nil {
		return nil, err
	}
	supplier, err := s.fetch(ctx, supplierRef)
	if err != nil {
		return nil, err
	}

	rows, layout := tableio.LocalRows(local)
	if layout.Code < 0 || layout.Name < 0 {
		s.log.Warn("Local table lacks code or name column, rows will only match by the other key",
			zap.Strings("headers", local.Headers))
	}
	if layout.VariantVolume < 0 {
		s.log.Debug("No variant volume column, bundle variants use the smallest size class")
	}

	supplierRows, err := tableio.SupplierRows(supplier)
	if err != nil {
		return nil, fmt.Errorf("supplier table %s: %w", supplierRef, err)
	}

	return &pass{
		local:  local,
		layout: layout,
		before: rows,
		result: reconcile.Run(rows, supplierRows, s.opts),
	}, nil
}
