package commands

import (
	"context"
	"fmt"

	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/fixturefile"
	"phonefixtures/pkg/logger"
)

// ExportOptions are the inputs of the export command.
type ExportOptions struct {
	Path     string
	Where    string
	Provider *int64
	PageSize int
}

// RunExport pages through reader and writes every record matching
// opts.Where to a fixture file at opts.Path.
func RunExport(ctx context.Context, reader phone.Reader, log *logger.Logger, opts ExportOptions) error {
	filter, err := phone.CompileFilter(opts.Where)
	if err != nil {
		return err
	}

	w, err := fixturefile.Create(opts.Path)
	if err != nil {
		return err
	}

	exported, err := ExportTo(ctx, reader, w, filter, opts.Provider, opts.PageSize)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("export to %s: %w", opts.Path, err)
	}

	log.Infow("export complete", "path", opts.Path, "where", filter.String(), "exported", exported)
	return nil
}

// ExportTo copies matching records from reader to dst, one page at a time.
func ExportTo(
	ctx context.Context,
	reader phone.Reader,
	dst phone.Store,
	filter *phone.Filter,
	provider *int64,
	pageSize int,
) (int64, error) {
	params := phone.ListParams{Provider: provider, Limit: pageSize}
	params.Limit = params.EffectiveLimit()

	var exported int64
	for {
		page, err := reader.List(ctx, params)
		if err != nil {
			return exported, err
		}

		matched, err := filter.Apply(page)
		if err != nil {
			return exported, err
		}
		for _, rec := range matched {
			if err := dst.Insert(ctx, rec); err != nil {
				return exported, err
			}
			exported++
		}

		if len(page) < params.Limit {
			return exported, nil
		}
		params.Offset += len(page)
	}
}
