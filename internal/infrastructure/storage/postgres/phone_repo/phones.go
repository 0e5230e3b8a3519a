// Package phone_repo provides the PostgreSQL phone record repository.
package phone_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"phonefixtures/internal/core/apperror"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/storage/postgres"
)

// Compile-time check that PhoneRepo implements phone.Repository.
var _ phone.Repository = (*PhoneRepo)(nil)

const uniqueViolation = "23505"

var selectCols = []string{"id", "country", "provider", "prefix", "number", "display"}

// phoneRow is the flat column layout of the phones table.
type phoneRow struct {
	ID       int64  `db:"id"`
	Country  int64  `db:"country"`
	Provider int64  `db:"provider"`
	Prefix   int64  `db:"prefix"`
	Number   int64  `db:"number"`
	Display  string `db:"display"`
}

func (r phoneRow) toRecord() *phone.PhoneRecord {
	return &phone.PhoneRecord{
		ID: r.ID,
		Components: phone.Components{
			Country:  r.Country,
			Provider: r.Provider,
			Prefix:   r.Prefix,
			Number:   r.Number,
		},
		Display: r.Display,
	}
}

// PhoneRepo stores phone records, one INSERT per record.
type PhoneRepo struct {
	txm       *postgres.TxManager
	tableName string
}

// NewPhoneRepo creates a repository on the phones table.
func NewPhoneRepo(txm *postgres.TxManager) *PhoneRepo {
	return &PhoneRepo{txm: txm, tableName: postgres.PhonesTable}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *PhoneRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PhoneRepo) insertQuery(rec *phone.PhoneRecord) squirrel.InsertBuilder {
	c := rec.Components
	return r.Builder().
		Insert(r.tableName).
		Columns(selectCols...).
		Values(rec.ID, c.Country, c.Provider, c.Prefix, c.Number, rec.Display)
}

func (r *PhoneRepo) getQuery(id int64) squirrel.SelectBuilder {
	return r.Builder().
		Select(selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": id})
}

func (r *PhoneRepo) listQuery(params phone.ListParams) squirrel.SelectBuilder {
	q := r.Builder().
		Select(selectCols...).
		From(r.tableName).
		OrderBy("id").
		Limit(uint64(params.EffectiveLimit()))
	if params.Provider != nil {
		q = q.Where(squirrel.Eq{"provider": *params.Provider})
	}
	if params.Offset > 0 {
		q = q.Offset(uint64(params.Offset))
	}
	return q
}

func (r *PhoneRepo) purgeQuery(provider int64) squirrel.DeleteBuilder {
	return r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"provider": provider})
}

// Insert writes rec. A primary key collision returns DUPLICATE_ENTRY.
func (r *PhoneRepo) Insert(ctx context.Context, rec *phone.PhoneRecord) error {
	sql, args, err := r.insertQuery(rec).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("phone", "id", rec.ID).WithCause(err)
		}
		return apperror.NewDatabase(fmt.Errorf("insert %s: %w", r.tableName, err))
	}
	return nil
}

// Get loads one record by id.
func (r *PhoneRepo) Get(ctx context.Context, id int64) (*phone.PhoneRecord, error) {
	sql, args, err := r.getQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row phoneRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("phone", id)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get %s: %w", r.tableName, err))
	}
	return row.toRecord(), nil
}

// List returns a page of records ordered by id.
func (r *PhoneRepo) List(ctx context.Context, params phone.ListParams) ([]*phone.PhoneRecord, error) {
	sql, args, err := r.listQuery(params).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var rows []phoneRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list %s: %w", r.tableName, err))
	}

	out := make([]*phone.PhoneRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

// Purge deletes every record of provider and returns the number removed.
func (r *PhoneRepo) Purge(ctx context.Context, provider int64) (int64, error) {
	sql, args, err := r.purgeQuery(provider).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	var removed int64
	err = r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
		if err != nil {
			return apperror.NewDatabase(fmt.Errorf("purge %s: %w", r.tableName, err))
		}
		removed = tag.RowsAffected()
		return nil
	})
	return removed, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
