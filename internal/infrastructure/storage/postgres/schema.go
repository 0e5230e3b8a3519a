package postgres

import (
	"context"
	"fmt"
)

// PhonesTable is the table phone records are stored in.
const PhonesTable = "phones"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS phones (
		id         BIGINT PRIMARY KEY,
		country    INTEGER NOT NULL,
		provider   BIGINT NOT NULL,
		prefix     BIGINT NOT NULL,
		number     BIGINT NOT NULL,
		display    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS phones_provider_number_idx ON phones (provider, number)`,
}

// EnsureSchema creates the phones table and its index if missing. DDL runs
// in one transaction so a half-created schema is never left behind.
func EnsureSchema(ctx context.Context, txm *TxManager) error {
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		q := txm.GetQuerier(ctx)
		for _, stmt := range schemaStatements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}
