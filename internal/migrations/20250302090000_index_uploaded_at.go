package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upIndexUploadedAt, downIndexUploadedAt)
}

func upIndexUploadedAt(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX uploads_uploaded_at_idx ON uploads (uploaded_at DESC);
		CREATE INDEX uploads_user_id_idx ON uploads (user_id);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downIndexUploadedAt(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX uploads_user_id_idx;
		DROP INDEX uploads_uploaded_at_idx;
	`)
	if err != nil {
		return err
	}
	return nil
}
