package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUploads, downCreateUploads)
}

func upCreateUploads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE uploads (
		id SERIAL PRIMARY KEY,
		photo_id VARCHAR NOT NULL UNIQUE,
		user_id VARCHAR NOT NULL,
		file_url VARCHAR NOT NULL DEFAULT '',
		uploaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateUploads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE uploads;
	`)
	if err != nil {
		return err
	}
	return nil
}
