package uploads

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/repositories"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

const table = "uploads"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("UploadsRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, record domain.UploadRecord) (*domain.UploadRecord, error) {
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now()
	}

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("photo_id", "user_id", "file_url", "uploaded_at").
		Values(record.PhotoID, record.UserID, record.FileURL, record.UploadedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	err = p.pg.QueryRow(ctx, query, args...).Scan(&record.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &record, nil
}

func (p *Pgx) Latest(ctx context.Context, count int) ([]*domain.UploadRecord, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "photo_id", "user_id", "file_url", "uploaded_at").
		From(table).
		OrderBy("uploaded_at DESC", "id DESC").
		Limit(uint64(max(count, 0))).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.UploadRecord
	for rows.Next() {
		var r domain.UploadRecord
		if err := rows.Scan(&r.ID, &r.PhotoID, &r.UserID, &r.FileURL, &r.UploadedAt); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (p *Pgx) Exists(ctx context.Context, photoID string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From(table).
		Where(sq.Eq{"photo_id": photoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	exists := rows.Next()
	return exists, rows.Err()
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"uploaded_at": before}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	deleted := result.RowsAffected()
	p.logger.Info("Cleaned up old upload records", "deleted", deleted, "before", before)
	return deleted, nil
}
