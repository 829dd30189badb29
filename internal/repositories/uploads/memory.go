package uploads

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

// Memory keeps uploads for the life of the process. Used when no database is configured.
type Memory struct {
	logger logger.Logger

	mu      sync.Mutex
	nextID  int
	records []domain.UploadRecord
}

func NewMemory(logger logger.Logger) *Memory {
	return &Memory{
		nextID: 1,
		logger: logger.WithComponent("UploadsRepo"),
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, record domain.UploadRecord) (*domain.UploadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.ContainsFunc(m.records, func(r domain.UploadRecord) bool { return r.PhotoID == record.PhotoID }) {
		return nil, ErrAlreadyExists
	}
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now()
	}
	record.ID = m.nextID
	m.nextID++
	m.records = append(m.records, record)
	return &record, nil
}

func (m *Memory) Latest(_ context.Context, count int) ([]*domain.UploadRecord, error) {
	m.mu.Lock()
	sorted := slices.Clone(m.records)
	m.mu.Unlock()

	slices.SortStableFunc(sorted, func(a, b domain.UploadRecord) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	count = min(max(count, 0), len(sorted))
	out := make([]*domain.UploadRecord, 0, count)
	for i := range count {
		out = append(out, &sorted[i])
	}
	return out, nil
}

func (m *Memory) Exists(_ context.Context, photoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.records, func(r domain.UploadRecord) bool { return r.PhotoID == photoID }), nil
}

func (m *Memory) CleanupOldRecords(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	n := len(m.records)
	m.records = slices.DeleteFunc(m.records, func(r domain.UploadRecord) bool { return r.UploadedAt.Before(before) })
	deleted := int64(n - len(m.records))
	m.mu.Unlock()

	m.logger.Info("Cleaned up old upload records", "deleted", deleted, "before", before)
	return deleted, nil
}
