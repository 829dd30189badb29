package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/repositories/uploads"
	mock_uploads "github.com/orgball2608/photoshare-client/internal/repositories/uploads/mocks"
	mock_telegram "github.com/orgball2608/photoshare-client/internal/telegram/mocks"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	gallery  *Gallery
	repo     *mock_uploads.MockRepository
	telegram *mock_telegram.MockClient
	clock    *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Gallery.Retention = 24 * time.Hour

	f := &fixture{
		repo:     mock_uploads.NewMockRepository(ctrl),
		telegram: mock_telegram.NewMockClient(ctrl),
		clock:    clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
	}

	g, err := New(Opts{
		LC:       fxtest.NewLifecycle(t),
		Repo:     f.repo,
		Telegram: f.telegram,
		Clock:    f.clock,
		Config:   cfg,
		Logger:   logger.Nop(),
	})
	require.NoError(t, err)
	f.gallery = g
	return f
}

func TestOnUploaded_RecordsAndAnnounces(t *testing.T) {
	f := newFixture(t)
	photo := domain.Photo{ID: "p1", FileURL: "https://cdn.example.com/p1.png", User: &domain.User{UID: "u1", DisplayName: "Ann"}}

	f.repo.EXPECT().
		Create(gomock.Any(), domain.UploadRecord{PhotoID: "p1", UserID: "u1", FileURL: photo.FileURL, UploadedAt: f.clock.Now()}).
		Return(&domain.UploadRecord{ID: 1, PhotoID: "p1"}, nil)
	f.telegram.EXPECT().Enabled().Return(true)
	f.telegram.EXPECT().SendPhotoToChannelByURL(gomock.Any(), photo.FileURL, Caption(photo)).Return(nil)

	require.NoError(t, f.gallery.OnUploaded(context.Background(), photo))
}

func TestOnUploaded_WithoutFileURLSendsText(t *testing.T) {
	f := newFixture(t)
	photo := domain.Photo{ID: "p1"}

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.UploadRecord{ID: 1}, nil)
	f.telegram.EXPECT().Enabled().Return(true)
	f.telegram.EXPECT().SendMessageToChannel(gomock.Any(), Caption(photo)).Return(assert.AnError)

	assert.NoError(t, f.gallery.OnUploaded(context.Background(), photo))
}

func TestOnUploaded_AnnouncementsDisabled(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.UploadRecord{ID: 1}, nil)
	f.telegram.EXPECT().Enabled().Return(false)

	assert.NoError(t, f.gallery.OnUploaded(context.Background(), domain.Photo{ID: "p1"}))
}

func TestOnUploaded_AlreadyRecorded(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, uploads.ErrAlreadyExists)

	assert.NoError(t, f.gallery.OnUploaded(context.Background(), domain.Photo{ID: "p1"}))
}

func TestOnUploaded_RepositoryError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	err := f.gallery.OnUploaded(context.Background(), domain.Photo{ID: "p1"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCleanup_UsesRetention(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().CleanupOldRecords(gomock.Any(), f.clock.Now().Add(-24*time.Hour)).Return(int64(3), nil)

	deleted, err := f.gallery.Cleanup(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)
}

func TestScheduleCleanup(t *testing.T) {
	f := newFixture(t)
	defer func() { _ = f.gallery.scheduler.Shutdown() }()

	require.NoError(t, f.gallery.ScheduleCleanup())
	assert.Equal(t, 1, f.gallery.Jobs())
}

func TestRecent(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Latest(gomock.Any(), 5).Return([]*domain.UploadRecord{{ID: 2}, {ID: 1}}, nil)

	records, err := f.gallery.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCaption(t *testing.T) {
	caption := Caption(domain.Photo{
		ID:          "p-1",
		CameraModel: "X100V",
		ISO:         12800,
		User:        &domain.User{DisplayName: "Ann.B"},
	})

	assert.Equal(t, "*New photo* by Ann\\.B\nX100V\nISO 12,800\n`p\\-1`", caption)
}

func TestOnUploaded_AnnouncementsLimitedPerUploader(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_uploads.NewMockRepository(ctrl)
	tg := mock_telegram.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Telegram.AnnounceEvery = time.Hour
	cfg.Telegram.AnnounceBurst = 1

	g, err := New(Opts{
		LC:       fxtest.NewLifecycle(t),
		Repo:     repo,
		Telegram: tg,
		Clock:    clockwork.NewFakeClock(),
		Config:   cfg,
		Logger:   logger.Nop(),
	})
	require.NoError(t, err)

	user := &domain.User{UID: "u1"}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.UploadRecord{ID: 1}, nil).Times(2)
	tg.EXPECT().Enabled().Return(true).Times(2)
	tg.EXPECT().SendMessageToChannel(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	require.NoError(t, g.OnUploaded(context.Background(), domain.Photo{ID: "p1", User: user}))
	require.NoError(t, g.OnUploaded(context.Background(), domain.Photo{ID: "p2", User: user}))
}
