package comments

import (
	"context"
	"testing"

	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	mock_photoapi "github.com/orgball2608/photoshare-client/internal/photoapi/mocks"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	photo  = &domain.Photo{ID: "p1"}
	author = &domain.User{UID: "u1", DisplayName: "Ann", IDToken: "tok"}
)

func newFeed(t *testing.T) (*Feed, *mock_photoapi.MockClient) {
	t.Helper()
	api := mock_photoapi.NewMockClient(gomock.NewController(t))
	f := New(context.Background(), Opts{API: api, Logger: logger.Nop()})
	t.Cleanup(f.Close)
	return f, api
}

func ids(list []domain.Comment) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	f, api := newFeed(t)

	gomock.InOrder(
		api.EXPECT().ListComments(gomock.Any(), "p1").
			Return([]domain.Comment{{ID: "c1"}, {ID: "c2"}}, nil),
		api.EXPECT().ListComments(gomock.Any(), "p1").
			Return([]domain.Comment{{ID: "c3"}}, nil),
	)

	require.NoError(t, f.Load(context.Background(), photo))
	assert.Equal(t, []string{"c1", "c2"}, ids(f.Comments()))

	require.NoError(t, f.Load(context.Background(), photo))
	assert.Equal(t, []string{"c3"}, ids(f.Comments()))
}

func TestLoad_FailureKeepsList(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().ListComments(gomock.Any(), "p1").Return([]domain.Comment{{ID: "c1"}}, nil)
	require.NoError(t, f.Load(context.Background(), photo))

	api.EXPECT().ListComments(gomock.Any(), "p1").Return(nil, perrors.UnexpectedStatus(500, "list comments"))
	err := f.Load(context.Background(), photo)

	assert.ErrorIs(t, err, perrors.ErrUnexpectedStatus)
	assert.Equal(t, []string{"c1"}, ids(f.Comments()))
}

func TestLoad_NilPhotoIsNoop(t *testing.T) {
	f, _ := newFeed(t)

	assert.NoError(t, f.Load(context.Background(), nil))
	assert.Empty(t, f.Comments())
}

func TestSubmit_AppendsServerCommentAtTail(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().ListComments(gomock.Any(), "p1").Return([]domain.Comment{{ID: "c1"}}, nil)
	require.NoError(t, f.Load(context.Background(), photo))

	api.EXPECT().PostComment(gomock.Any(), "p1", "hello", "tok").
		Return(&domain.Comment{ID: "c9", Content: "hello", User: &domain.User{UID: "u1"}}, nil)

	comment, err := f.Submit(context.Background(), "hello", photo, author)

	require.NoError(t, err)
	assert.Equal(t, "c9", comment.ID)

	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "c1", entries[0].Comment.ID)
	assert.Equal(t, "c9", entries[1].Comment.ID)
	assert.Equal(t, "hello", entries[1].Comment.Content)
	assert.Equal(t, Confirmed, entries[1].Status)
}

func TestSubmit_ShowsPendingWhileInFlight(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().PostComment(gomock.Any(), "p1", "hello", "tok").
		DoAndReturn(func(context.Context, string, string, string) (*domain.Comment, error) {
			entries := f.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, Pending, entries[0].Status)
			assert.Equal(t, "hello", entries[0].Comment.Content)
			assert.Empty(t, entries[0].Comment.User.IDToken)
			return &domain.Comment{ID: "c9", Content: "hello"}, nil
		})

	_, err := f.Submit(context.Background(), "hello", photo, author)
	require.NoError(t, err)
	assert.Equal(t, []string{"c9"}, ids(f.Comments()))
}

func TestSubmit_ValidationLeavesFeedUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		photo *domain.Photo
		user  *domain.User
	}{
		{"no user", "hello", photo, nil},
		{"no token", "hello", photo, &domain.User{UID: "u1"}},
		{"blank text", "   ", photo, author},
		{"no photo", "hello", nil, author},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, api := newFeed(t)
			api.EXPECT().ListComments(gomock.Any(), "p1").Return([]domain.Comment{{ID: "c1"}}, nil)
			require.NoError(t, f.Load(context.Background(), photo))

			_, err := f.Submit(context.Background(), tt.text, tt.photo, tt.user)

			assert.True(t, perrors.IsValidation(err))
			assert.Equal(t, []string{"c1"}, ids(f.Comments()))
		})
	}
}

func TestSubmit_FailureRollsBack(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().ListComments(gomock.Any(), "p1").Return([]domain.Comment{{ID: "c1"}}, nil)
	require.NoError(t, f.Load(context.Background(), photo))

	api.EXPECT().PostComment(gomock.Any(), "p1", "hello", "tok").
		Return(nil, perrors.UnexpectedStatus(500, "post comment"))

	_, err := f.Submit(context.Background(), "hello", photo, author)

	assert.ErrorIs(t, err, perrors.ErrUnexpectedStatus)
	assert.Equal(t, []string{"c1"}, ids(f.Comments()))
}

func TestSubmit_OtherPhotoRejected(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().ListComments(gomock.Any(), "p1").Return(nil, nil)
	require.NoError(t, f.Load(context.Background(), photo))

	_, err := f.Submit(context.Background(), "hello", &domain.Photo{ID: "p2"}, author)
	assert.True(t, perrors.IsValidation(err))
}

func TestLoad_ResultAfterCloseIsDiscarded(t *testing.T) {
	f, api := newFeed(t)

	api.EXPECT().ListComments(gomock.Any(), "p1").
		DoAndReturn(func(ctx context.Context, _ string) ([]domain.Comment, error) {
			f.Close()
			return []domain.Comment{{ID: "c1"}}, nil
		})

	err := f.Load(context.Background(), photo)

	assert.ErrorIs(t, err, component.ErrUnmounted)
	assert.Empty(t, f.Comments())
}

func TestLoad_StaleResultIsDiscarded(t *testing.T) {
	f, api := newFeed(t)
	other := &domain.Photo{ID: "p2"}

	api.EXPECT().ListComments(gomock.Any(), "p2").Return([]domain.Comment{{ID: "c2"}}, nil)
	api.EXPECT().ListComments(gomock.Any(), "p1").
		DoAndReturn(func(ctx context.Context, _ string) ([]domain.Comment, error) {
			require.NoError(t, f.Load(ctx, other))
			return []domain.Comment{{ID: "c1"}}, nil
		})

	err := f.Load(context.Background(), photo)

	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, []string{"c2"}, ids(f.Comments()))
	assert.Equal(t, "p2", f.PhotoID())
}

func TestLoad_OtherPhotoFailureClearsList(t *testing.T) {
	f, api := newFeed(t)
	other := &domain.Photo{ID: "p2"}

	api.EXPECT().ListComments(gomock.Any(), "p1").Return([]domain.Comment{{ID: "c1"}}, nil)
	require.NoError(t, f.Load(context.Background(), photo))

	api.EXPECT().ListComments(gomock.Any(), "p2").Return(nil, perrors.Transport(context.DeadlineExceeded, "list comments"))
	err := f.Load(context.Background(), other)

	require.Error(t, err)
	assert.Equal(t, "p2", f.PhotoID())
	assert.Empty(t, f.Comments())

	api.EXPECT().PostComment(gomock.Any(), "p2", "hello", "tok").
		Return(&domain.Comment{ID: "c9", Content: "hello"}, nil)
	_, err = f.Submit(context.Background(), "hello", other, author)

	require.NoError(t, err)
	assert.Equal(t, []string{"c9"}, ids(f.Comments()))
}
