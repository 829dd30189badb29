package comments

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

// ErrStale marks a fetch whose photo is no longer the one the feed shows.
var ErrStale = errors.New("comment feed moved to another photo")

type Status int

const (
	Confirmed Status = iota
	Pending
)

func (s Status) String() string {
	if s == Pending {
		return "pending"
	}
	return "confirmed"
}

// Entry is one row of the feed. Key is set only on locally authored entries.
type Entry struct {
	Key     string
	Comment domain.Comment
	Status  Status
}

type Opts struct {
	API    photoapi.Client
	Logger logger.Logger
}

// Feed holds the comments of one photo: replaced wholesale on every fetch,
// appended to by local posts in between.
type Feed struct {
	api    photoapi.Client
	logger logger.Logger
	scope  *component.Scope

	mu      sync.Mutex
	photoID string
	gen     uint64
	entries []Entry
}

func New(ctx context.Context, opts Opts) *Feed {
	return &Feed{
		api:    opts.API,
		logger: opts.Logger.WithComponent("CommentFeed"),
		scope:  component.NewScope(ctx),
	}
}

// Load fetches the comments of photo and replaces the feed with them. Moving
// to another photo empties the feed first; a failed reload of the same photo
// keeps what it had.
func (f *Feed) Load(ctx context.Context, photo *domain.Photo) error {
	if photo == nil {
		return nil
	}

	f.mu.Lock()
	f.gen++
	gen := f.gen
	if f.photoID != photo.ID {
		f.entries = nil
	}
	f.photoID = photo.ID
	f.mu.Unlock()

	reqCtx, cancel := f.scope.Bind(ctx)
	defer cancel()

	list, err := f.api.ListComments(reqCtx, photo.ID)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case !f.scope.Alive():
		return component.ErrUnmounted
	case gen != f.gen:
		return ErrStale
	case err != nil:
		f.logger.Error("Failed to load comments", "photo_id", photo.ID, "error", err)
		return err
	}

	entries := make([]Entry, 0, len(list))
	for _, c := range list {
		entries = append(entries, Entry{Comment: c, Status: Confirmed})
	}
	f.entries = entries
	f.logger.Debug("Comments loaded", "photo_id", photo.ID, "count", len(entries))
	return nil
}

// Submit posts text on photo as user. The comment shows up at the tail as
// Pending right away and becomes the server's Comment once the post succeeds;
// a failed post takes it back out.
func (f *Feed) Submit(ctx context.Context, text string, photo *domain.Photo, user *domain.User) (*domain.Comment, error) {
	switch {
	case photo == nil:
		return nil, perrors.Validation("no photo to comment on")
	case !user.CanComment():
		return nil, perrors.Validation("you are not signed in, so you cannot comment")
	case strings.TrimSpace(text) == "":
		return nil, perrors.Validation("comment is empty")
	}

	key := uuid.NewString()
	author := *user
	author.IDToken = ""

	f.mu.Lock()
	if f.photoID == "" {
		f.photoID = photo.ID
	}
	if f.photoID != photo.ID {
		f.mu.Unlock()
		return nil, perrors.Validation("comment target is not the photo on screen")
	}
	f.entries = append(f.entries, Entry{
		Key: key,
		Comment: domain.Comment{
			Content:   text,
			User:      &author,
			CreatedAt: time.Now(),
		},
		Status: Pending,
	})
	f.mu.Unlock()

	reqCtx, cancel := f.scope.Bind(ctx)
	defer cancel()

	comment, err := f.api.PostComment(reqCtx, photo.ID, text, user.IDToken)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.scope.Alive() {
		return nil, component.ErrUnmounted
	}

	idx := slices.IndexFunc(f.entries, func(e Entry) bool { return e.Key == key })
	if err != nil {
		if idx >= 0 {
			f.entries = slices.Delete(f.entries, idx, idx+1)
		}
		f.logger.Error("Failed to post comment", "photo_id", photo.ID, "uid", user.UID, "error", err)
		return nil, err
	}

	if idx >= 0 {
		f.entries[idx] = Entry{Key: key, Comment: *comment, Status: Confirmed}
	}
	return comment, nil
}

func (f *Feed) PhotoID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photoID
}

// Comments lists the feed in display order, pending entries included.
func (f *Feed) Comments() []domain.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Comment, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Comment)
	}
	return out
}

func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.entries)
}

// Close unmounts the feed. Requests in flight are cancelled and their results dropped.
func (f *Feed) Close() {
	f.scope.Close()
}
