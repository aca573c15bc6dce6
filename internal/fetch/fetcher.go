// Package fetch turns API calls into absent-on-failure results.
//
// Every failure, whether transport, status or decode, is logged and collapsed
// into ok == false. Callers never see an error and simply leave the view alone.
package fetch

import (
	"context"
	"strconv"

	"placebrowser/internal/logging"
	"placebrowser/internal/model"
)

// Source is the set of API reads the fetcher wraps. *api.Client implements it.
type Source interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserPosts(ctx context.Context, userID int) ([]model.Post, error)
	GetPostComments(ctx context.Context, postID int) ([]model.Comment, error)
	GetUserAlbums(ctx context.Context, userID int) ([]model.Album, error)
}

// Fetcher swallows Source failures into absent results.
type Fetcher struct {
	src    Source
	logger *logging.Logger
}

// New creates a Fetcher. A nil logger discards diagnostics.
func New(src Source, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Fetcher{src: src, logger: logger}
}

// Users fetches every user.
func (f *Fetcher) Users(ctx context.Context) ([]model.User, bool) {
	return do(f, "users", "", func() ([]model.User, error) {
		return f.src.GetUsers(ctx)
	})
}

// UserPosts fetches the posts of one user.
func (f *Fetcher) UserPosts(ctx context.Context, userID int) ([]model.Post, bool) {
	return do(f, "posts", strconv.Itoa(userID), func() ([]model.Post, error) {
		return f.src.GetUserPosts(ctx, userID)
	})
}

// PostComments fetches the comments on one post.
func (f *Fetcher) PostComments(ctx context.Context, postID int) ([]model.Comment, bool) {
	return do(f, "comments", strconv.Itoa(postID), func() ([]model.Comment, error) {
		return f.src.GetPostComments(ctx, postID)
	})
}

// UserAlbums fetches the albums of one user.
func (f *Fetcher) UserAlbums(ctx context.Context, userID int) ([]model.Album, bool) {
	return do(f, "albums", strconv.Itoa(userID), func() ([]model.Album, error) {
		return f.src.GetUserAlbums(ctx, userID)
	})
}

func do[T any](f *Fetcher, resource, owner string, fn func() ([]T, error)) ([]T, bool) {
	lg := f.logger.With("resource", resource)
	if owner != "" {
		lg = lg.With("owner", owner)
	}

	out, err := fn()
	if err != nil {
		lg.Errorf("fetch failed: %v", err)
		return nil, false
	}
	lg.Debugf("fetched %d record(s)", len(out))
	return out, true
}
