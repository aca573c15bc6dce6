// Package export writes static HTML snapshots of the browser's views.
package export

import (
	"context"
	"fmt"
	"path/filepath"

	"placebrowser/internal/browser"
	"placebrowser/internal/logging"
	"placebrowser/internal/model"
	"placebrowser/internal/view"
	"placebrowser/internal/worker"
)

// IndexFile is the name of the user list page inside the export directory.
const IndexFile = "index.html"

// Options configures a site export.
type Options struct {
	Dir      string
	Workers  int
	Comments bool
}

// Page describes the files written for one user.
type Page struct {
	User       model.User
	PostsPath  string
	AlbumsPath string
	Posts      int
	Albums     int
	// CommentFailures counts posts whose comments could not be expanded.
	CommentFailures int
}

// Exporter renders per-user pages with a fresh controller per user.
type Exporter struct {
	fetcher browser.Fetcher
	logger  *logging.Logger
	opts    Options
}

// New creates an Exporter.
func New(fetcher browser.Fetcher, logger *logging.Logger, opts Options) *Exporter {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Exporter{fetcher: fetcher, logger: logger, opts: opts}
}

// Run writes the index page listing users, then a posts page and an albums
// page for every selected user. Per-user failures are joined into the
// returned error; users whose pages were fully written are still reported.
func (e *Exporter) Run(ctx context.Context, users, selected []model.User) ([]Page, error) {
	index := browser.New(e.fetcher, e.logger)
	index.ShowUsers(users)
	indexPath := filepath.Join(e.opts.Dir, IndexFile)
	var writeErr error
	index.Read(func(d *view.Document) {
		writeErr = WriteDocument(indexPath, "Users", d)
	})
	if writeErr != nil {
		return nil, writeErr
	}
	e.logger.Infof("wrote %s with %d user(s)", indexPath, len(users))

	pages, err := worker.Map(ctx, e.opts.Workers, selected, e.exportUser)
	written := make([]Page, 0, len(pages))
	for _, p := range pages {
		if p.PostsPath != "" {
			written = append(written, p)
		}
	}
	return written, err
}

func (e *Exporter) exportUser(ctx context.Context, user model.User) (Page, error) {
	lg := e.logger.With("user", user.Username)
	c := browser.New(e.fetcher, lg)
	c.ShowUsers([]model.User{user})
	frag, ok := c.UserFragment(user.ID)
	if !ok {
		return Page{}, fmt.Errorf("user %q: card not rendered", user.Username)
	}

	page := Page{User: user}
	base := filepath.Join(e.opts.Dir, pageBase(user))

	if !c.LoadPosts(ctx, frag) {
		return Page{}, fmt.Errorf("user %q: fetch posts failed", user.Username)
	}
	if e.opts.Comments {
		page.CommentFailures = c.ExpandAll(ctx)
		if page.CommentFailures > 0 {
			lg.Warnf("%d post(s) exported without comments", page.CommentFailures)
		}
	}
	page.PostsPath = base + "_posts.html"
	if err := e.writeCurrent(c, page.PostsPath, "Posts by "+user.Username, &page.Posts); err != nil {
		return Page{}, fmt.Errorf("user %q: %w", user.Username, err)
	}

	if !c.LoadAlbums(ctx, frag) {
		return Page{}, fmt.Errorf("user %q: fetch albums failed", user.Username)
	}
	page.AlbumsPath = base + "_albums.html"
	if err := e.writeCurrent(c, page.AlbumsPath, "Albums by "+user.Username, &page.Albums); err != nil {
		return Page{}, fmt.Errorf("user %q: %w", user.Username, err)
	}

	lg.Infof("exported %d post(s) and %d album(s)", page.Posts, page.Albums)
	return page, nil
}

// pageBase names a user's pages. The id prefix keeps usernames that sanitize
// to the same string apart.
func pageBase(user model.User) string {
	return fmt.Sprintf("%d_%s", user.ID, MakeValid(user.Username))
}

// writeCurrent writes the document with its active section and stores the
// number of fragments in that section into count.
func (e *Exporter) writeCurrent(c *browser.Controller, path, title string, count *int) error {
	var err error
	c.Read(func(d *view.Document) {
		*count = len(d.Container(d.Active()).Children)
		err = WriteDocument(path, title, d)
	})
	return err
}
