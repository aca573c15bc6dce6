// Package browser binds user actions to fetch and render flows.
//
// The Controller owns the document and a view-model mapping fragment ids to
// the records they display. Actions may run on any goroutine: document and
// view-model mutation is serialized on one mutex, which is never held across
// a network fetch.
package browser

import (
	"context"
	"sync"

	"placebrowser/internal/logging"
	"placebrowser/internal/model"
	"placebrowser/internal/view"
)

// Fetcher provides absent-on-failure reads. *fetch.Fetcher implements it.
type Fetcher interface {
	Users(ctx context.Context) ([]model.User, bool)
	UserPosts(ctx context.Context, userID int) ([]model.Post, bool)
	PostComments(ctx context.Context, postID int) ([]model.Comment, bool)
	UserAlbums(ctx context.Context, userID int) ([]model.Album, bool)
}

type postEntry struct {
	post     model.Post
	node     *view.Node
	state    CommentState
	attached bool
}

// Controller drives the document from user actions.
type Controller struct {
	fetcher Fetcher
	logger  *logging.Logger

	mu     sync.Mutex
	doc    *view.Document
	users  map[string]model.User
	posts  map[string]*postEntry
	albums map[string]model.Album
}

// New creates a controller over an empty document.
func New(fetcher Fetcher, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		fetcher: fetcher,
		logger:  logger,
		doc:     view.NewDocument(),
		users:   make(map[string]model.User),
		posts:   make(map[string]*postEntry),
		albums:  make(map[string]model.Album),
	}
}

// Bootstrap fetches every user and renders the user list. On failure the
// document is left as it was and false is returned.
func (c *Controller) Bootstrap(ctx context.Context) bool {
	users, ok := c.fetcher.Users(ctx)
	if !ok {
		return false
	}
	c.ShowUsers(users)
	return true
}

// ShowUsers renders users into the user list, replacing previous cards.
func (c *Controller) ShowUsers(users []model.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frags := view.RenderList(c.doc.Users, users, view.RenderUser)
	c.users = make(map[string]model.User, len(users))
	for i, n := range frags {
		c.users[n.ID] = users[i]
	}
	c.logger.Infof("rendered %d user card(s)", len(users))
}

// LoadPosts fetches the posts of the user shown by userFragment, renders them
// and activates the post section.
func (c *Controller) LoadPosts(ctx context.Context, userFragment string) bool {
	user, ok := c.User(userFragment)
	if !ok {
		return false
	}
	posts, ok := c.fetcher.UserPosts(ctx, user.ID)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frags := view.RenderList(c.doc.Posts, posts, view.RenderPost)
	c.posts = make(map[string]*postEntry, len(posts))
	for i, n := range frags {
		c.posts[n.ID] = &postEntry{post: posts[i], node: n}
	}
	c.doc.Activate(view.SectionPosts)
	c.logger.Infof("rendered %d post(s) by %s", len(posts), user.Username)
	return true
}

// LoadAlbums fetches the albums of the user shown by userFragment, renders
// them and activates the album section.
func (c *Controller) LoadAlbums(ctx context.Context, userFragment string) bool {
	user, ok := c.User(userFragment)
	if !ok {
		return false
	}
	albums, ok := c.fetcher.UserAlbums(ctx, user.ID)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frags := view.RenderList(c.doc.Albums, albums, view.RenderAlbum)
	c.albums = make(map[string]model.Album, len(albums))
	for i, n := range frags {
		c.albums[n.ID] = albums[i]
	}
	c.doc.Activate(view.SectionAlbums)
	c.logger.Infof("rendered %d album(s) by %s", len(albums), user.Username)
	return true
}

// ToggleComments flips the comment list of the post shown by postFragment.
//
// Collapsed posts expand: the first time the comments are fetched and
// attached to the post, later times the attached list is replayed. Expanded
// posts collapse, keeping the attached list. A toggle for a post whose fetch
// is still in flight is ignored.
func (c *Controller) ToggleComments(ctx context.Context, postFragment string) ToggleResult {
	entry, result := c.beginToggle(postFragment)
	if entry == nil {
		return result
	}

	comments, ok := c.fetcher.PostComments(ctx, entry.post.ID)
	return c.finishToggle(postFragment, entry, comments, ok)
}

// beginToggle handles every transition that needs no fetch. It returns a
// non-nil entry, already marked Loading, when the caller must fetch.
func (c *Controller) beginToggle(postFragment string) (*postEntry, ToggleResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.posts[postFragment]
	if !ok {
		return nil, ToggleIgnored
	}

	switch e.state {
	case Loading:
		return nil, ToggleIgnored
	case Expanded:
		c.collapse(e)
		return nil, ToggleCollapsed
	}

	if e.attached {
		c.expand(e)
		return nil, ToggleCached
	}

	e.state = Loading
	return e, ToggleIgnored
}

func (c *Controller) finishToggle(postFragment string, e *postEntry, comments []model.Comment, ok bool) ToggleResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !ok {
		e.state = Collapsed
		return ToggleFailed
	}
	if c.posts[postFragment] != e {
		c.logger.Debugf("post %d left the view before its comments arrived", e.post.ID)
		return ToggleIgnored
	}

	if comments == nil {
		comments = []model.Comment{}
	}
	e.post.Comments = comments
	e.attached = true
	c.expand(e)
	return ToggleFetched
}

func (c *Controller) expand(e *postEntry) {
	list := e.node.Find(view.ClassCommentList)
	list.Empty()
	for _, cm := range e.post.Comments {
		list.Prepend(view.RenderComment(cm))
	}
	e.state = Expanded
	view.SetToggleLabel(e.node.Find(view.ClassToggleComments), e.state.Verb(), len(e.post.Comments))
}

func (c *Controller) collapse(e *postEntry) {
	e.node.Find(view.ClassCommentList).Empty()
	e.state = Collapsed
	view.SetToggleLabel(e.node.Find(view.ClassToggleComments), e.state.Verb(), len(e.post.Comments))
}

// ExpandAll opens the comments of every collapsed post, in display order.
// It returns the number of posts whose comments could not be fetched.
func (c *Controller) ExpandAll(ctx context.Context) int {
	failed := 0
	for _, id := range c.FragmentIDs(view.SectionPosts) {
		if c.CommentState(id) != Collapsed {
			continue
		}
		if c.ToggleComments(ctx, id) == ToggleFailed {
			failed++
		}
	}
	return failed
}

// User returns the user record displayed by a user card.
func (c *Controller) User(fragment string) (model.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[fragment]
	return u, ok
}

// UserFragment returns the id of the card showing the user with userID.
func (c *Controller) UserFragment(userID int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.doc.Users.Children {
		if u, ok := c.users[n.ID]; ok && u.ID == userID {
			return n.ID, true
		}
	}
	return "", false
}

// Post returns the post record displayed by a post card, including any
// attached comments.
func (c *Controller) Post(fragment string) (model.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.posts[fragment]
	if !ok {
		return model.Post{}, false
	}
	return e.post, true
}

// Album returns the album record displayed by an album card.
func (c *Controller) Album(fragment string) (model.Album, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.albums[fragment]
	return a, ok
}

// CommentState returns the toggle state of a post card. Unknown posts read
// as Collapsed.
func (c *Controller) CommentState(postFragment string) CommentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.posts[postFragment]; ok {
		return e.state
	}
	return Collapsed
}

// FragmentIDs lists the fragment ids of a section in display order.
func (c *Controller) FragmentIDs(s view.Section) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	container := c.doc.Container(s)
	if container == nil {
		return nil
	}
	ids := make([]string, 0, len(container.Children))
	for _, n := range container.Children {
		ids = append(ids, n.ID)
	}
	return ids
}

// Active returns the visible detail section.
func (c *Controller) Active() view.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Active()
}

// Read runs fn with exclusive access to the document. fn must not retain
// the document or call back into the controller.
func (c *Controller) Read(fn func(d *view.Document)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.doc)
}
