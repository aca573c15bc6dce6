package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebrowser/internal/model"
)

type siteFetcher struct {
	failAlbumsFor int
}

func (siteFetcher) Users(context.Context) ([]model.User, bool) {
	return nil, false
}

func (siteFetcher) UserPosts(_ context.Context, userID int) ([]model.Post, bool) {
	u := model.User{ID: userID, Username: usernameFor(userID)}
	return []model.Post{{ID: userID * 10, Title: "post of " + u.Username, User: u}}, true
}

func (siteFetcher) PostComments(_ context.Context, postID int) ([]model.Comment, bool) {
	return []model.Comment{{Body: "nice", Email: "c@x"}}, true
}

func (f siteFetcher) UserAlbums(_ context.Context, userID int) ([]model.Album, bool) {
	if userID == f.failAlbumsFor {
		return nil, false
	}
	u := model.User{ID: userID, Username: usernameFor(userID)}
	return []model.Album{{ID: userID, Title: "album", User: u}, {ID: userID + 1, Title: "more", User: u}}, true
}

func usernameFor(id int) string {
	if id == 1 {
		return "Bret"
	}
	return "Mrs. Dennis"
}

var siteUsers = []model.User{
	{ID: 1, Name: "Leanne", Username: "Bret"},
	{ID: 2, Name: "Clementine", Username: "Mrs. Dennis"},
}

func TestExporterWritesPages(t *testing.T) {
	dir := t.TempDir()
	e := New(siteFetcher{}, nil, Options{Dir: dir, Workers: 2, Comments: true})

	pages, err := e.Run(context.Background(), siteUsers, siteUsers)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, filepath.Join(dir, "1_Bret_posts.html"), pages[0].PostsPath)
	assert.Equal(t, filepath.Join(dir, "2_Mrs._Dennis_albums.html"), pages[1].AlbumsPath)
	assert.Equal(t, 1, pages[0].Posts)
	assert.Equal(t, 2, pages[0].Albums)

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(index), `class="user-card"`))

	posts, err := os.ReadFile(pages[0].PostsPath)
	require.NoError(t, err)
	assert.Contains(t, string(posts), "nice --- c@x")
	assert.Contains(t, string(posts), `<section id="post-list" class="active">`)

	albums, err := os.ReadFile(pages[0].AlbumsPath)
	require.NoError(t, err)
	assert.Contains(t, string(albums), `<section id="album-list" class="active">`)
	assert.Contains(t, string(albums), "album, by Bret")
}

func TestExporterWithoutCommentsKeepsPostsCollapsed(t *testing.T) {
	dir := t.TempDir()
	e := New(siteFetcher{}, nil, Options{Dir: dir})

	pages, err := e.Run(context.Background(), siteUsers, siteUsers[:1])
	require.NoError(t, err)
	require.Len(t, pages, 1)

	posts, err := os.ReadFile(pages[0].PostsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(posts), "nice --- c@x")
	assert.Contains(t, string(posts), "show")
}

func TestExporterReportsPerUserFailures(t *testing.T) {
	dir := t.TempDir()
	e := New(siteFetcher{failAlbumsFor: 2}, nil, Options{Dir: dir, Workers: 2})

	pages, err := e.Run(context.Background(), siteUsers, siteUsers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `user "Mrs. Dennis": fetch albums failed`)
	require.Len(t, pages, 1)
	assert.Equal(t, "Bret", pages[0].User.Username)
}

func TestExporterKeepsCollidingUsernamesApart(t *testing.T) {
	dir := t.TempDir()
	users := []model.User{
		{ID: 3, Username: "a/b"},
		{ID: 4, Username: "a_b"},
	}
	e := New(siteFetcher{}, nil, Options{Dir: dir, Workers: 2})

	pages, err := e.Run(context.Background(), users, users)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, filepath.Join(dir, "3_a_b_posts.html"), pages[0].PostsPath)
	assert.Equal(t, filepath.Join(dir, "4_a_b_posts.html"), pages[1].PostsPath)
	assert.NotEqual(t, pages[0].AlbumsPath, pages[1].AlbumsPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "page.html")
	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
