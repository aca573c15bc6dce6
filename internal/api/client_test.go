package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(handler roundTripFunc) *Client {
	httpClient := &http.Client{Transport: handler}
	return New(httpClient, "https://api.test/")
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	c := New(nil, "  ")
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("unexpected base url: %s", c.BaseURL())
	}
	if c := New(nil, "https://api.test///"); c.BaseURL() != "https://api.test" {
		t.Fatalf("trailing slashes should be trimmed, got %s", c.BaseURL())
	}
}

func TestGetUsersSuccess(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/users" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("missing accept header")
		}
		return response(200, `[{"id":1,"name":"Leanne Graham","username":"Bret","email":"a@b.c","company":{"name":"Romaguera","catchPhrase":"Multi-layered","bs":"harness"}}]`), nil
	})

	users, err := client.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != 1 || users[0].Username != "Bret" || users[0].Company.BS != "harness" {
		t.Fatalf("unexpected users payload: %+v", users)
	}
}

func TestGetUserPostsExpandsUser(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/users/3/posts" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("_expand") != "user" {
			t.Fatalf("missing _expand=user: %s", req.URL.RawQuery)
		}
		return response(200, `[{"id":21,"userId":3,"title":"T","body":"B","user":{"id":3,"username":"Samantha"}}]`), nil
	})

	posts, err := client.GetUserPosts(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetUserPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].User.Username != "Samantha" {
		t.Fatalf("unexpected posts payload: %+v", posts)
	}
	if posts[0].Comments != nil {
		t.Fatalf("comments should be absent until fetched")
	}
}

func TestGetPostCommentsEmptyIsNotNil(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/posts/7/comments" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return response(200, `null`), nil
	})

	comments, err := client.GetPostComments(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPostComments failed: %v", err)
	}
	if comments == nil || len(comments) != 0 {
		t.Fatalf("expected empty non-nil comments, got %#v", comments)
	}
}

func TestGetUserAlbumsEmbedsPhotos(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/users/2/albums" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("_expand") != "user" || q.Get("_embed") != "photos" {
			t.Fatalf("unexpected query: %s", req.URL.RawQuery)
		}
		return response(200, `[{"id":5,"title":"Album","user":{"username":"Antonette"},"photos":[{"id":1,"title":"p","url":"https://u","thumbnailUrl":"https://t"}]}]`), nil
	})

	albums, err := client.GetUserAlbums(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetUserAlbums failed: %v", err)
	}
	if len(albums) != 1 || len(albums[0].Photos) != 1 || albums[0].Photos[0].ThumbnailURL != "https://t" {
		t.Fatalf("unexpected albums payload: %+v", albums)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(500, `[]`), nil
	})

	_, err := client.GetUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(200, `{invalid json`), nil
	})

	_, err := client.GetUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetJSONTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := client.GetPostComments(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}
