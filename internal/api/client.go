package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"placebrowser/internal/model"
)

// DefaultBaseURL is the public JSON placeholder clone the client talks to.
const DefaultBaseURL = "https://jsonplace-univclone.herokuapp.com"

// Client wraps calls to the placeholder REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates an API client. An empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// BaseURL returns the API root used for requests.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetUsers returns all users.
func (c *Client) GetUsers(ctx context.Context) ([]model.User, error) {
	url := fmt.Sprintf("%s/users", c.baseURL)
	var out []model.User
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserPosts returns the posts written by a user, each with its author expanded.
func (c *Client) GetUserPosts(ctx context.Context, userID int) ([]model.Post, error) {
	url := fmt.Sprintf("%s/users/%d/posts?_expand=user", c.baseURL, userID)
	var out []model.Post
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPostComments returns the comments on a post.
func (c *Client) GetPostComments(ctx context.Context, postID int) ([]model.Comment, error) {
	url := fmt.Sprintf("%s/posts/%d/comments", c.baseURL, postID)
	var out []model.Comment
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Comment{}
	}
	return out, nil
}

// GetUserAlbums returns a user's albums with the owner expanded and photos embedded.
func (c *Client) GetUserAlbums(ctx context.Context, userID int) ([]model.Album, error) {
	url := fmt.Sprintf("%s/users/%d/albums?_expand=user&_embed=photos", c.baseURL, userID)
	var out []model.Album
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}

	return nil
}
