package model

// Company is embedded in every user record.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// User is returned by the users endpoint.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Company  Company `json:"company"`
}

// Post is returned by the user posts endpoint with the author expanded.
// Comments stays nil until they are fetched and attached.
type Post struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	User     User      `json:"user"`
	Comments []Comment `json:"comments,omitempty"`
}

// Album is returned by the user albums endpoint with photos embedded.
type Album struct {
	ID     int     `json:"id"`
	UserID int     `json:"userId"`
	Title  string  `json:"title"`
	User   User    `json:"user"`
	Photos []Photo `json:"photos"`
}

// Photo belongs to an album.
type Photo struct {
	ID           int    `json:"id"`
	AlbumID      int    `json:"albumId"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Comment is returned by the post comments endpoint.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}
