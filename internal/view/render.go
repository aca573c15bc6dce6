package view

import (
	"fmt"

	"placebrowser/internal/model"
)

// Class names shared by the renderers, the controller and the front ends.
const (
	ClassUserCard       = "user-card"
	ClassLoadPosts      = "load-posts"
	ClassLoadAlbums     = "load-albums"
	ClassPostCard       = "post-card"
	ClassCommentList    = "comment-list"
	ClassToggleComments = "toggle-comments"
	ClassVerb           = "verb"
	ClassAlbumCard      = "album-card"
	ClassPhotoList      = "photo-list"
	ClassPhotoCard      = "photo-card"
	ClassComment        = "comment"
)

// RenderUser builds a user card.
func RenderUser(user model.User) *Node {
	return newFragment(El("div", ClassUserCard,
		El("header", "", TextEl("h2", "", user.Name)),
		El("section", "company-info",
			El("p", "", TextEl("b", "", "Contact:"), Text(" "+user.Email)),
			El("p", "", TextEl("b", "", "Works for:"), Text(" "+user.Company.Name)),
			El("p", "", TextEl("b", "", "Company creed:"),
				Text(fmt.Sprintf(" \"%s, which will %s!\"", user.Company.CatchPhrase, user.Company.BS))),
		),
		El("footer", "",
			TextEl("button", ClassLoadPosts, "POSTS BY "+user.Username),
			TextEl("button", ClassLoadAlbums, "ALBUMS BY "+user.Username),
		),
	))
}

// RenderPost builds a post card with an empty comment list and a collapsed
// toggle label.
func RenderPost(post model.Post) *Node {
	toggle := El("a", ClassToggleComments)
	toggle.SetAttr("href", "#")
	SetToggleLabel(toggle, "show", -1)

	return newFragment(El("div", ClassPostCard,
		El("header", "",
			TextEl("h3", "", post.Title),
			TextEl("h3", "", "--- "+post.User.Username),
		),
		TextEl("p", "", post.Body),
		El("footer", "",
			El("div", ClassCommentList),
			toggle,
		),
	))
}

// SetToggleLabel rewrites a toggle link as "(<verb> comments)", or
// "(<verb> <count> comments)" once the count is known (count >= 0).
func SetToggleLabel(toggle *Node, verb string, count int) {
	tail := " comments)"
	if count >= 0 {
		tail = fmt.Sprintf(" %d comments)", count)
	}
	toggle.Children = []*Node{
		Text("("),
		TextEl("span", ClassVerb, verb),
		Text(tail),
	}
}

// RenderAlbum builds an album card holding one photo card per photo, in order.
func RenderAlbum(album model.Album) *Node {
	photos := El("section", ClassPhotoList)
	for _, p := range album.Photos {
		photos.Append(RenderPhoto(p))
	}

	return newFragment(El("div", ClassAlbumCard,
		El("header", "", TextEl("h3", "", fmt.Sprintf("%s, by %s", album.Title, album.User.Username))),
		photos,
	))
}

// RenderPhoto builds a photo card linking the full image.
func RenderPhoto(photo model.Photo) *Node {
	link := El("a", "",
		El("img", "").SetAttr("src", photo.ThumbnailURL),
		TextEl("figure", "", photo.Title),
	)
	link.SetAttr("href", photo.URL).SetAttr("target", "_blank")
	return newFragment(El("div", ClassPhotoCard, link))
}

// RenderComment builds a single comment line.
func RenderComment(comment model.Comment) *Node {
	return newFragment(TextEl("h3", ClassComment, fmt.Sprintf("%s --- %s", comment.Body, comment.Email)))
}
