package view

// Section identifies one of the fixed top-level containers.
type Section int

const (
	SectionNone Section = iota
	SectionUsers
	SectionPosts
	SectionAlbums
)

func (s Section) String() string {
	switch s {
	case SectionUsers:
		return "users"
	case SectionPosts:
		return "posts"
	case SectionAlbums:
		return "albums"
	default:
		return "none"
	}
}

const classActive = "active"

// Document is the whole display: a user list that is always visible and a
// post list and album list of which at most one is active.
type Document struct {
	Users  *Node
	Posts  *Node
	Albums *Node

	active Section
}

// NewDocument creates an empty document with no active detail section.
func NewDocument() *Document {
	d := &Document{
		Users:  &Node{ID: "user-list", Tag: "section"},
		Posts:  &Node{ID: "post-list", Tag: "section"},
		Albums: &Node{ID: "album-list", Tag: "section"},
	}
	d.Users.Class = classActive
	return d
}

// Activate makes s the visible detail section and hides the other one.
// Activating SectionUsers or SectionNone hides both detail sections.
func (d *Document) Activate(s Section) {
	d.Posts.Class = ""
	d.Albums.Class = ""
	switch s {
	case SectionPosts:
		d.Posts.Class = classActive
	case SectionAlbums:
		d.Albums.Class = classActive
	default:
		s = SectionNone
	}
	d.active = s
}

// Active returns the visible detail section, or SectionNone.
func (d *Document) Active() Section {
	return d.active
}

// Visible reports whether a section is currently shown.
func (d *Document) Visible(s Section) bool {
	if s == SectionUsers {
		return true
	}
	return s != SectionNone && d.active == s
}

// Container returns the node backing a section.
func (d *Document) Container(s Section) *Node {
	switch s {
	case SectionUsers:
		return d.Users
	case SectionPosts:
		return d.Posts
	case SectionAlbums:
		return d.Albums
	default:
		return nil
	}
}

// RenderList empties container and appends one rendered fragment per record,
// preserving input order. It returns the fragments in the same order.
func RenderList[T any](container *Node, records []T, render func(T) *Node) []*Node {
	container.Empty()
	fragments := make([]*Node, 0, len(records))
	for _, r := range records {
		n := render(r)
		fragments = append(fragments, n)
		container.Append(n)
	}
	return fragments
}
