package browser

// CommentState is the show/hide state of one post's comment list.
type CommentState int

const (
	// Collapsed is the initial state: no comment lines rendered.
	Collapsed CommentState = iota
	// Loading means the first comment fetch for the post is in flight.
	Loading
	// Expanded means the cached comments are rendered.
	Expanded
)

func (s CommentState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Expanded:
		return "expanded"
	default:
		return "collapsed"
	}
}

// Verb is the word shown in the post's toggle label for this state.
func (s CommentState) Verb() string {
	if s == Expanded {
		return "hide"
	}
	return "show"
}

// ToggleResult reports what a ToggleComments call did.
type ToggleResult int

const (
	// ToggleIgnored means the post is unknown or a fetch is already in flight.
	ToggleIgnored ToggleResult = iota
	// ToggleFetched means comments were fetched, attached and rendered.
	ToggleFetched
	// ToggleCached means comments were rendered from the attached list.
	ToggleCached
	// ToggleCollapsed means the rendered comment list was cleared.
	ToggleCollapsed
	// ToggleFailed means the comment fetch failed and nothing changed.
	ToggleFailed
)

func (r ToggleResult) String() string {
	switch r {
	case ToggleFetched:
		return "fetched"
	case ToggleCached:
		return "cached"
	case ToggleCollapsed:
		return "collapsed"
	case ToggleFailed:
		return "failed"
	default:
		return "ignored"
	}
}
