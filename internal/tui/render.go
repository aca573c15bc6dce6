package tui

import (
	"strings"

	"placebrowser/internal/view"
)

var blockTags = map[string]bool{
	"div": true, "section": true, "header": true, "footer": true,
	"p": true, "h2": true, "h3": true, "figure": true,
}

// renderCard draws one fragment of the document as a bordered card.
func renderCard(n *view.Node, width int, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(nodeLines(n), "\n"))
}

// nodeLines flattens a fragment into terminal lines. Block elements start
// new lines; runs of inline content are joined onto one line.
func nodeLines(n *view.Node) []string {
	switch n.Class {
	case view.ClassPhotoCard:
		return []string{photoStyle.Render("▪ " + n.TextContent())}
	case view.ClassComment:
		return []string{commentStyle.Render("› " + n.Text)}
	case view.ClassCommentList:
		var lines []string
		for _, c := range n.Children {
			lines = append(lines, nodeLines(c)...)
		}
		return lines
	}

	if !hasBlockChild(n) {
		line := strings.TrimRight(inline(n), " ")
		if line == "" {
			return nil
		}
		if n.Tag == "h2" || n.Tag == "h3" {
			line = headingStyle.Render(line)
		}
		return []string{line}
	}

	var lines []string
	if n.Text != "" {
		lines = append(lines, n.Text)
	}
	for _, c := range n.Children {
		lines = append(lines, nodeLines(c)...)
	}
	return lines
}

func hasBlockChild(n *view.Node) bool {
	for _, c := range n.Children {
		if blockTags[c.Tag] {
			return true
		}
	}
	return false
}

func inline(n *view.Node) string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		b.WriteString(inline(c))
	}
	s := b.String()

	switch {
	case n.Tag == "button":
		return buttonStyle.Render("["+s+"]") + " "
	case n.Tag == "b":
		return labelStyle.Render(s)
	case n.Class == view.ClassVerb:
		return verbStyle.Render(s)
	}
	return s
}

// windowAround returns at most height lines of the stacked blocks, scrolled
// so that block cursor starts inside the window.
func windowAround(blocks []string, cursor, height int) string {
	var lines []string
	cursorTop := 0
	for i, b := range blocks {
		if i == cursor {
			cursorTop = len(lines)
		}
		lines = append(lines, strings.Split(b, "\n")...)
	}
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	start := min(cursorTop, len(lines)-height)
	return strings.Join(lines[start:start+height], "\n")
}
