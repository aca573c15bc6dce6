package view

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

var voidTags = map[string]bool{"img": true, "br": true, "hr": true, "input": true}

const pageStyle = `section { display: none; } section.active { display: block; }
.user-card, .post-card, .album-card { border: 1px solid #ccc; margin: 8px; padding: 8px; }
.photo-list { display: flex; flex-wrap: wrap; }`

// WriteHTML writes the document as a complete page. Record text is written
// verbatim; the API is trusted and nothing is escaped.
func WriteHTML(w io.Writer, title string, d *Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n<div id=\"app\">\n", title, pageStyle)
	for _, s := range []*Node{d.Users, d.Posts, d.Albums} {
		writeNode(bw, s, 0)
	}
	bw.WriteString("</div>\n</body>\n</html>\n")
	return bw.Flush()
}

// HTML renders a single fragment, mostly for diagnostics and tests.
func HTML(n *Node) string {
	var b strings.Builder
	bw := bufio.NewWriter(&b)
	writeNode(bw, n, 0)
	_ = bw.Flush()
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.IsText() {
		w.WriteString(indent + n.Text + "\n")
		return
	}

	w.WriteString(indent + "<" + n.Tag)
	if n.ID != "" {
		fmt.Fprintf(w, ` id="%s"`, n.ID)
	}
	if n.Class != "" {
		fmt.Fprintf(w, ` class="%s"`, n.Class)
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, ` %s="%s"`, k, n.Attrs[k])
	}
	if voidTags[n.Tag] {
		w.WriteString(" />\n")
		return
	}
	w.WriteString(">")

	if len(n.Children) == 0 {
		w.WriteString(n.Text + "</" + n.Tag + ">\n")
		return
	}
	w.WriteString("\n")
	if n.Text != "" {
		w.WriteString(indent + "  " + n.Text + "\n")
	}
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
	w.WriteString(indent + "</" + n.Tag + ">\n")
}
