package entities

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// GeneratedDocument is the Markdown produced by the text-generation service.
// Its content is untrusted free text; only non-emptiness is enforced.
type GeneratedDocument struct {
	Text string
}

// IsBlank reports whether the document has no content after trimming.
func (d GeneratedDocument) IsBlank() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Title returns the text of the first Markdown heading, or an empty string
// when the document has none.
func (d GeneratedDocument) Title() string {
	source := []byte(d.Text)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(heading, source))
		return ast.WalkStop, nil
	})
	return title
}

// inlineText concatenates the literal text below node.
func inlineText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch leaf := child.(type) {
		case *ast.Text:
			sb.Write(leaf.Segment.Value(source))
			if leaf.SoftLineBreak() || leaf.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(leaf.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
