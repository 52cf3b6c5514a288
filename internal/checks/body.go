package checks

import (
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

// BodyContent reports a markdown body that renders to nothing. HTML
// comments alone do not count as content.
func BodyContent(_ context.Context, in *health.Input) []health.Issue {
	if hasContent([]byte(in.Body)) {
		return nil
	}
	return []health.Issue{{
		Severity: health.SeverityInfo,
		Code:     CodeEmptyBody,
		Message:  "document has no content after the front matter",
		FilePath: in.Path,
		FixHint:  "describe the bundle or agent in markdown below the front matter",
	}}
}

func hasContent(source []byte) bool {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if block, ok := n.(*ast.HTMLBlock); ok && block.HTMLBlockType == ast.HTMLBlockType2 {
			continue
		}
		return true
	}
	return false
}
