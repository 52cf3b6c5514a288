// Package frontmatter provides parsing of the front-matter header that
// bundle and agent definition files carry.
//
// YAML front matter is delimited by lines containing only "---"; TOML front
// matter by lines containing only "+++". The header is decoded into a generic
// mapping and everything after the closing delimiter is returned as the body.
//
// # Basic Usage
//
//	cfg, body, err := frontmatter.Split(text)
//	var syntaxErr *frontmatter.SyntaxError
//	if errors.As(err, &syntaxErr) && syntaxErr.Position != nil {
//		fmt.Printf("line %d: %s\n", syntaxErr.Position.Line+1, syntaxErr.Message)
//	}
//
// # Positions
//
// [Position] values are 0-indexed file coordinates: the opening delimiter is
// line 0, so the first header line is line 1. Callers presenting locations to
// people add one.
//
// # Edge Cases
//
//   - No opening delimiter: empty mapping, whole text as body.
//   - Opening delimiter without a closing one: [SyntaxError] at line 0.
//   - A header that is not a mapping (a list or scalar): [SyntaxError].
//   - Both LF and CRLF line endings are accepted.
package frontmatter
