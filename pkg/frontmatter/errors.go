package frontmatter

import "fmt"

// Format identifies the front-matter dialect of a document.
type Format string

const (
	// FormatNone means the document has no front matter.
	FormatNone Format = ""
	// FormatYAML is front matter between "---" lines.
	FormatYAML Format = "yaml"
	// FormatTOML is front matter between "+++" lines.
	FormatTOML Format = "toml"
)

// Position is a 0-indexed location within the source document.
type Position struct {
	Line   int
	Column int
}

// SyntaxError reports front matter that could not be decoded.
type SyntaxError struct {
	Format  Format
	Message string
	// Position is nil when the decoder did not report a location.
	Position *Position
	Err      error
}

func (e *SyntaxError) Error() string {
	if e.Position == nil {
		return fmt.Sprintf("invalid %s front matter: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("invalid %s front matter at line %d: %s", e.Format, e.Position.Line+1, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
