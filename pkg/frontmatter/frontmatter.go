// Package frontmatter splits bundle documents into a configuration mapping
// and a markdown body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

// yamlLineRe extracts the 1-indexed line number yaml.v3 embeds in its errors.
var yamlLineRe = regexp.MustCompile(`line (\d+):`)

// Split separates text into its front-matter mapping and body.
//
// Documents without an opening delimiter yield an empty mapping and the whole
// text as body. Any structural failure is returned as a *SyntaxError.
func Split(text string) (map[string]any, string, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	format, block, body, err := cut(text)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatYAML:
		cfg, err := decodeYAML(block)
		if err != nil {
			return nil, "", err
		}
		return cfg, body, nil
	case FormatTOML:
		cfg, err := decodeTOML(block)
		if err != nil {
			return nil, "", err
		}
		return cfg, body, nil
	default:
		return map[string]any{}, text, nil
	}
}

// Detect reports which front-matter format text opens with, or FormatNone.
func Detect(text string) Format {
	text = strings.TrimPrefix(text, "\ufeff")
	first, _, _ := strings.Cut(text, "\n")
	switch strings.TrimSuffix(first, "\r") {
	case yamlDelimiter:
		return FormatYAML
	case tomlDelimiter:
		return FormatTOML
	default:
		return FormatNone
	}
}

// cut locates the delimited block. Line endings inside the block are
// normalized to LF; the body is returned verbatim.
func cut(text string) (Format, []byte, string, error) {
	format := Detect(text)
	if format == FormatNone {
		return FormatNone, nil, text, nil
	}

	delim := yamlDelimiter
	if format == FormatTOML {
		delim = tomlDelimiter
	}

	var block bytes.Buffer
	pos := strings.IndexByte(text, '\n')
	if pos < 0 {
		return format, nil, "", &SyntaxError{
			Format:   format,
			Message:  "missing closing " + strconv.Quote(delim) + " delimiter",
			Position: &Position{},
		}
	}
	pos++

	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		var line string
		next := len(text)
		if end < 0 {
			line = text[pos:]
		} else {
			line = text[pos : pos+end]
			next = pos + end + 1
		}
		line = strings.TrimSuffix(line, "\r")

		if line == delim {
			return format, block.Bytes(), text[next:], nil
		}

		block.WriteString(line)
		block.WriteByte('\n')
		pos = next
	}

	return format, nil, "", &SyntaxError{
		Format:   format,
		Message:  "missing closing " + strconv.Quote(delim) + " delimiter",
		Position: &Position{},
	}
}

func decodeYAML(block []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, yamlSyntaxError(err)
	}

	// An empty block decodes to a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &SyntaxError{
			Format:   FormatYAML,
			Message:  "front matter must be a mapping, found " + nodeKind(root),
			Position: &Position{Line: root.Line, Column: max(root.Column-1, 0)},
		}
	}

	cfg := map[string]any{}
	if err := root.Decode(&cfg); err != nil {
		return nil, yamlSyntaxError(err)
	}
	for k, v := range cfg {
		cfg[k] = stringKeys(v)
	}
	return cfg, nil
}

// stringKeys rewrites the map[any]any values yaml.v3 produces for mappings
// with non-string keys into map[string]any, recursively, so every mapping in
// the result has one type.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// yamlSyntaxError converts a yaml.v3 error. The library reports lines
// relative to the block, 1-indexed; the block starts on file line 1
// (0-indexed), so the block line number is already the 0-indexed file line.
func yamlSyntaxError(err error) *SyntaxError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	se := &SyntaxError{Format: FormatYAML, Message: msg, Err: err}

	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			se.Position = &Position{Line: n}
			// The block-relative prefix would contradict the file position.
			se.Message = strings.TrimSpace(strings.TrimPrefix(msg, m[0]))
		}
	}
	return se
}

func decodeTOML(block []byte) (map[string]any, error) {
	cfg := map[string]any{}
	if err := toml.Unmarshal(block, &cfg); err != nil {
		se := &SyntaxError{Format: FormatTOML, Message: err.Error(), Err: err}

		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			se.Position = &Position{Line: row, Column: max(col-1, 0)}
		}
		return nil, se
	}
	return cfg, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}
