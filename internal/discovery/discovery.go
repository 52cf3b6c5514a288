// Package discovery expands command-line arguments into the bundle files to
// validate.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// DefaultInclude matches markdown files at any depth.
var DefaultInclude = []string{"**/*.md"}

// Options controls how directories are expanded.
type Options struct {
	// Include lists doublestar patterns, relative to the walked directory,
	// that select files. Empty means DefaultInclude.
	Include []string

	// Ignore lists glob patterns for files and directories to skip. A
	// pattern matches either the relative slash path or the base name.
	Ignore []string
}

// Finder expands paths according to compiled Options.
type Finder struct {
	include []string
	ignore  []glob.Glob
}

// New compiles opts into a Finder.
func New(opts Options) (*Finder, error) {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf("invalid include pattern %q", p)
		}
	}

	ignore := make([]glob.Glob, 0, len(opts.Ignore))
	for _, p := range opts.Ignore {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", p)
		}
		ignore = append(ignore, g)
	}

	return &Finder{include: include, ignore: ignore}, nil
}

// Find expands args in order. Regular files are kept as given, even when
// they match no include pattern. Directories are walked and filtered by the
// include and ignore patterns. Arguments containing glob metacharacters are
// expanded with doublestar. Paths that do not exist are kept so the
// validator can report them. The result is deduplicated.
func (f *Finder) Find(args []string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if !seen[key] {
			seen[key] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			files, err := f.walk(arg)
			if err != nil {
				return nil, err
			}
			for _, p := range files {
				add(p)
			}
		case err == nil:
			add(arg)
		case hasGlobChars(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Wrapf(err, "expanding %s", arg)
			}
			for _, p := range matches {
				if !f.ignored(filepath.ToSlash(p)) {
					add(p)
				}
			}
		case errors.Is(err, fs.ErrNotExist):
			add(arg)
		default:
			return nil, errors.Wrapf(err, "accessing %s", arg)
		}
	}

	return result, nil
}

// walk returns the matching files under root, sorted.
func (f *Finder) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || f.ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if f.ignored(rel) {
			return nil
		}
		if f.included(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	sort.Strings(files)
	return files, nil
}

func (f *Finder) included(rel string) bool {
	for _, p := range f.include {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (f *Finder) ignored(rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, g := range f.ignore {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// hasGlobChars returns true if the string contains glob meta-characters.
func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
