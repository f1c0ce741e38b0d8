// Package filter decides which changed paths take part in a scan. Exclusion
// is structural: a path is dropped when any path segment exactly equals an
// excluded directory name, or when its name carries a generated-asset
// suffix. Substring hits inside unrelated names never exclude (a directory
// named "buildings" does not match "build").
package filter

import (
	"strings"

	"patrol/internal/model"
)

// DefaultExcludedDirs are directory names whose contents are vendored,
// generated, or otherwise not worth scanning.
var DefaultExcludedDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"bower_components",
	"dist",
	"build",
	"cache",
	"coverage",
}

// DefaultExcludedSuffixes mark minified or generated assets.
var DefaultExcludedSuffixes = []string{
	".min.js",
	".min.css",
	".map",
	".lock",
}

type Filter struct {
	dirs     map[string]bool
	suffixes []string
}

// New builds a filter from the default policy plus any extra directory names
// and suffixes.
func New(extraDirs, extraSuffixes []string) *Filter {
	f := &Filter{dirs: make(map[string]bool)}
	for _, d := range DefaultExcludedDirs {
		f.dirs[d] = true
	}
	for _, d := range extraDirs {
		d = strings.TrimSpace(d)
		if d != "" {
			f.dirs[d] = true
		}
	}
	f.suffixes = append(f.suffixes, DefaultExcludedSuffixes...)
	for _, s := range extraSuffixes {
		s = strings.TrimSpace(s)
		if s != "" {
			f.suffixes = append(f.suffixes, s)
		}
	}
	return f
}

func Default() *Filter {
	return New(nil, nil)
}

// Include reports whether path takes part in the scan. Directory matching is
// segment-exact and case-sensitive; a path equal to exactly an excluded
// directory name is also excluded.
func (f *Filter) Include(path string) bool {
	path = strings.TrimPrefix(strings.TrimSpace(path), "./")
	if path == "" {
		return false
	}
	for _, segment := range strings.Split(path, "/") {
		if f.dirs[segment] {
			return false
		}
	}
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}
	return true
}

// Apply returns the changed paths that pass the filter, preserving order.
func (f *Filter) Apply(paths []model.ChangedPath) []model.ChangedPath {
	out := make([]model.ChangedPath, 0, len(paths))
	for _, p := range paths {
		if f.Include(p.Path) {
			out = append(out, p)
		}
	}
	return out
}
