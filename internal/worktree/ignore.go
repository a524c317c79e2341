package worktree

import (
	"bufio"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/keshon/surf/internal/config"
)

// Ignore decides which working tree paths stay out of a snapshot.
type Ignore struct {
	static  map[string]bool
	pattern []string
}

// NewIgnore builds a matcher from entries. Entries without wildcards match
// a path exactly or by any of its segments; the rest are glob patterns.
func NewIgnore(entries ...string) *Ignore {
	m := &Ignore{static: make(map[string]bool)}
	for _, e := range entries {
		m.add(e)
	}
	return m
}

// LoadIgnore returns a matcher for entries plus the patterns listed in
// .surfignore at the root of fsys.
func LoadIgnore(fsys billy.Filesystem, entries []string) (*Ignore, error) {
	m := NewIgnore(entries...)

	f, err := fsys.Open(config.IgnoreFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.add(sc.Text())
	}
	return m, sc.Err()
}

func (m *Ignore) add(entry string) {
	line := strings.TrimSpace(entry)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	if strings.ContainsAny(line, "*?[") {
		m.pattern = append(m.pattern, line)
		return
	}
	m.static[path.Clean(strings.TrimSuffix(line, "/"))] = true
}

// Match returns true if the slash separated path should be ignored.
func (m *Ignore) Match(name string) bool {
	clean := path.Clean(name)

	if m.static[clean] {
		return true
	}
	for _, seg := range strings.Split(clean, "/") {
		if m.static[seg] {
			return true
		}
	}

	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
	}
	return false
}

// matchPattern handles *, ?, and ** like git
func matchPattern(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

// matchSegments matches pattern segments recursively
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true // trailing ** matches anything
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := path.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
