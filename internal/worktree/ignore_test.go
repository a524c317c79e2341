package worktree

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// TestMatchPattern_Basics covers exact names, * and ? wildcards, nested
// paths and ** at the start, middle and end of a pattern.
func TestMatchPattern_Basics(t *testing.T) {
	cases := []struct {
		pat  string
		path string
		want bool
	}{
		// exact
		{"foo.txt", "foo.txt", true},
		{"foo.txt", "bar.txt", false},

		// wildcard *
		{"*.txt", "foo.txt", true},
		{"*.txt", "bar.log", false},
		{"foo*", "foobar", true},
		{"foo*", "barfoo", false},

		// single-char ?
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},

		// nested paths
		{"dir/*.txt", "dir/foo.txt", true},
		{"dir/*.txt", "dir/sub/foo.txt", false},

		// double-star recursive
		{"dir/**", "dir/foo.txt", true},
		{"dir/**", "dir/sub/deep/foo.txt", true},
		{"dir/**", "other/foo.txt", false},

		// double-star in middle
		{"dir/**/foo.txt", "dir/foo.txt", true},
		{"dir/**/foo.txt", "dir/a/b/c/foo.txt", true},
		{"dir/**/foo.txt", "dir/bar/baz.txt", false},

		// leading double-star
		{"**/*.rs", "lib.rs", true},
		{"**/*.rs", "src/diff/mod.rs", true},
		{"**/*.rs", "src/diff/mod.go", false},

		// build output
		{"target/**", "target/debug/surf", true},
		{"target/**", "src/target.rs", false},
	}

	for _, tt := range cases {
		got := matchPattern(tt.pat, tt.path)
		if got != tt.want {
			t.Errorf("pattern %q path %q => got %v, want %v", tt.pat, tt.path, got, tt.want)
		}
	}
}

// TestIgnore_StaticAndPatterns mixes exact entries with glob patterns.
func TestIgnore_StaticAndPatterns(t *testing.T) {
	m := NewIgnore(".git", "exact.txt", "vendor/", "*.bak", "logs/**", "**/*.tmp", "# comment", "  ")

	cases := []struct {
		path string
		want bool
	}{
		// static
		{".git", true},
		{".git/HEAD", true},
		{"sub/.git", true},
		{"exact.txt", true},
		{"vendor", true},
		{"something.log", false},

		// wildcard
		{"foo.bak", true},
		{"bar.txt", false},

		// recursive logs
		{"logs/file.log", true},
		{"logs/sub/deep.txt", true},
		{"notlogs/file.log", false},

		// recursive tmp
		{"foo.tmp", true},
		{"deep/dir/file.tmp", true},
		{"deep/dir/file.txt", false},

		// comments and blanks are dropped
		{"# comment", false},
	}

	for _, tt := range cases {
		got := m.Match(tt.path)
		if got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// TestMatchPattern_WeirdCases covers empty patterns and bare double stars.
func TestMatchPattern_WeirdCases(t *testing.T) {
	cases := []struct {
		pat, path string
		want      bool
	}{
		// empty
		{"", "", true},
		{"", "foo", false},

		// double stars at start
		{"**", "foo/bar", true},
		{"**", "", true},

		// partial dirs
		{"foo/**/bar", "foo/bar", true},
		{"foo/**/bar", "foo/x/y/z/bar", true},
		{"foo/**/bar", "bar/foo/bar", false},
	}

	for _, tt := range cases {
		got := matchPattern(tt.pat, tt.path)
		if got != tt.want {
			t.Errorf("pattern %q path %q => got %v, want %v", tt.pat, tt.path, got, tt.want)
		}
	}
}

func TestLoadIgnoreFile(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, billyutil.WriteFile(fsys, ".surfignore", []byte("# build output\ntarget/**\n\n*.swp\n"), 0o644))

	m, err := LoadIgnore(fsys, []string{".git"})
	require.NoError(t, err)
	require.True(t, m.Match("target/debug/surf"))
	require.True(t, m.Match("src/lib.rs.swp"))
	require.True(t, m.Match(".git/config"))
	require.False(t, m.Match("src/lib.rs"))

	empty, err := LoadIgnore(memfs.New(), nil)
	require.NoError(t, err)
	require.False(t, empty.Match("anything"))
}
