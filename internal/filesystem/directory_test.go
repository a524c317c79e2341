package filesystem_test

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/surf/internal/filesystem"
)

func listing(d filesystem.Directory) []string {
	var out []string
	for _, e := range d.ListDirectory() {
		out = append(out, e.Type.String()+":"+e.Label.String())
	}
	return out
}

func TestFindAddedFile(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("foo.hs"), filesystem.NewFile([]byte("module Banana ...")))

	f, ok := d.FindFile(filesystem.MustPath("foo.hs"))
	require.True(t, ok)
	assert.Equal(t, []byte("module Banana ..."), f.Contents())
	assert.Equal(t, "foo.hs", f.Name().String())
}

func TestFindAddedFileLongPath(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("foo/bar/baz.hs"), filesystem.NewFile([]byte("module Banana ...")))

	_, ok := d.FindFile(filesystem.MustPath("foo/bar/baz.hs"))
	assert.True(t, ok)
	_, ok = d.FindFile(filesystem.MustPath("~/foo/bar/baz.hs"))
	assert.True(t, ok, "a leading root label is ignored")
	_, ok = d.FindFile(filesystem.MustPath("foo/bar"))
	assert.False(t, ok, "a directory is not a file")
}

func TestFileNotFound(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("foo/baz.hs"), filesystem.NewFile([]byte("module Banana ...")))

	_, ok := d.FindFile(filesystem.MustPath("bar/baz.hs"))
	assert.False(t, ok)
	_, ok = d.FindFile(filesystem.MustPath("foo/baz.hs/x"))
	assert.False(t, ok)
	_, ok = d.FindDirectory(filesystem.MustPath("foo/nope"))
	assert.False(t, ok)
}

func TestListDirectory(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("foo.hs"), filesystem.NewFile([]byte("module Banana ...")))
	d.InsertFile(filesystem.MustPath("bar.hs"), filesystem.NewFile([]byte("module Banana ...")))
	d.InsertFile(filesystem.MustPath("baz.hs"), filesystem.NewFile([]byte("module Banana ...")))
	d.InsertFile(filesystem.MustPath("src/lib.rs"), filesystem.NewFile([]byte("fn main()")))

	want := []string{"file:bar.hs", "file:baz.hs", "file:foo.hs", "directory:src"}
	if diff := gocmp.Diff(want, listing(d)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestListDirectorySkipsHidden(t *testing.T) {
	d := filesystem.NewDirectory()
	hidden := func(name string) bool { return name == ".git" || name == ".gitignore" }
	d.InsertFile(filesystem.MustPath(".git/HEAD").WithHidden(hidden), filesystem.NewFile([]byte("ref")))
	d.InsertFile(filesystem.MustPath(".gitignore").WithHidden(hidden), filesystem.NewFile([]byte("*.o")))
	d.InsertFile(filesystem.MustPath("main.go"), filesystem.NewFile([]byte("package main")))

	assert.Equal(t, []string{"file:main.go"}, listing(d))
	assert.Len(t, d.Entries(), 3)

	_, ok := d.FindFile(filesystem.MustPath(".git/HEAD"))
	assert.True(t, ok, "hidden entries are still reachable by path")
}

func TestCreateAndList(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFiles(nil, map[filesystem.Label]filesystem.File{
		filesystem.MustLabel("main.rs"): filesystem.NewFile([]byte("fn main()")),
	})
	d.InsertFiles([]filesystem.Label{filesystem.MustLabel("src")}, map[filesystem.Label]filesystem.File{
		filesystem.MustLabel("lib.rs"):  filesystem.NewFile([]byte("pub mod foo;")),
		filesystem.MustLabel("test.rs"): filesystem.NewFile([]byte("fn hello_world()")),
	})
	d.InsertFile(filesystem.MustPath("this/is/a/really/deeply/nested/directory/tree"),
		filesystem.NewFile([]byte("test")))

	assert.Equal(t, []string{"file:main.rs", "directory:src", "directory:this"}, listing(d))

	src, ok := d.FindDirectory(filesystem.MustPath("src"))
	require.True(t, ok)
	assert.Equal(t, "src", src.Current().String())
	assert.Equal(t, []string{"file:lib.rs", "file:test.rs"}, listing(src))

	deep, ok := d.FindDirectory(filesystem.MustPath("this/is/a/really/deeply/nested/directory"))
	require.True(t, ok)
	assert.Equal(t, []string{"file:tree"}, listing(deep))
}

func TestFindRootDirectory(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("a.txt"), filesystem.NewFile([]byte("a")))

	root, ok := d.FindDirectory(filesystem.RootPath())
	require.True(t, ok)
	assert.True(t, root.Current().IsRoot())
	assert.Equal(t, 1, root.Size())
}

func TestFileNameIsSameAsRoot(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("foo/bar/~"), filesystem.NewFile([]byte("root")))

	f, ok := d.FindFile(filesystem.MustPath("foo/bar/~"))
	require.True(t, ok)
	assert.Equal(t, []byte("root"), f.Contents())

	bar, ok := d.FindDirectory(filesystem.MustPath("foo/bar"))
	require.True(t, ok)
	assert.Equal(t, []string{"file:~"}, listing(bar))
}

func TestTopLevelFileNamedLikeRoot(t *testing.T) {
	d, err := filesystem.FromMap(map[string][]byte{
		"~":   []byte("top"),
		"a/~": []byte("nested"),
	})
	require.NoError(t, err)

	top := filesystem.MustPath("~")
	assert.False(t, top.IsRoot())
	f, ok := d.FindFile(top)
	require.True(t, ok)
	assert.Equal(t, []byte("top"), f.Contents())

	_, ok = d.FindFile(filesystem.RootPath())
	assert.False(t, ok)
	root, ok := d.FindDirectory(filesystem.RootPath())
	require.True(t, ok)
	assert.Equal(t, []string{"directory:a", "file:~"}, listing(root))
	assert.Equal(t, 9, d.Size())
}

func TestInsertReplacesAndPromotes(t *testing.T) {
	d := filesystem.NewDirectory()
	d.InsertFile(filesystem.MustPath("a"), filesystem.NewFile([]byte("one")))
	d.InsertFile(filesystem.MustPath("a"), filesystem.NewFile([]byte("two!")))

	f, ok := d.FindFile(filesystem.MustPath("a"))
	require.True(t, ok)
	assert.Equal(t, 4, f.Size())

	d.InsertFile(filesystem.MustPath("a/b"), filesystem.NewFile([]byte("three")))
	_, ok = d.FindFile(filesystem.MustPath("a"))
	assert.False(t, ok)
	_, ok = d.FindDirectory(filesystem.MustPath("a"))
	assert.True(t, ok)
	assert.Equal(t, 5, d.Size())
}

func TestSizeIsSumOfListedFiles(t *testing.T) {
	d, err := filesystem.FromMap(map[string][]byte{
		"README.md":          []byte("# surf\n"),
		"src/lib.rs":         []byte("pub mod diff;\npub mod file_system;\n"),
		"src/diff/mod.rs":    []byte("mod git;"),
		"src/diff/git.rs":    []byte(""),
		"docs/a/b/c/notes":   []byte("notes"),
		"docs/a/b/c/notes.2": []byte("more notes"),
	})
	require.NoError(t, err)

	var walk func(filesystem.Directory) int
	walk = func(dir filesystem.Directory) int {
		total := 0
		for _, e := range dir.ListDirectory() {
			if f, ok := e.File(); ok {
				total += f.Size()
				continue
			}
			sub, ok := e.Directory()
			require.True(t, ok)
			total += walk(sub)
		}
		return total
	}
	assert.Equal(t, walk(d), d.Size())
	assert.Equal(t, 7+35+8+0+5+10, d.Size())
	assert.Equal(t, 0, filesystem.NewDirectory().Size())
}

func TestAllDirectoriesAndFiles(t *testing.T) {
	files := map[string][]byte{
		"foo/bar/baz.rs": []byte("a"),
		"foo/quux.rs":    []byte("b"),
		"top.rs":         []byte("c"),
		"foo/bar/~":      []byte("root"),
	}
	d, err := filesystem.FromMap(files)
	require.NoError(t, err)

	for name := range files {
		p := filesystem.MustPath(name)
		prefix, _ := p.SplitLast()
		if len(prefix) > 0 {
			dirPath, err := filesystem.PathFromLabels(prefix)
			require.NoError(t, err)
			_, ok := d.FindDirectory(dirPath)
			assert.True(t, ok, "directory %s", dirPath)
		}
		_, ok := d.FindFile(p)
		assert.True(t, ok, "file %s", name)
	}

	var seen []string
	for p := range d.Files() {
		seen = append(seen, p.String())
	}
	assert.Equal(t, []string{"foo/bar/baz.rs", "foo/bar/~", "foo/quux.rs", "top.rs"}, seen)
}

func TestChecksum(t *testing.T) {
	a := filesystem.NewFile([]byte("use banana"))
	b := filesystem.NewFile([]byte("use banana"))
	c := filesystem.NewFile([]byte("use banana;"))

	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.True(t, a.SameContents(b))
	assert.False(t, a.SameContents(c))
	assert.Equal(t, 10, a.Size())
}
