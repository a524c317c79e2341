package git_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/surf/internal/diff"
	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/vcs/git"
)

type fixture struct {
	t    *testing.T
	fs   billy.Filesystem
	repo *gogit.Repository
	wt   *gogit.Worktree
	when time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixture{t: t, fs: fs, repo: repo, wt: wt, when: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fixture) write(path, contents string) {
	f.t.Helper()
	require.NoError(f.t, util.WriteFile(f.fs, path, []byte(contents), 0o644))
	_, err := f.wt.Add(path)
	require.NoError(f.t, err)
}

func (f *fixture) remove(path string) {
	f.t.Helper()
	_, err := f.wt.Remove(path)
	require.NoError(f.t, err)
}

func (f *fixture) move(from, to string) {
	f.t.Helper()
	_, err := f.wt.Move(from, to)
	require.NoError(f.t, err)
}

func (f *fixture) commit(msg string) string {
	f.t.Helper()
	f.when = f.when.Add(time.Hour)
	sig := &object.Signature{Name: "Alice", Email: "alice@example.com", When: f.when}
	h, err := f.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)
	return h.String()
}

func (f *fixture) repository() *git.Repository {
	opts := git.DefaultOptions()
	opts.Hidden = []string{".gitignore"}
	return git.New(f.repo, opts)
}

func paths[T any](items []T, path func(T) filesystem.Path) []string {
	var out []string
	for _, it := range items {
		out = append(out, path(it).String())
	}
	return out
}

func TestDirectorySnapshot(t *testing.T) {
	f := newFixture(t)
	f.write("README.md", "# hello\n")
	f.write("src/lib.rs", "pub mod banana;\n")
	f.write("src/banana.rs", "use banana")
	f.write(".gitignore", "target\n")
	f.commit("initial")

	dir, err := f.repository().Directory(context.Background(), "HEAD")
	require.NoError(t, err)

	var listed []string
	for _, e := range dir.ListDirectory() {
		listed = append(listed, e.Label.String())
	}
	assert.Equal(t, []string{"README.md", "src"}, listed)

	file, ok := dir.FindFile(filesystem.MustPath("src/banana.rs"))
	require.True(t, ok)
	assert.Equal(t, []byte("use banana"), file.Contents())
	assert.Equal(t, 8+16+10+7, dir.Size())
}

func TestDiffDeltas(t *testing.T) {
	f := newFixture(t)
	f.write("banana.rs", "use banana\n")
	f.write("keep.rs", "fn keep() {}\n")
	f.write("gone.rs", "fn gone() {}\n")
	base := f.commit("base")

	f.write("banana.rs", "use banana;\n")
	f.write("new.rs", "fn new() {}\n")
	f.remove("gone.rs")
	head := f.commit("head")

	got, err := f.repository().Diff(context.Background(), base, head)
	require.NoError(t, err)

	assert.Equal(t, []string{"new.rs"}, paths(got.Created, func(c diff.CreateFile) filesystem.Path { return c.Path }))
	assert.Equal(t, []string{"gone.rs"}, paths(got.Deleted, func(c diff.DeleteFile) filesystem.Path { return c.Path }))
	require.Len(t, got.Modified, 1)

	m := got.Modified[0]
	assert.Equal(t, "banana.rs", m.Path.String())
	assert.Equal(t, diff.EofNone, m.EOF)
	require.Len(t, m.Diff.Hunks, 1)
	lines := m.Diff.Hunks[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, diff.Deletion([]byte("use banana"), 1), lines[0])
	assert.Equal(t, diff.Addition([]byte("use banana;"), 1), lines[1])
}

func TestDiffFromEmptyTree(t *testing.T) {
	f := newFixture(t)
	f.write("src/banana.rs", "use banana")
	head := f.commit("only")

	got, err := f.repository().Diff(context.Background(), "", head)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/banana.rs"}, paths(got.Created, func(c diff.CreateFile) filesystem.Path { return c.Path }))
}

func TestDiffDetectsRename(t *testing.T) {
	f := newFixture(t)
	contents := "line one\nline two\nline three\nline four\n"
	f.write("old.txt", contents)
	base := f.commit("base")

	f.move("old.txt", "renamed.txt")
	head := f.commit("rename")

	repo := f.repository()
	got, err := repo.Diff(context.Background(), base, head)
	require.NoError(t, err)
	require.Len(t, got.Moved, 1)
	assert.Equal(t, "old.txt", got.Moved[0].OldPath.String())
	assert.Equal(t, "renamed.txt", got.Moved[0].NewPath.String())
	assert.Empty(t, got.Created)
	assert.Empty(t, got.Deleted)

	structural, err := repo.StructuralDiff(context.Background(), base, head)
	require.NoError(t, err)
	require.Len(t, structural.Moved, 1)
	assert.Empty(t, structural.Created)
	assert.Empty(t, structural.Deleted)
}

func TestStructuralDiffUsesGitPatches(t *testing.T) {
	f := newFixture(t)
	f.write("src/banana.rs", "use banana")
	f.write("src/other.rs", "fn other() {}\n")
	base := f.commit("base")

	f.write("src/banana.rs", "use banana;")
	head := f.commit("head")

	got, err := f.repository().StructuralDiff(context.Background(), base, head)
	require.NoError(t, err)
	require.Len(t, got.Modified, 1)

	m := got.Modified[0]
	assert.Equal(t, "src/banana.rs", m.Path.String())
	assert.Equal(t, diff.EofBothMissing, m.EOF)
	require.Len(t, m.Diff.Hunks, 1)
	assert.Equal(t, "@@ -1 +1 @@", string(m.Diff.Hunks[0].Header))
}

func TestLastCommit(t *testing.T) {
	f := newFixture(t)
	f.write("src/a.rs", "a")
	f.write("docs/readme", "r")
	first := f.commit("first")

	f.write("src/b.rs", "b")
	second := f.commit("second")

	f.write("docs/readme", "r2")
	third := f.commit("third\n\nwith a body")

	repo := f.repository()
	ctx := context.Background()

	tests := []struct {
		path string
		want string
	}{
		{"src/a.rs", first},
		{"src/b.rs", second},
		{"src", second},
		{"docs/readme", third},
	}
	for _, tt := range tests {
		c, ok, err := repo.LastCommit(ctx, "HEAD", filesystem.MustPath(tt.path))
		require.NoError(t, err)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, c.ID, tt.path)
	}

	c, ok, err := repo.LastCommit(ctx, "HEAD", filesystem.RootPath())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, third, c.ID)

	_, ok, err = repo.LastCommit(ctx, "HEAD", filesystem.MustPath("~"))
	require.NoError(t, err)
	assert.False(t, ok, "a top-level entry named ~ is not the root")

	c, ok, err = repo.LastCommit(ctx, "HEAD", filesystem.MustPath("docs/readme"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "third", c.Summary)
	assert.Equal(t, "Alice", c.Author)

	_, ok, err = repo.LastCommit(ctx, "HEAD", filesystem.MustPath("nope"))
	require.NoError(t, err)
	assert.False(t, ok)

	c, ok, err = repo.LastCommit(ctx, second, filesystem.MustPath("docs"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, c.ID)
}

func TestFileHistory(t *testing.T) {
	f := newFixture(t)
	f.write("a.txt", "1")
	first := f.commit("one")
	f.write("a.txt", "2")
	second := f.commit("two")

	histories, err := f.repository().FileHistory(context.Background(), "HEAD")
	require.NoError(t, err)

	sub := histories.Find([]filesystem.Label{filesystem.MustLabel("a.txt")})
	require.NotNil(t, sub)
	require.True(t, sub.IsNode())

	var ids []string
	for _, c := range sub.Value().Commits {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{second, first}, ids)
}

func TestResolveErrors(t *testing.T) {
	f := newFixture(t)
	f.write("a.txt", "1")
	f.commit("one")

	_, err := f.repository().Directory(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve does-not-exist")
}

func TestErrors(t *testing.T) {
	err := &git.PatchUnavailableError{Path: "a.rs"}
	assert.Equal(t, "couldn't retrieve patch for a.rs", err.Error())
	assert.Contains(t, (&git.DeltaUnhandledError{Action: "action 9"}).Error(), "action 9")
}
