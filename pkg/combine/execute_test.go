package combine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"codeprompt/pkg/ignore"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
}

// lockedDirFs fails to open one directory, as a permission error would.
type lockedDirFs struct {
	afero.Fs
	dir string
}

func (f lockedDirFs) Open(name string) (afero.File, error) {
	if name == f.dir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.Open(name)
}

// symlinkProject lays out a.txt, link.txt -> a.txt, linkdir -> sub, broken ->
// missing and sub/b.txt under a fresh temporary directory.
func symlinkProject(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("it's"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken")))
	return dir
}

func TestScan(t *testing.T) {
	t.Run("Should list regular files in lexical order", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/z.txt":       "z",
			"/project/a/b/c.txt":   "c",
			"/project/a/a.txt":     "a",
			"/project/m.txt":       "m",
			"/project/a/b/.hidden": "h",
		})
		require.NoError(t, fsys.MkdirAll("/project/empty", 0o755))

		files, err := Scan(fsys, "/project", ignore.NewSet(), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{
			"/project/a/a.txt",
			"/project/a/b/.hidden",
			"/project/a/b/c.txt",
			"/project/m.txt",
			"/project/z.txt",
		}, files)
	})

	t.Run("Should exclude prefix matches including sibling directories", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/build/out.txt":  "1",
			"/project/build2/out.txt": "2",
			"/project/src/main.go":    "3",
		})

		files, err := Scan(fsys, "/project", ignore.NewSet("build"), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{"/project/src/main.go"}, files)
	})

	t.Run("Should exclude absolute patterns", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/vendor/x.go": "x",
			"/project/main.go":     "m",
		})

		files, err := Scan(fsys, "/project", ignore.NewSet("/project/vendor"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/project/main.go"}, files)
	})

	t.Run("Should follow file symlinks only", func(t *testing.T) {
		dir := symlinkProject(t)

		files, err := Scan(afero.NewOsFs(), dir, ignore.NewSet(), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "link.txt"),
			filepath.Join(dir, "sub", "b.txt"),
		}, files)
	})

	t.Run("Should exclude a symlink whose target matches an absolute pattern", func(t *testing.T) {
		dir := symlinkProject(t)
		resolved, err := filepath.EvalSymlinks(filepath.Join(dir, "a.txt"))
		require.NoError(t, err)

		files, err := Scan(afero.NewOsFs(), dir, ignore.NewSet(resolved), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "sub", "b.txt")}, files)
	})

	t.Run("Should skip a directory that cannot be read", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		writeFiles(t, mem, map[string]string{
			"/project/a.txt":        "a",
			"/project/locked/x.txt": "x",
			"/project/z.txt":        "z",
		})
		core, logs := observer.New(zapcore.WarnLevel)

		files, err := Scan(lockedDirFs{Fs: mem, dir: "/project/locked"}, "/project", ignore.NewSet(), zap.New(core))
		require.NoError(t, err)
		assert.Equal(t, []string{"/project/a.txt", "/project/z.txt"}, files)
		require.Equal(t, 1, logs.FilterMessage("Error accessing path during traversal").Len())
	})

	t.Run("Should reject a root that is not a directory", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/file.txt": "x"})

		_, err := Scan(fsys, "/file.txt", ignore.NewSet(), zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidRoot)
		_, err = Scan(fsys, "/missing", ignore.NewSet(), zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidRoot)
	})
}

func TestRunBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("Should render only non-empty files", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/a.txt": "hello",
			"/project/b.txt": "",
		})

		result, err := RunBulk(ctx, fsys, BulkRequest{
			Root:     "/project",
			Patterns: ignore.NewSet("b.txt"),
			Outputs:  Outputs{Prompt: "/out/codebase_prompt.txt"},
		}, zap.NewNop())
		require.NoError(t, err)

		want := "My codebase includes\n'a.txt' with 'hello'\n."
		assert.Equal(t, want, result.Prompt)
		assert.Equal(t, []string{"a.txt"}, result.Included)

		written, err := afero.ReadFile(fsys, "/out/codebase_prompt.txt")
		require.NoError(t, err)
		assert.Equal(t, want, string(written))
	})

	t.Run("Should use root-relative slash identifiers", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/pkg/a.go": "package a",
			"/project/ws.txt":   "   \n\t",
		})

		result, err := RunBulk(ctx, fsys, BulkRequest{
			Root:    "/project",
			Outputs: Outputs{Prompt: "prompt.txt", Tree: "tree.txt"},
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "My codebase includes\n'pkg/a.go' with 'package a'\n.", result.Prompt)
		assert.Equal(t, 2, result.Files)

		tree, err := afero.ReadFile(fsys, "tree.txt")
		require.NoError(t, err)
		assert.Equal(t, "└── pkg/\n    └── a.go\n", string(tree))
	})

	t.Run("Should skip unreadable content and keep going", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/project/bin.dat":  string([]byte{0xff, 0xfe, 0x00, 0x01}),
			"/project/text.txt": "ok",
		})

		result, err := RunBulk(ctx, fsys, BulkRequest{Root: "/project", Outputs: Outputs{Prompt: "p.txt"}}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "My codebase includes\n'text.txt' with 'ok'\n.", result.Prompt)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "/project/bin.dat", result.Failures[0].Path)
		assert.ErrorIs(t, result.Failures[0], ErrNotText)
	})

	t.Run("Should render symlinked files under the link name", func(t *testing.T) {
		dir := symlinkProject(t)
		out := filepath.Join(t.TempDir(), "prompt.txt")

		result, err := RunBulk(ctx, afero.NewOsFs(), BulkRequest{
			Root:     dir,
			Patterns: ignore.NewSet("sub"),
			Outputs:  Outputs{Prompt: out},
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "My codebase includes\n'a.txt' with 'it\\'s',\n'link.txt' with 'it\\'s'\n.", result.Prompt)
		assert.Empty(t, result.Failures)
	})

	t.Run("Should return read failures without logging warnings", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/project/bin.dat": string([]byte{0xff, 0xfe})})
		core, logs := observer.New(zapcore.WarnLevel)

		result, err := RunBulk(ctx, fsys, BulkRequest{Root: "/project", Outputs: Outputs{Prompt: "p.txt"}}, zap.New(core))
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Zero(t, logs.Len())
	})

	t.Run("Should fail before writing anything for an invalid root", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		_, err := RunBulk(ctx, fsys, BulkRequest{Root: "/nope", Outputs: Outputs{Prompt: "p.txt"}}, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidRoot)

		exists, err := afero.Exists(fsys, "p.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/project/a.txt": "a"})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := RunBulk(cancelled, fsys, BulkRequest{Root: "/project", Outputs: Outputs{Prompt: "p.txt"}}, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunIndividual(t *testing.T) {
	ctx := context.Background()

	t.Run("Should identify files by the path as supplied", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/abs/x.go": "x := 'y'",
			"rel/y.go":  "y",
		})

		result, err := RunIndividual(ctx, fsys, IndividualRequest{
			Paths:   []string{"rel/y.go", "/abs/x.go"},
			Outputs: Outputs{Prompt: "prompt.txt"},
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "My codebase includes\n'rel/y.go' with 'y',\n'/abs/x.go' with 'x := \\'y\\''\n.", result.Prompt)
	})

	t.Run("Should write the no-files message when nothing is selected", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		result, err := RunIndividual(ctx, fsys, IndividualRequest{Outputs: Outputs{Prompt: "prompt.txt"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, NoFilesMessage, result.Prompt)

		written, err := afero.ReadFile(fsys, "prompt.txt")
		require.NoError(t, err)
		assert.Equal(t, NoFilesMessage, string(written))
	})

	t.Run("Should report files that disappeared", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"a.txt": "a"})

		result, err := RunIndividual(ctx, fsys, IndividualRequest{
			Paths:   []string{"gone.txt", "a.txt"},
			Outputs: Outputs{Prompt: "prompt.txt"},
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, result.Included)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "gone.txt", result.Failures[0].Path)
	})
}

func TestDecodeText(t *testing.T) {
	text, err := decodeText([]byte("a\r\nb\rc\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", text)

	_, err = decodeText([]byte{0xc3, 0x28})
	assert.ErrorIs(t, err, ErrNotText)
}
