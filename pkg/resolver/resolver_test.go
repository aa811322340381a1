// Test Type: Unit Test
// Description: Tests for specifier expansion (globs and list manifests)

package resolver_test

import (
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/resolver"
	"github.com/MaxGeldner/gulp-include-source/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutil.TestEnvironment, *resolver.Resolver) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"src/a.js":         "",
		"src/b.js":         "",
		"src/app/c.js":     "",
		"src/main.css":     "",
		"files.txt":        "a.js\nb.js",
		"trailing.txt":     "a.js\nb.js\n",
		"untrimmed.txt":    "  a.js \n# not a comment\n\nb.js",
		"src/manifest.txt": "x.js",
	})
	return env, resolver.New(env.FS)
}

func TestResolve_Glob(t *testing.T) {
	env, r := setup(t)

	t.Run("bare_pattern", func(t *testing.T) {
		got, err := r.Resolve("*.js", env.Path("src"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "b.js"}, got)
	})

	t.Run("glob_prefix_is_stripped", func(t *testing.T) {
		got, err := r.Resolve("glob:*.js", env.Path("src"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "b.js"}, got)
	})

	t.Run("recursion_only_when_requested", func(t *testing.T) {
		got, err := r.Resolve("**/*.js", env.Path("src"))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.js", "b.js", "app/c.js"}, got)
	})

	t.Run("dot_slash_prefix_kept", func(t *testing.T) {
		got, err := r.Resolve("./*.js", env.Path("src"))
		require.NoError(t, err)
		assert.Equal(t, []string{"./a.js", "./b.js"}, got)

		got, err = r.Resolve("glob:./app/*.js", env.Path("src"))
		require.NoError(t, err)
		assert.Equal(t, []string{"./app/c.js"}, got)
	})

	t.Run("no_match_is_empty_not_error", func(t *testing.T) {
		got, err := r.Resolve("*.ts", env.Path("src"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("bad_pattern", func(t *testing.T) {
		_, err := r.Resolve("[a-", env.Path("src"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrBadPattern))
	})
}

func TestResolve_List(t *testing.T) {
	env, r := setup(t)

	t.Run("lines_in_order", func(t *testing.T) {
		got, err := r.Resolve("list:"+env.Path("files.txt"), "/unused")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "b.js"}, got)
	})

	t.Run("trailing_newline_yields_empty_entry", func(t *testing.T) {
		got, err := r.Resolve("list:"+env.Path("trailing.txt"), "/unused")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "b.js", ""}, got)
	})

	t.Run("no_trimming_or_comment_stripping", func(t *testing.T) {
		got, err := r.Resolve("list:"+env.Path("untrimmed.txt"), "/unused")
		require.NoError(t, err)
		assert.Equal(t, []string{"  a.js ", "# not a comment", "", "b.js"}, got)
	})

	t.Run("manifest_not_resolved_against_base_dir", func(t *testing.T) {
		_, err := r.Resolve("list:manifest.txt", env.Path("src"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	})

	t.Run("missing_manifest_propagates", func(t *testing.T) {
		_, err := r.Resolve("list:/nope/files.txt", env.Root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
		assert.Equal(t, "/nope/files.txt", errors.GetErrorDetails(err)["path"])
	})

	t.Run("directory_is_not_a_manifest", func(t *testing.T) {
		_, err := r.Resolve("list:"+env.Path("src"), env.Root)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})
}
