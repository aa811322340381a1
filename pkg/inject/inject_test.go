// Test Type: Integration Test
// Description: Tests for a complete batch over an in-memory project

package inject_test

import (
	"path/filepath"
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/config"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/inject"
	"github.com/MaxGeldner/gulp-include-source/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(env *testutil.TestEnvironment) *config.Config {
	return &config.Config{
		LineEndings: "crlf",
		Region: config.Region{
			InstructionsOpen:  "<gulp-include-instructions>",
			InstructionsClose: "</gulp-include-instructions>",
			StatementsOpen:    "<gulp-include>",
			StatementsClose:   "</gulp-include>",
		},
		Output: config.Output{Dir: env.Path("dist")},
	}
}

func newSite(t *testing.T) *testutil.TestEnvironment {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"src/index.html":       "<head><!-- include:js(js/*.js) --></head>",
		"src/pages/about.html": "<head><!-- include:js(js/*.js) --><!-- include:css(css/*.css) --></head>",
		"src/js/app.js":        "",
		"src/js/util.js":       "",
		"src/css/site.css":     "",
	})
	return env
}

func TestRun_WritesOutDirWithSharedRegistry(t *testing.T) {
	env := newSite(t)
	cfg := baseConfig(env)
	cfg.Cwd = env.Path("src")
	cfg.ScriptExt = "min.js"

	result, err := inject.Run(inject.Options{
		Config: cfg,
		Inputs: []string{env.Path("src", "*.html"), env.Path("src", "**", "about.html")},
		FS:     env.FS,
	})
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.Equal(t, 2, result.Processed)
	assert.ElementsMatch(t, []string{
		env.Path("dist", "index.html"),
		env.Path("dist", "pages", "about.html"),
	}, result.Written)

	assert.Equal(t,
		"<head><script src=\"js/app.min.js\"></script>\n<script src=\"js/util.min.js\"></script></head>",
		env.ReadFile("dist/index.html"))
	// scripts already emitted for index.html are not repeated
	assert.Equal(t,
		"<head><link rel=\"stylesheet\" href=\"css/site.css\"></head>",
		env.ReadFile("dist/pages/about.html"))

	// inputs are untouched
	assert.Equal(t, "<head><!-- include:js(js/*.js) --></head>", env.ReadFile("src/index.html"))
}

func TestRun_InPlace(t *testing.T) {
	env := newSite(t)
	cfg := baseConfig(env)
	cfg.Output = config.Output{InPlace: true}

	result, err := inject.Run(inject.Options{
		Config: cfg,
		Inputs: []string{env.Path("src", "index.html")},
		FS:     env.FS,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{env.Path("src", "index.html")}, result.Written)
	assert.Contains(t, env.ReadFile("src/index.html"), "<script src=\"js/app.js\"></script>")
}

func TestRun_PerFileErrorsDoNotStopTheBatch(t *testing.T) {
	env := newSite(t)
	env.WriteFile("src/broken.html", "<!-- include:js(list:/missing.txt) -->")
	cfg := baseConfig(env)

	result, err := inject.Run(inject.Options{
		Config: cfg,
		Inputs: []string{env.Path("src", "broken.html"), env.Path("src", "index.html")},
		FS:     env.FS,
	})
	require.NoError(t, err)
	require.True(t, result.Failed())
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Errors[0], errors.ErrFileNotFound))

	// the failed file is still written, unmodified
	assert.Equal(t, "<!-- include:js(list:/missing.txt) -->", env.ReadFile("dist/broken.html"))
	assert.Contains(t, env.ReadFile("dist/index.html"), "app.js")
}

func TestRun_ExtraTypesAndRegion(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"site/page.html": "<gulp-include-instructions><!-- include:mjs(*.mjs) --></gulp-include-instructions>\n" +
			"<body><gulp-include></gulp-include></body>",
		"site/main.mjs": "",
	})
	cfg := baseConfig(env)
	cfg.Region.Enabled = true
	cfg.Types = map[string]string{"mjs": `<script type="module" src="%"></script>`}

	_, err := inject.Run(inject.Options{
		Config: cfg,
		Inputs: []string{env.Path("site", "*.html")},
		FS:     env.FS,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"<gulp-include-instructions><!-- include:mjs(*.mjs) --></gulp-include-instructions>\n"+
			"<body><gulp-include><script type=\"module\" src=\"main.mjs\"></script></gulp-include></body>",
		env.ReadFile("dist/page.html"))
}

func TestRun_NoInputs(t *testing.T) {
	env := newSite(t)

	_, err := inject.Run(inject.Options{
		Config: baseConfig(env),
		Inputs: []string{env.Path("src", "*.php")},
		FS:     env.FS,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCollect(t *testing.T) {
	env := newSite(t)

	files, err := inject.Collect(env.FS, []string{
		env.Path("src", "*.html"),
		env.Path("src", "**", "*.html"),
		env.Path("src", "js"),
	})
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, env.Path("src", "index.html"), files[0].Path)
	assert.Equal(t, "index.html", files[0].Relative())
	assert.Equal(t, filepath.Join("pages", "about.html"), files[1].Relative())
	assert.Nil(t, files[2].Contents, "directories carry no content")

	_, err = inject.Collect(env.FS, []string{"[a-"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrBadPattern))
}
