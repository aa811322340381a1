// Test Type: Unit Test
// Description: Tests for the asset type table and template rendering

package assets_test

import (
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/assets"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := assets.Default()

	assert.Equal(t, []string{"css", "js"}, reg.Types())

	js, ok := reg.Lookup("js")
	require.True(t, ok)
	assert.Equal(t, `<script src="a.js"></script>`, js.Render("a.js"))

	css, ok := reg.Lookup("css")
	require.True(t, ok)
	assert.Equal(t, `<link rel="stylesheet" href="style/main.css">`, css.Render("style/main.css"))

	_, ok = reg.Lookup("ts")
	assert.False(t, ok)
}

func TestRegistry_Add(t *testing.T) {
	t.Run("adds_new_type", func(t *testing.T) {
		reg := assets.NewRegistry()
		require.NoError(t, reg.Add("img", `<img src="%">`))

		tmpl, ok := reg.Lookup("img")
		require.True(t, ok)
		assert.Equal(t, `<img src="logo.png">`, tmpl.Render("logo.png"))
	})

	t.Run("builtin_cannot_be_replaced", func(t *testing.T) {
		reg := assets.NewRegistry()
		err := reg.Add("js", `<script defer src="%"></script>`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("rejects_bad_type_name", func(t *testing.T) {
		reg := assets.NewRegistry()
		err := reg.Add("Img2", `<img src="%">`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("rejects_template_without_single_placeholder", func(t *testing.T) {
		reg := assets.NewRegistry()
		assert.Error(t, reg.Add("img", `<img>`))
		assert.Error(t, reg.Add("img", `<img src="%" alt="%">`))
	})

	t.Run("sealed_registry_rejects_additions", func(t *testing.T) {
		reg := assets.Default()
		assert.Error(t, reg.Add("img", `<img src="%">`))
	})
}

func TestFromMap(t *testing.T) {
	reg, err := assets.FromMap(map[string]string{"ico": `<link rel="icon" href="%">`})
	require.NoError(t, err)
	assert.Equal(t, []string{"css", "ico", "js"}, reg.Types())

	_, err = assets.FromMap(map[string]string{"ico": `no placeholder`})
	assert.Error(t, err)
}

func TestTemplate_RenderReplacesEveryPlaceholder(t *testing.T) {
	tmpl := assets.Template(`%|%`)
	assert.Equal(t, "a|a", tmpl.Render("a"))
}
