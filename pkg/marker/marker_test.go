// Test Type: Unit Test
// Description: Tests for marker parsing

package marker_test

import (
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncludes(t *testing.T) {
	t.Run("finds_all_in_order", func(t *testing.T) {
		text := "<head>\n<!-- include:js(list:files.txt) -->\n<!-- include:css(*.css) -->\n</head>"
		got := marker.ParseIncludes(text)
		require.Len(t, got, 2)

		assert.Equal(t, "js", got[0].Type)
		assert.Equal(t, "list:files.txt", got[0].Spec)
		assert.Equal(t, 2, got[0].Line)
		assert.Equal(t, got[0].Raw, text[got[0].Start:got[0].End])

		assert.Equal(t, "css", got[1].Type)
		assert.Equal(t, "*.css", got[1].Spec)
		assert.Equal(t, 3, got[1].Line)
	})

	t.Run("requires_whitespace_after_open", func(t *testing.T) {
		assert.Empty(t, marker.ParseIncludes("<!--include:js(a.js) -->"))
		assert.Empty(t, marker.ParseIncludes("<!-- include:js(a.js)-->"))
	})

	t.Run("type_must_be_lowercase", func(t *testing.T) {
		assert.Empty(t, marker.ParseIncludes("<!-- include:JS(a.js) -->"))
	})

	t.Run("spec_cannot_contain_paren", func(t *testing.T) {
		assert.Empty(t, marker.ParseIncludes("<!-- include:js(a(b).js) -->"))
		assert.Empty(t, marker.ParseIncludes("<!-- include:js() -->"))
	})

	t.Run("whitespace_may_span_lines", func(t *testing.T) {
		got := marker.ParseIncludes("<!--\n  include:js(a.js)\n-->")
		require.Len(t, got, 1)
		assert.Equal(t, "a.js", got[0].Spec)
	})

	t.Run("exclude_is_not_an_include", func(t *testing.T) {
		assert.Empty(t, marker.ParseIncludes("<!-- !include:js(a.js) -->"))
	})
}

func TestParseExcludes(t *testing.T) {
	t.Run("first_match_per_crlf_line", func(t *testing.T) {
		text := "<!-- !include:js(a.js) --> <!-- !include:js(b.js) -->\r\n<!-- !include:css(c.css) -->"
		got := marker.ParseExcludes(text, marker.LineEndingsCRLF)
		require.Len(t, got, 2)
		assert.Equal(t, "a.js", got[0].Spec)
		assert.Equal(t, "c.css", got[1].Spec)
		assert.Equal(t, got[1].Raw, text[got[1].Start:got[1].End])
		assert.Equal(t, marker.KindExclude, got[1].Kind)
	})

	t.Run("lf_document_is_one_line_by_default", func(t *testing.T) {
		text := "<!-- !include:js(a.js) -->\n<!-- !include:js(b.js) -->"
		got := marker.ParseExcludes(text, marker.LineEndingsCRLF)
		require.Len(t, got, 1)
		assert.Equal(t, "a.js", got[0].Spec)
	})

	t.Run("any_mode_splits_lf_and_cr", func(t *testing.T) {
		text := "<!-- !include:js(a.js) -->\n<!-- !include:js(b.js) -->\r<!-- !include:js(c.js) -->"
		got := marker.ParseExcludes(text, marker.LineEndingsAny)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a.js", "b.js", "c.js"}, []string{got[0].Spec, got[1].Spec, got[2].Spec})
		assert.Equal(t, 2, got[1].Line)
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, marker.ParseExcludes("plain\r\ntext", marker.LineEndingsCRLF))
	})
}

func TestMarker_String(t *testing.T) {
	inc := marker.ParseIncludes("<!-- include:js(*.js) -->")
	require.Len(t, inc, 1)
	assert.Equal(t, "include:js(*.js)", inc[0].String())

	exc := marker.ParseExcludes("<!-- !include:css(a.css) -->", marker.LineEndingsCRLF)
	require.Len(t, exc, 1)
	assert.Equal(t, "!include:css(a.css)", exc[0].String())
}

func TestParseLineEndings(t *testing.T) {
	tests := []struct {
		in      string
		want    marker.LineEndings
		wantErr bool
	}{
		{"", marker.LineEndingsCRLF, false},
		{"crlf", marker.LineEndingsCRLF, false},
		{"any", marker.LineEndingsAny, false},
		{"lf", marker.LineEndingsCRLF, true},
	}
	for _, tt := range tests {
		t.Run("mode_"+tt.in, func(t *testing.T) {
			got, err := marker.ParseLineEndings(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
