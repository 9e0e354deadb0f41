package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtje/comic/internal/model"
)

func TestExecute(t *testing.T) {
	out, err := Execute("t", "<h1>{{.Title}}</h1>", SamplePage())
	require.NoError(t, err)
	assert.Equal(t, "<h1>Sample Page</h1>", out)
}

func TestExecute_EscapesContent(t *testing.T) {
	page := SamplePage()
	page.Title = "<script>alert(1)</script>"

	out, err := Execute("t", "{{.Title}}", page)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestExecute_ParseError(t *testing.T) {
	_, err := Execute("t", "{{.Title", SamplePage())
	assert.Error(t, err)
}

func TestExecute_UnknownField(t *testing.T) {
	_, err := Execute("t", "{{.NoSuchField}}", SamplePage())
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	tpl := &model.PageTemplate{Template: "<main>{{.Title}} by {{.Owner.Name}}</main>"}
	theme := &model.PageTheme{
		Meta:   "dark",
		Header: "<header>{{.Arc.Name}}</header>",
		Footer: "<footer>{{.ThemeMeta}}</footer>",
	}

	out, err := Compose(tpl, theme, SamplePage())
	require.NoError(t, err)

	assert.Equal(t, "<main>Sample Page by Sample Author</main>", out.Body)
	assert.Equal(t, "<header>Sample Arc</header>", out.Slots[model.SlotHeader])
	assert.Equal(t, "<footer>dark</footer>", out.Slots[model.SlotFooter])
	assert.Equal(t, "dark", out.Meta)

	// empty slots are not rendered at all
	_, ok := out.Slots[model.SlotNav]
	assert.False(t, ok)
}

func TestCompose_SlotError(t *testing.T) {
	tpl := &model.PageTemplate{Template: "{{.Title}}"}
	theme := &model.PageTheme{Banner: "{{.Broken"}

	_, err := Compose(tpl, theme, SamplePage())
	assert.Error(t, err)
}

func TestSanitizeAlias(t *testing.T) {
	alias := &model.Alias{DisplayName: "Ash"}

	safe := SanitizeAlias(alias, false)
	assert.Equal(t, "Ash", safe.Name)
	assert.False(t, safe.Conflicted)

	safe = SanitizeAlias(alias, true)
	assert.Equal(t, ConflictMarker+"Ash", safe.Name)
	assert.True(t, safe.Conflicted)
}
