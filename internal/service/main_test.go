package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/store"
	"github.com/qtje/comic/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	m.Run()
}

// settle spaces successive versioned saves so created_at orders them.
func settle() {
	time.Sleep(5 * time.Millisecond)
}

// fixture is a fresh database with one account, its alias and a minimal
// arc/template/theme to hang pages on.
type fixture struct {
	store    *store.GormStore
	aliases  *AliasService
	links    *LinkService
	pages    *PageService
	editor   *EditorService
	resolver *Resolver

	author   *model.Author
	alias    *model.Alias
	arc      *model.ComicArc
	template *model.PageTemplate
	theme    *model.PageTheme
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tester.RemoveDBFile()
	tester.Setup()

	g := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()

	f := &fixture{store: g}
	f.aliases = NewAliasService(g, nil)
	f.links = NewLinkService(g)
	f.pages = NewPageService(g, f.links, nil)
	f.editor = NewEditorService(g, f.aliases)
	f.resolver = NewResolver(g, f.aliases, nil)

	f.author = f.addAuthor(t, "alice")
	f.alias = f.addAlias(t, "Alice", f.author.ID)

	f.arc = &model.ComicArc{SlugName: "main", DisplayName: "Main", OwnerHK: f.alias.HK}
	require.NoError(t, g.SaveArc(ctx, f.arc))

	f.template = &model.PageTemplate{
		Name:     "default",
		Template: "<h1>{{.Title}}</h1>",
		OwnerHK:  f.alias.HK,
	}
	require.NoError(t, g.SaveTemplate(ctx, f.template))

	f.theme = &model.PageTheme{
		Name:    "plain",
		Header:  "<p>{{.Arc.Name}}</p>",
		OwnerHK: f.alias.HK,
	}
	require.NoError(t, g.SaveTheme(ctx, f.theme))

	return f
}

func (f *fixture) addAuthor(t *testing.T, name string) *model.Author {
	t.Helper()
	author := &model.Author{ID: uuid.New().String(), Name: name}
	require.NoError(t, f.store.CreateAuthor(context.TODO(), author))
	return author
}

func (f *fixture) addAlias(t *testing.T, name, authorID string) *model.Alias {
	t.Helper()
	alias := &model.Alias{DisplayName: name, AuthorID: authorID}
	require.NoError(t, f.store.SaveAlias(context.TODO(), alias))
	return alias
}

func (f *fixture) input() PageInput {
	return PageInput{
		Title:      "a page",
		ArcHK:      f.arc.HK,
		TemplateHK: f.template.HK,
		ThemeHK:    f.theme.HK,
		OwnerHK:    f.alias.HK,
	}
}

func (f *fixture) addPage(t *testing.T, title string) *model.ComicPage {
	t.Helper()
	in := f.input()
	in.Title = title
	page, err := f.pages.CreatePage(context.TODO(), in, f.author.ID)
	require.NoError(t, err)
	return page
}
