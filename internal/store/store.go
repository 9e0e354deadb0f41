package store

import (
	"context"
	"time"

	"github.com/qtje/comic/internal/model"
)

type Store interface {
	AuthorStore
	AliasStore
	TemplateStore
	ThemeStore
	ArcStore
	PageStore
	LinkStore
	ForumStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type AuthorStore interface {
	// CreateAuthor creates a new author account.
	CreateAuthor(ctx context.Context, author *model.Author) error
	// GetAuthor retrieves an author by ID.
	GetAuthor(ctx context.Context, id string) (*model.Author, error)
}

type AliasStore interface {
	// SaveAlias persists a new alias version (copy-on-write).
	SaveAlias(ctx context.Context, alias *model.Alias) error
	// GetLatestAlias retrieves the newest version of an alias by hk.
	GetLatestAlias(ctx context.Context, hk uint) (*model.Alias, error)
	// GetAliasAt retrieves the alias version current at the given instant.
	GetAliasAt(ctx context.Context, hk uint, at time.Time) (*model.Alias, error)
	// ListLatestAliases retrieves the latest version of every alias,
	// optionally restricted to one author account.
	ListLatestAliases(ctx context.Context, authorID string) ([]*model.Alias, error)
}

type TemplateStore interface {
	// SaveTemplate persists a new template version (copy-on-write).
	SaveTemplate(ctx context.Context, tpl *model.PageTemplate) error
	// GetLatestTemplate retrieves the newest version of a template by hk.
	GetLatestTemplate(ctx context.Context, hk uint) (*model.PageTemplate, error)
	// GetTemplateAt retrieves the template version current at the given instant.
	GetTemplateAt(ctx context.Context, hk uint, at time.Time) (*model.PageTemplate, error)
	// ListLatestTemplates retrieves the latest version of every template,
	// optionally restricted to one author account (via its aliases).
	ListLatestTemplates(ctx context.Context, authorID string) ([]*model.PageTemplate, error)
}

type ThemeStore interface {
	// SaveTheme persists a new theme version (copy-on-write).
	SaveTheme(ctx context.Context, theme *model.PageTheme) error
	// GetLatestTheme retrieves the newest version of a theme by hk.
	GetLatestTheme(ctx context.Context, hk uint) (*model.PageTheme, error)
	// GetThemeAt retrieves the theme version current at the given instant.
	GetThemeAt(ctx context.Context, hk uint, at time.Time) (*model.PageTheme, error)
	// ListLatestThemes retrieves the latest version of every theme,
	// optionally restricted to one author account (via its aliases).
	ListLatestThemes(ctx context.Context, authorID string) ([]*model.PageTheme, error)
}

type ArcStore interface {
	// SaveArc persists a new arc version (copy-on-write).
	SaveArc(ctx context.Context, arc *model.ComicArc) error
	// GetLatestArc retrieves the newest version of an arc by hk.
	GetLatestArc(ctx context.Context, hk uint) (*model.ComicArc, error)
	// GetArcAt retrieves the arc version current at the given instant.
	GetArcAt(ctx context.Context, hk uint, at time.Time) (*model.ComicArc, error)
	// ListLatestArcs retrieves the latest version of every arc, optionally
	// restricted to one author account (via its aliases).
	ListLatestArcs(ctx context.Context, authorID string) ([]*model.ComicArc, error)
}

type PageStore interface {
	// SavePage persists a new page version (copy-on-write). The page key
	// must already be assigned.
	SavePage(ctx context.Context, page *model.ComicPage) error
	// GetLatestPage retrieves the newest version of a page by page key.
	GetLatestPage(ctx context.Context, key string) (*model.ComicPage, error)
	// GetPageAt retrieves the page version current at the given instant.
	GetPageAt(ctx context.Context, key string, at time.Time) (*model.ComicPage, error)
	// ListLatestPages retrieves the latest version of every page, optionally
	// restricted to one author account (via its aliases).
	ListLatestPages(ctx context.Context, authorID string) ([]*model.ComicPage, error)
	// NextPageKey computes the key after the highest in use.
	NextPageKey(ctx context.Context) (string, error)
}

type LinkStore interface {
	// CreateLink persists a new link.
	CreateLink(ctx context.Context, link *model.ComicLink) error
	// GetLink retrieves a link by row id.
	GetLink(ctx context.Context, id uint) (*model.ComicLink, error)
	// SoftDeleteLink marks a link deleted as of the given instant. The row
	// is never removed.
	SoftDeleteLink(ctx context.Context, id uint, at time.Time) error
	// ListLinksFrom retrieves the outgoing links of a page that existed and
	// were not yet deleted at the given instant.
	ListLinksFrom(ctx context.Context, fromKey string, at time.Time) ([]*model.ComicLink, error)
	// ListActiveLinks retrieves the currently undeleted outgoing links of a
	// page, of one kind.
	ListActiveLinks(ctx context.Context, fromKey, kind string) ([]*model.ComicLink, error)
}

type ForumStore interface {
	// CreateForumPost persists a forum post.
	CreateForumPost(ctx context.Context, post *model.ForumPost) error
	// ListForumPosts retrieves the posts attached to a page version row.
	ListForumPosts(ctx context.Context, sourceRow uint) ([]*model.ForumPost, error)
}
