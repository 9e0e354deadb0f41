package service

import (
	"context"
	"sort"
	"time"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/render"
	"github.com/qtje/comic/internal/store"
)

// SnapshotCache stores sanitized page views keyed by (page key, instant).
type SnapshotCache interface {
	Get(ctx context.Context, pageKey string, at time.Time) (*render.SafePage, bool)
	Put(ctx context.Context, pageKey string, at time.Time, page *render.SafePage)
}

// Snapshot is a page and everything it references, all resolved at one
// instant. The page stores hk references; the versions here are the ones
// current at At, not the ones current when the page was saved.
type Snapshot struct {
	Page     *model.ComicPage
	Arc      *model.ComicArc
	Owner    *model.Alias
	Template *model.PageTemplate
	Theme    *model.PageTheme
	Next     []*ResolvedLink
	Previous []*ResolvedLink
	First    []*ResolvedLink
	At       time.Time
}

// ResolvedLink pairs a link row with its owner alias as of the snapshot
// instant.
type ResolvedLink struct {
	Link  *model.ComicLink
	Owner *model.Alias
}

// NewResolver creates a new Resolver. The snapshot cache is optional and is
// only consulted for pinned (explicit-timestamp) reads of past instants.
func NewResolver(store store.Store, aliases *AliasService, snapshots SnapshotCache) *Resolver {
	return &Resolver{
		store:     store,
		aliases:   aliases,
		snapshots: snapshots,
	}
}

// Resolver reconstructs consistent page views at arbitrary instants.
type Resolver struct {
	store     store.Store
	aliases   *AliasService
	snapshots SnapshotCache
}

// Resolve returns the snapshot of a page as of the given instant. Every
// sub-entity is resolved against the same instant; threading a different
// time into any of them would produce an inconsistent view.
func (r *Resolver) Resolve(ctx context.Context, key string, at time.Time) (*Snapshot, error) {
	key, err := model.CleanPageKey(key)
	if err != nil {
		return nil, err
	}

	page, err := r.store.GetPageAt(ctx, key, at)
	if err != nil {
		return nil, orNotFound(err)
	}

	arc, err := r.store.GetArcAt(ctx, page.ArcHK, at)
	if err != nil {
		return nil, orNotFound(err)
	}

	owner, err := r.store.GetAliasAt(ctx, page.OwnerHK, at)
	if err != nil {
		return nil, orNotFound(err)
	}

	tpl, err := r.store.GetTemplateAt(ctx, page.TemplateHK, at)
	if err != nil {
		return nil, orNotFound(err)
	}

	theme, err := r.store.GetThemeAt(ctx, page.ThemeHK, at)
	if err != nil {
		return nil, orNotFound(err)
	}

	links, err := r.store.ListLinksFrom(ctx, key, at)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Page:     page,
		Arc:      arc,
		Owner:    owner,
		Template: tpl,
		Theme:    theme,
		At:       at,
	}

	for _, link := range links {
		linkOwner, err := r.store.GetAliasAt(ctx, link.OwnerHK, at)
		if err != nil {
			return nil, orNotFound(err)
		}

		resolved := &ResolvedLink{Link: link, Owner: linkOwner}
		switch link.Kind {
		case model.LinkNext:
			snap.Next = append(snap.Next, resolved)
		case model.LinkPrevious:
			snap.Previous = append(snap.Previous, resolved)
		case model.LinkFirst:
			snap.First = append(snap.First, resolved)
		}
	}

	sortLinks(snap.Next, owner.AuthorID, false)
	sortLinks(snap.First, owner.AuthorID, false)
	sortLinks(snap.Previous, owner.AuthorID, true)

	return snap, nil
}

// sortLinks orders links by (not-owned-by-page-author, created_at), row id
// as the final tiebreak. Next and first links ascend, so the page author's
// own links come first, oldest first; previous links use the same key
// reversed.
func sortLinks(links []*ResolvedLink, pageAuthorID string, desc bool) {
	less := func(i, j int) bool {
		a, b := links[i], links[j]

		aForeign := a.Owner.AuthorID != pageAuthorID
		bForeign := b.Owner.AuthorID != pageAuthorID
		if aForeign != bForeign {
			return bForeign
		}

		if !a.Link.CreatedAt.Equal(b.Link.CreatedAt) {
			return a.Link.CreatedAt.Before(b.Link.CreatedAt)
		}

		return a.Link.ID < b.Link.ID
	}

	if desc {
		sort.Slice(links, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.Slice(links, less)
}

// Sanitize projects a snapshot down to its display-safe form, replacing
// every owner reference with a SafeAlias carrying the conflict marker where
// the display name collides.
func (r *Resolver) Sanitize(ctx context.Context, snap *Snapshot) (*render.SafePage, error) {
	conflicted, err := r.aliases.ConflictedNames(ctx)
	if err != nil {
		return nil, err
	}

	safeAlias := func(alias *model.Alias) render.SafeAlias {
		return render.SanitizeAlias(alias, conflicted[alias.DisplayName])
	}

	arcOwner, err := r.store.GetAliasAt(ctx, snap.Arc.OwnerHK, snap.At)
	if err != nil {
		return nil, orNotFound(err)
	}

	page := &render.SafePage{
		Key:        snap.Page.PageKey,
		Title:      snap.Page.Title,
		Image:      snap.Page.Image,
		AltText:    snap.Page.AltText,
		Transcript: snap.Page.Transcript,
		Arc: render.SafeArc{
			Slug:  snap.Arc.SlugName,
			Name:  snap.Arc.DisplayName,
			Owner: safeAlias(arcOwner),
		},
		Owner:     safeAlias(snap.Owner),
		ThemeMeta: snap.Theme.Meta,
		At:        snap.At,
	}

	safeLinks := func(links []*ResolvedLink) []render.SafeLink {
		out := make([]render.SafeLink, 0, len(links))
		for _, l := range links {
			out = append(out, render.SafeLink{
				Kind:      l.Link.Kind,
				ToKey:     l.Link.ToKey,
				Owner:     safeAlias(l.Owner),
				CreatedAt: l.Link.CreatedAt,
			})
		}
		return out
	}

	page.Next = safeLinks(snap.Next)
	page.Previous = safeLinks(snap.Previous)
	page.First = safeLinks(snap.First)

	return page, nil
}

// ResolveView resolves and sanitizes in one step. Pinned reads (explicit
// timestamp from the caller) go through the snapshot cache; "now" reads
// never do, since their answer changes with every save. A pin in the
// future is just as mutable as "now", so only past instants are cached.
func (r *Resolver) ResolveView(ctx context.Context, key string, at time.Time, pinned bool) (*render.SafePage, error) {
	cleaned, err := model.CleanPageKey(key)
	if err != nil {
		return nil, err
	}

	cacheable := pinned && r.snapshots != nil && at.Before(time.Now().UTC())

	if cacheable {
		if page, ok := r.snapshots.Get(ctx, cleaned, at); ok {
			return page, nil
		}
	}

	snap, err := r.Resolve(ctx, cleaned, at)
	if err != nil {
		return nil, err
	}

	page, err := r.Sanitize(ctx, snap)
	if err != nil {
		return nil, err
	}

	if cacheable {
		r.snapshots.Put(ctx, cleaned, at, page)
	}

	return page, nil
}

// Render resolves a page and executes its template and theme against the
// sanitized projection.
func (r *Resolver) Render(ctx context.Context, key string, at time.Time) (*render.Rendered, error) {
	snap, err := r.Resolve(ctx, key, at)
	if err != nil {
		return nil, err
	}

	page, err := r.Sanitize(ctx, snap)
	if err != nil {
		return nil, err
	}

	return render.Compose(snap.Template, snap.Theme, *page)
}
