package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qtje/comic/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// saveVersion is the copy-on-write save shared by every historied entity
// except pages. A row with a storage identity is being "updated": its
// identity is cleared and it is re-inserted as a fresh version carrying the
// same hk. A first save with no hk gets its hk backfilled from its own new
// storage identity; that backfill is the single in-place write in the whole
// discipline, keyed by identity so it cannot recurse.
func saveVersion[T any, P interface {
	*T
	model.Versioned
}](tx *gorm.DB, row P) error {
	if row.StorageID() != 0 {
		row.SetStorageID(0)
	}
	row.Stamp(time.Now().UTC())

	if err := tx.Create(row).Error; err != nil {
		return err
	}

	if row.HistoryKey() == 0 {
		row.SetHistoryKey(row.StorageID())
		return tx.Model(row).UpdateColumn("hk", row.StorageID()).Error
	}

	return nil
}

// latestVersion selects the newest version row sharing an hk. Ties on
// created_at are broken by storage identity, higher wins.
func latestVersion[T any](tx *gorm.DB, hk uint) (*T, error) {
	var row T
	err := tx.Where("hk = ?", hk).Order("created_at DESC, row_id DESC").First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// versionAt selects the version row current at the given instant: maximal
// created_at not exceeding it.
func versionAt[T any](tx *gorm.DB, hk uint, at time.Time) (*T, error) {
	var row T
	err := tx.Where("hk = ? AND created_at <= ?", hk, at).
		Order("created_at DESC, row_id DESC").First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// allLatest returns exactly one row per distinct hk, the newest. Rows are
// fetched ordered by (hk desc, created_at desc, row id desc) and the first
// row seen per hk is kept, which equals latest-by-created_at under that
// ordering. The result follows hk descending.
func allLatest[T interface{ HistoryKey() uint }](tx *gorm.DB) ([]*T, error) {
	var rows []*T
	err := tx.Order("hk DESC, created_at DESC, row_id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	latest := make([]*T, 0, len(rows))
	seen := false
	var last uint
	for _, row := range rows {
		hk := (*row).HistoryKey()
		if seen && hk == last {
			continue
		}
		latest = append(latest, row)
		seen = true
		last = hk
	}

	return latest, nil
}

// ownedScope restricts rows to those owned, transitively, by one author
// account: the owner alias hk must belong to one of the author's aliases.
func (g *GormStore) ownedScope(ctx context.Context, tx *gorm.DB, authorID string) *gorm.DB {
	if authorID == "" {
		return tx
	}

	aliasHKs := g.db.WithContext(ctx).Model(&model.Alias{}).
		Distinct("hk").Where("author_id = ?", authorID)

	return tx.Where("owner_hk IN (?)", aliasHKs)
}

func (g *GormStore) CreateAuthor(ctx context.Context, author *model.Author) error {
	return g.db.WithContext(ctx).Create(author).Error
}

func (g *GormStore) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	var author model.Author
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (g *GormStore) SaveAlias(ctx context.Context, alias *model.Alias) error {
	return saveVersion[model.Alias](g.db.WithContext(ctx), alias)
}

func (g *GormStore) GetLatestAlias(ctx context.Context, hk uint) (*model.Alias, error) {
	return latestVersion[model.Alias](g.db.WithContext(ctx), hk)
}

func (g *GormStore) GetAliasAt(ctx context.Context, hk uint, at time.Time) (*model.Alias, error) {
	return versionAt[model.Alias](g.db.WithContext(ctx), hk, at)
}

func (g *GormStore) ListLatestAliases(ctx context.Context, authorID string) ([]*model.Alias, error) {
	tx := g.db.WithContext(ctx)
	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}
	return allLatest[model.Alias](tx)
}

func (g *GormStore) SaveTemplate(ctx context.Context, tpl *model.PageTemplate) error {
	return saveVersion[model.PageTemplate](g.db.WithContext(ctx), tpl)
}

func (g *GormStore) GetLatestTemplate(ctx context.Context, hk uint) (*model.PageTemplate, error) {
	return latestVersion[model.PageTemplate](g.db.WithContext(ctx), hk)
}

func (g *GormStore) GetTemplateAt(ctx context.Context, hk uint, at time.Time) (*model.PageTemplate, error) {
	return versionAt[model.PageTemplate](g.db.WithContext(ctx), hk, at)
}

func (g *GormStore) ListLatestTemplates(ctx context.Context, authorID string) ([]*model.PageTemplate, error) {
	return allLatest[model.PageTemplate](g.ownedScope(ctx, g.db.WithContext(ctx), authorID))
}

func (g *GormStore) SaveTheme(ctx context.Context, theme *model.PageTheme) error {
	return saveVersion[model.PageTheme](g.db.WithContext(ctx), theme)
}

func (g *GormStore) GetLatestTheme(ctx context.Context, hk uint) (*model.PageTheme, error) {
	return latestVersion[model.PageTheme](g.db.WithContext(ctx), hk)
}

func (g *GormStore) GetThemeAt(ctx context.Context, hk uint, at time.Time) (*model.PageTheme, error) {
	return versionAt[model.PageTheme](g.db.WithContext(ctx), hk, at)
}

func (g *GormStore) ListLatestThemes(ctx context.Context, authorID string) ([]*model.PageTheme, error) {
	return allLatest[model.PageTheme](g.ownedScope(ctx, g.db.WithContext(ctx), authorID))
}

func (g *GormStore) SaveArc(ctx context.Context, arc *model.ComicArc) error {
	return saveVersion[model.ComicArc](g.db.WithContext(ctx), arc)
}

func (g *GormStore) GetLatestArc(ctx context.Context, hk uint) (*model.ComicArc, error) {
	return latestVersion[model.ComicArc](g.db.WithContext(ctx), hk)
}

func (g *GormStore) GetArcAt(ctx context.Context, hk uint, at time.Time) (*model.ComicArc, error) {
	return versionAt[model.ComicArc](g.db.WithContext(ctx), hk, at)
}

func (g *GormStore) ListLatestArcs(ctx context.Context, authorID string) ([]*model.ComicArc, error) {
	return allLatest[model.ComicArc](g.ownedScope(ctx, g.db.WithContext(ctx), authorID))
}

// SavePage is the page flavor of the copy-on-write save. Pages carry their
// hk (the page key) from the start, so there is no backfill step.
func (g *GormStore) SavePage(ctx context.Context, page *model.ComicPage) error {
	if page.PageKey == "" {
		return model.ErrMalformedPageKey
	}

	if page.RowID != 0 {
		page.RowID = 0
	}
	page.CreatedAt = time.Now().UTC()

	return g.db.WithContext(ctx).Create(page).Error
}

func (g *GormStore) GetLatestPage(ctx context.Context, key string) (*model.ComicPage, error) {
	var page model.ComicPage
	err := g.db.WithContext(ctx).Where("page_key = ?", key).
		Order("created_at DESC, row_id DESC").First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *GormStore) GetPageAt(ctx context.Context, key string, at time.Time) (*model.ComicPage, error) {
	var page model.ComicPage
	err := g.db.WithContext(ctx).Where("page_key = ? AND created_at <= ?", key, at).
		Order("created_at DESC, row_id DESC").First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *GormStore) ListLatestPages(ctx context.Context, authorID string) ([]*model.ComicPage, error) {
	tx := g.ownedScope(ctx, g.db.WithContext(ctx), authorID)

	var rows []*model.ComicPage
	err := tx.Order("page_key DESC, created_at DESC, row_id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	latest := make([]*model.ComicPage, 0, len(rows))
	last := ""
	for _, row := range rows {
		if row.PageKey == last {
			continue
		}
		latest = append(latest, row)
		last = row.PageKey
	}

	return latest, nil
}

// NextPageKey computes max(existing keys) + 1. Keys are fixed-width
// lowercase hex, so the lexicographic maximum is the numeric maximum.
func (g *GormStore) NextPageKey(ctx context.Context) (string, error) {
	var page model.ComicPage
	err := g.db.WithContext(ctx).Order("page_key DESC").First(&page).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.NextPageKey("")
		}
		return "", err
	}

	return model.NextPageKey(page.PageKey)
}

func (g *GormStore) CreateLink(ctx context.Context, link *model.ComicLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) GetLink(ctx context.Context, id uint) (*model.ComicLink, error) {
	var link model.ComicLink
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (g *GormStore) SoftDeleteLink(ctx context.Context, id uint, at time.Time) error {
	logrus.Infof("soft deleting link %d as of %s", id, at)
	return g.db.WithContext(ctx).Model(&model.ComicLink{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", at).Error
}

func (g *GormStore) ListLinksFrom(ctx context.Context, fromKey string, at time.Time) ([]*model.ComicLink, error) {
	var links []*model.ComicLink
	err := g.db.WithContext(ctx).
		Where("from_key = ? AND created_at <= ? AND (deleted_at IS NULL OR deleted_at > ?)", fromKey, at, at).
		Find(&links).Error
	return links, err
}

func (g *GormStore) ListActiveLinks(ctx context.Context, fromKey, kind string) ([]*model.ComicLink, error) {
	var links []*model.ComicLink
	err := g.db.WithContext(ctx).
		Where("from_key = ? AND kind = ? AND deleted_at IS NULL", fromKey, kind).
		Find(&links).Error
	return links, err
}

func (g *GormStore) CreateForumPost(ctx context.Context, post *model.ForumPost) error {
	if post.Timestamp.IsZero() {
		post.Timestamp = time.Now().UTC()
	}
	return g.db.WithContext(ctx).Create(post).Error
}

func (g *GormStore) ListForumPosts(ctx context.Context, sourceRow uint) ([]*model.ForumPost, error) {
	var posts []*model.ForumPost
	err := g.db.WithContext(ctx).Where("source_row = ?", sourceRow).
		Order("timestamp ASC").Find(&posts).Error
	return posts, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
