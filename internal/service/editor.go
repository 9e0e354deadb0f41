package service

import (
	"context"
	"fmt"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/render"
	"github.com/qtje/comic/internal/store"
)

func NewEditorService(store store.Store, aliases *AliasService) *EditorService {
	return &EditorService{
		store:   store,
		aliases: aliases,
	}
}

// EditorService owns template, theme and arc writes. Template and theme
// bodies are executed against a sample page before a new version is
// accepted, so a broken template is a save-time validation error, not a
// surprise at view time.
type EditorService struct {
	store   store.Store
	aliases *AliasService
}

func (s *EditorService) checkOwner(ctx context.Context, verr *ValidationError, ownerHK uint, accountID string) {
	_, err := s.aliases.RequireOwned(ctx, ownerHK, accountID)
	switch err {
	case nil:
	case ErrNotFound:
		verr.Add("owner", "unknown alias")
	case ErrPermissionDenied:
		verr.Add("owner", "alias is not owned by the acting account")
	default:
		verr.Add("owner", err.Error())
	}
}

// SaveTemplate persists a new template version after compile-checking the
// body. An existing template may only be edited by its owning account.
func (s *EditorService) SaveTemplate(ctx context.Context, tpl *model.PageTemplate, accountID string) error {
	verr := NewValidationError()

	if tpl.Name == "" {
		verr.Add("name", "name is required")
	}
	s.checkOwner(ctx, verr, tpl.OwnerHK, accountID)

	if _, err := render.Execute("template", tpl.Template, render.SamplePage()); err != nil {
		verr.Add("template", err.Error())
	}

	if tpl.HK != 0 {
		current, err := s.store.GetLatestTemplate(ctx, tpl.HK)
		if err != nil {
			return orNotFound(err)
		}
		if _, err := s.aliases.RequireOwned(ctx, current.OwnerHK, accountID); err != nil {
			return err
		}
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	return s.store.SaveTemplate(ctx, tpl)
}

// SaveTheme persists a new theme version after compile-checking every
// populated slot.
func (s *EditorService) SaveTheme(ctx context.Context, theme *model.PageTheme, accountID string) error {
	verr := NewValidationError()

	if theme.Name == "" {
		verr.Add("name", "name is required")
	}
	s.checkOwner(ctx, verr, theme.OwnerHK, accountID)

	sample := render.SamplePage()
	for slot, text := range theme.Slots() {
		if _, err := render.Execute(slot, text, sample); err != nil {
			verr.Add(slot, err.Error())
		}
	}

	if theme.HK != 0 {
		current, err := s.store.GetLatestTheme(ctx, theme.HK)
		if err != nil {
			return orNotFound(err)
		}
		if _, err := s.aliases.RequireOwned(ctx, current.OwnerHK, accountID); err != nil {
			return err
		}
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	return s.store.SaveTheme(ctx, theme)
}

// SaveArc persists a new arc version. The (slug, display name) pair must be
// unique among the latest versions of all other arcs.
func (s *EditorService) SaveArc(ctx context.Context, arc *model.ComicArc, accountID string) error {
	verr := NewValidationError()

	if arc.SlugName == "" {
		verr.Add("slug_name", "slug is required")
	}
	if arc.DisplayName == "" {
		verr.Add("display_name", "display name is required")
	}
	s.checkOwner(ctx, verr, arc.OwnerHK, accountID)

	if arc.HK != 0 {
		current, err := s.store.GetLatestArc(ctx, arc.HK)
		if err != nil {
			return orNotFound(err)
		}
		if _, err := s.aliases.RequireOwned(ctx, current.OwnerHK, accountID); err != nil {
			return err
		}
	}

	others, err := s.store.ListLatestArcs(ctx, "")
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.HK == arc.HK {
			continue
		}
		if other.SlugName == arc.SlugName && other.DisplayName == arc.DisplayName {
			verr.Add("slug_name", fmt.Sprintf("arc %q (%s) already exists", arc.DisplayName, arc.SlugName))
			break
		}
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	return s.store.SaveArc(ctx, arc)
}

// ListTemplates returns the latest version of every template, optionally
// restricted to one account.
func (s *EditorService) ListTemplates(ctx context.Context, authorID string) ([]*model.PageTemplate, error) {
	return s.store.ListLatestTemplates(ctx, authorID)
}

func (s *EditorService) ListThemes(ctx context.Context, authorID string) ([]*model.PageTheme, error) {
	return s.store.ListLatestThemes(ctx, authorID)
}

func (s *EditorService) ListArcs(ctx context.Context, authorID string) ([]*model.ComicArc, error) {
	return s.store.ListLatestArcs(ctx, authorID)
}
