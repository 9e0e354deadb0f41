package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/queue"
	"github.com/qtje/comic/internal/store"
)

// PageInput carries a page edit form. PrevKey and Reciprocate drive the
// optional navigation wiring on creation: the new page gets a previous link
// to PrevKey, and with Reciprocate set the older page gets the matching
// next link back, subject to the guard on its side.
type PageInput struct {
	Title      string `json:"title"`
	ArcHK      uint   `json:"arc_hk"`
	TemplateHK uint   `json:"template_hk"`
	ThemeHK    uint   `json:"theme_hk"`
	OwnerHK    uint   `json:"owner_hk"`
	Image      string `json:"image"`
	AltText    string `json:"alt_text"`
	Transcript string `json:"transcript"`

	PrevKey     string `json:"prev_key,omitempty"`
	Reciprocate bool   `json:"reciprocate,omitempty"`
}

// NewPageService creates a new PageService. The queue is optional; without
// it save events are not announced.
func NewPageService(store store.Store, links *LinkService, q queue.PageQueue) *PageService {
	return &PageService{
		store: store,
		links: links,
		queue: q,
	}
}

// PageService owns page writes: key allocation, validation, copy-on-write
// saves and the navigation wiring around creation.
type PageService struct {
	store store.Store
	links *LinkService
	queue queue.PageQueue
}

// validateInput accumulates field errors; nothing is saved while any field
// is bad.
func (s *PageService) validateInput(ctx context.Context, in PageInput, accountID string) error {
	verr := NewValidationError()

	if in.Title == "" {
		verr.Add("title", "title is required")
	}

	owner, err := s.store.GetLatestAlias(ctx, in.OwnerHK)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		verr.Add("owner", "unknown alias")
	} else if err != nil {
		return err
	} else if owner.AuthorID != accountID {
		verr.Add("owner", "alias is not owned by the acting account")
	}

	if _, err := s.store.GetLatestArc(ctx, in.ArcHK); errors.Is(err, gorm.ErrRecordNotFound) {
		verr.Add("arc", "unknown arc")
	} else if err != nil {
		return err
	}

	if _, err := s.store.GetLatestTemplate(ctx, in.TemplateHK); errors.Is(err, gorm.ErrRecordNotFound) {
		verr.Add("template", "unknown template")
	} else if err != nil {
		return err
	}

	if _, err := s.store.GetLatestTheme(ctx, in.ThemeHK); errors.Is(err, gorm.ErrRecordNotFound) {
		verr.Add("theme", "unknown theme")
	} else if err != nil {
		return err
	}

	if in.PrevKey != "" {
		if _, err := model.CleanPageKey(in.PrevKey); err != nil {
			verr.Add("prev_key", "malformed page key")
		}
	}

	return verr.OrNil()
}

// CreatePage allocates the next page key, saves the first version and wires
// the optional previous/next links. The page save and the link saves are
// separate writes; a guard rejection on the link side leaves the page saved
// without the link.
func (s *PageService) CreatePage(ctx context.Context, in PageInput, accountID string) (*model.ComicPage, error) {
	if err := s.validateInput(ctx, in, accountID); err != nil {
		return nil, err
	}

	key, err := s.store.NextPageKey(ctx)
	if err != nil {
		return nil, err
	}

	page := &model.ComicPage{
		PageKey:    key,
		Title:      in.Title,
		ArcHK:      in.ArcHK,
		Image:      in.Image,
		AltText:    in.AltText,
		Transcript: in.Transcript,
		TemplateHK: in.TemplateHK,
		ThemeHK:    in.ThemeHK,
		OwnerHK:    in.OwnerHK,
	}

	if err := s.store.SavePage(ctx, page); err != nil {
		return nil, err
	}
	s.announce(ctx, page)

	if in.PrevKey != "" {
		_, err := s.links.CreateLink(ctx, key, in.PrevKey, model.LinkPrevious, in.OwnerHK, accountID, in.Reciprocate)
		if err != nil {
			return page, err
		}
	}

	return page, nil
}

// UpdatePage saves a new version of an existing page. The old version stays
// behind untouched.
func (s *PageService) UpdatePage(ctx context.Context, key string, in PageInput, accountID string) (*model.ComicPage, error) {
	key, err := model.CleanPageKey(key)
	if err != nil {
		return nil, err
	}

	page, err := s.store.GetLatestPage(ctx, key)
	if err != nil {
		return nil, orNotFound(err)
	}

	owner, err := s.store.GetLatestAlias(ctx, page.OwnerHK)
	if err != nil {
		return nil, orNotFound(err)
	}
	if owner.AuthorID != accountID {
		return nil, ErrPermissionDenied
	}

	if err := s.validateInput(ctx, in, accountID); err != nil {
		return nil, err
	}

	page.Title = in.Title
	page.ArcHK = in.ArcHK
	page.Image = in.Image
	page.AltText = in.AltText
	page.Transcript = in.Transcript
	page.TemplateHK = in.TemplateHK
	page.ThemeHK = in.ThemeHK
	page.OwnerHK = in.OwnerHK

	if err := s.store.SavePage(ctx, page); err != nil {
		return nil, err
	}
	s.announce(ctx, page)

	return page, nil
}

// GetLatestPage returns the newest version of a page.
func (s *PageService) GetLatestPage(ctx context.Context, key string) (*model.ComicPage, error) {
	key, err := model.CleanPageKey(key)
	if err != nil {
		return nil, err
	}

	page, err := s.store.GetLatestPage(ctx, key)
	if err != nil {
		return nil, orNotFound(err)
	}

	return page, nil
}

// ListPages returns the latest version of every page, optionally restricted
// to one account.
func (s *PageService) ListPages(ctx context.Context, authorID string) ([]*model.ComicPage, error) {
	return s.store.ListLatestPages(ctx, authorID)
}

func (s *PageService) announce(ctx context.Context, page *model.ComicPage) {
	if s.queue == nil {
		return
	}
	if err := s.queue.PublishSave(ctx, page); err != nil {
		logrus.Errorf("error publishing page save event: %v", err)
	}
}
