package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/store"
)

// Outgoing next/previous links from one page are capped twice over: the
// acting side's own bucket and the total across all owners. Both caps must
// hold for a new link to be allowed. The numbers are inherited behavior,
// not a tuned policy.
const (
	bucketLinkLimit = 2
	totalLinkLimit  = 3
)

func NewLinkService(store store.Store) *LinkService {
	return &LinkService{store: store}
}

// LinkService guards and persists navigation links.
type LinkService struct {
	store store.Store
}

// CanLink reports whether acting may add one more outgoing link of the
// given kind from the page. Only next and previous links are capped.
//
// The bucket rule: the page author's own links and outsiders' links are
// counted separately. The page author is checked against their own bucket,
// everyone else against the count of links not owned by the page author.
func (s *LinkService) CanLink(ctx context.Context, page *model.ComicPage, kind string, acting *model.Alias) (bool, error) {
	if kind != model.LinkNext && kind != model.LinkPrevious {
		return true, nil
	}

	links, err := s.store.ListActiveLinks(ctx, page.PageKey, kind)
	if err != nil {
		return false, err
	}

	if len(links) >= totalLinkLimit {
		return false, nil
	}

	pageOwner, err := s.store.GetLatestAlias(ctx, page.OwnerHK)
	if err != nil {
		return false, orNotFound(err)
	}

	actingIsPageAuthor := acting.AuthorID == pageOwner.AuthorID

	bucket := 0
	for _, link := range links {
		linkOwner, err := s.store.GetLatestAlias(ctx, link.OwnerHK)
		if err != nil {
			return false, orNotFound(err)
		}

		ownedByPageAuthor := linkOwner.AuthorID == pageOwner.AuthorID
		if actingIsPageAuthor == ownedByPageAuthor {
			bucket++
		}
	}

	return bucket < bucketLinkLimit, nil
}

// CreateLink validates, guards and persists a new link, optionally creating
// the reciprocal link in the opposite direction. The cardinality guard is
// decided before ownership validation, so a full page reports the limit
// even when the rest of the request is bad. The two inserts are not one
// transaction: a reciprocal guard rejection leaves the primary link in
// place without its pair.
func (s *LinkService) CreateLink(ctx context.Context, fromKey, toKey, kind string, actingHK uint, accountID string, reciprocate bool) (*model.ComicLink, error) {
	fromKey, err := model.CleanPageKey(fromKey)
	if err != nil {
		return nil, err
	}
	toKey, err = model.CleanPageKey(toKey)
	if err != nil {
		return nil, err
	}

	if !model.ValidLinkKind(kind) {
		return nil, ErrInvalidLinkKind
	}

	acting, err := s.store.GetLatestAlias(ctx, actingHK)
	if err != nil {
		return nil, orNotFound(err)
	}

	fromPage, err := s.store.GetLatestPage(ctx, fromKey)
	if err != nil {
		return nil, orNotFound(err)
	}
	toPage, err := s.store.GetLatestPage(ctx, toKey)
	if err != nil {
		return nil, orNotFound(err)
	}

	if err := s.checkGuard(ctx, fromPage, kind, acting); err != nil {
		return nil, err
	}

	if acting.AuthorID != accountID {
		verr := NewValidationError()
		verr.Add("owner", "alias is not owned by the acting account")
		return nil, verr
	}

	link, err := s.insertLink(ctx, fromPage, toPage.PageKey, kind, acting)
	if err != nil {
		return nil, err
	}

	if reciprocate {
		inverse := model.InverseLinkKind(kind)
		if inverse == "" {
			return link, nil
		}

		if _, err := s.createGuarded(ctx, toPage, fromPage.PageKey, inverse, acting); err != nil {
			logrus.Errorf("reciprocal link %s -> %s rejected after primary save: %v", toKey, fromKey, err)
			return link, err
		}
	}

	return link, nil
}

func (s *LinkService) checkGuard(ctx context.Context, from *model.ComicPage, kind string, acting *model.Alias) error {
	ok, err := s.CanLink(ctx, from, kind, acting)
	if err != nil {
		return err
	}
	if !ok {
		verr := NewValidationError()
		verr.Add("links", "outgoing link limit reached for this page")
		return verr
	}
	return nil
}

func (s *LinkService) createGuarded(ctx context.Context, from *model.ComicPage, toKey, kind string, acting *model.Alias) (*model.ComicLink, error) {
	if err := s.checkGuard(ctx, from, kind, acting); err != nil {
		return nil, err
	}
	return s.insertLink(ctx, from, toKey, kind, acting)
}

func (s *LinkService) insertLink(ctx context.Context, from *model.ComicPage, toKey, kind string, acting *model.Alias) (*model.ComicLink, error) {
	link := &model.ComicLink{
		FromKey: from.PageKey,
		ToKey:   toKey,
		Kind:    kind,
		OwnerHK: acting.HK,
	}
	if err := s.store.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// RemoveLink soft-deletes a link. Only the link's owning account may remove
// it; the row itself is never erased, so past reads keep seeing it.
func (s *LinkService) RemoveLink(ctx context.Context, id uint, accountID string) error {
	link, err := s.store.GetLink(ctx, id)
	if err != nil {
		return orNotFound(err)
	}

	owner, err := s.store.GetLatestAlias(ctx, link.OwnerHK)
	if err != nil {
		return orNotFound(err)
	}
	if owner.AuthorID != accountID {
		return ErrPermissionDenied
	}

	return s.store.SoftDeleteLink(ctx, id, time.Now().UTC())
}
