package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qtje/comic/internal/cache"
	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/store"
)

// orNotFound translates the store's record-not-found into the service
// sentinel; everything else passes through.
func orNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// NewAliasService creates a new AliasService. The conflict cache is
// optional; without it conflict lookups hit the store every time.
func NewAliasService(store store.Store, conflicts *cache.ConflictCache) *AliasService {
	return &AliasService{
		store:     store,
		conflicts: conflicts,
	}
}

// AliasService manages pen names and their conflict state.
type AliasService struct {
	store     store.Store
	conflicts *cache.ConflictCache
}

// CreateAlias saves the first version of a new alias for the acting account.
func (s *AliasService) CreateAlias(ctx context.Context, displayName, accountID string) (*model.Alias, error) {
	verr := NewValidationError()
	if displayName == "" {
		verr.Add("display_name", "display name is required")
	}

	if _, err := s.store.GetAuthor(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.Add("owner", "unknown account")
		} else {
			return nil, err
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	alias := &model.Alias{
		DisplayName: displayName,
		AuthorID:    accountID,
	}
	if err := s.store.SaveAlias(ctx, alias); err != nil {
		return nil, err
	}

	return alias, nil
}

// RenameAlias saves a new version of an existing alias.
func (s *AliasService) RenameAlias(ctx context.Context, hk uint, displayName, accountID string) (*model.Alias, error) {
	alias, err := s.store.GetLatestAlias(ctx, hk)
	if err != nil {
		return nil, orNotFound(err)
	}

	if alias.AuthorID != accountID {
		return nil, ErrPermissionDenied
	}

	verr := NewValidationError()
	if displayName == "" {
		verr.Add("display_name", "display name is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	alias.DisplayName = displayName
	if err := s.store.SaveAlias(ctx, alias); err != nil {
		return nil, err
	}

	return alias, nil
}

func (s *AliasService) ListAliases(ctx context.Context, authorID string) ([]*model.Alias, error) {
	return s.store.ListLatestAliases(ctx, authorID)
}

// RequireOwned returns the latest version of the alias if it is owned by the
// acting account.
func (s *AliasService) RequireOwned(ctx context.Context, hk uint, accountID string) (*model.Alias, error) {
	alias, err := s.store.GetLatestAlias(ctx, hk)
	if err != nil {
		return nil, orNotFound(err)
	}

	if alias.AuthorID != accountID {
		return nil, ErrPermissionDenied
	}

	return alias, nil
}

// ConflictedNames returns the set of display names used by two or more
// distinct aliases, served from the conflict cache when it is warm.
func (s *AliasService) ConflictedNames(ctx context.Context) (map[string]bool, error) {
	if s.conflicts != nil {
		if names, err := s.conflicts.Get(ctx); err == nil {
			return names, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			logrus.Errorf("error reading conflict cache: %v", err)
		}
	}

	return s.computeConflictedNames(ctx)
}

func (s *AliasService) computeConflictedNames(ctx context.Context) (map[string]bool, error) {
	aliases, err := s.store.ListLatestAliases(ctx, "")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(aliases))
	for _, alias := range aliases {
		counts[alias.DisplayName]++
	}

	conflicted := make(map[string]bool)
	for name, n := range counts {
		if n >= 2 {
			conflicted[name] = true
		}
	}

	return conflicted, nil
}

// IsConflicted reports whether the display name collides across aliases.
func (s *AliasService) IsConflicted(ctx context.Context, displayName string) (bool, error) {
	conflicted, err := s.ConflictedNames(ctx)
	if err != nil {
		return false, err
	}
	return conflicted[displayName], nil
}

// RefreshConflicts recomputes the conflicted name set into the cache. The
// jobs runner calls this on an interval.
func (s *AliasService) RefreshConflicts(ctx context.Context) error {
	if s.conflicts == nil {
		return nil
	}

	conflicted, err := s.computeConflictedNames(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(conflicted))
	for name := range conflicted {
		names = append(names, name)
	}

	return s.conflicts.Put(ctx, names)
}
