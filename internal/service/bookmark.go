package service

import (
	"bookmarks_service/internal/models"
	"bookmarks_service/internal/storage"
	"context"
	"errors"
	"fmt"
)

func (s *service) ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	const op = "service.ListBookmarks"

	cached, ok, err := s.cache.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		return cached, nil
	}

	bookmarks, err := s.storage.ListBookmarksByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, ownerID, bookmarks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookmarks, nil
}

func (s *service) GetBookmarkByID(ctx context.Context, ownerID, bookmarkID int64) (*models.Bookmark, error) {
	const op = "service.GetBookmarkByID"

	// owner-scoped fetch: a foreign bookmark looks exactly like a missing one
	bm, err := s.storage.GetBookmarkForOwner(ctx, ownerID, bookmarkID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &bm, nil
}

func (s *service) CreateBookmark(ctx context.Context, ownerID int64, title, link, description string) (models.Bookmark, error) {
	const op = "service.CreateBookmark"

	bm, err := s.storage.CreateBookmark(ctx, ownerID, title, link, description)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

func (s *service) EditBookmark(ctx context.Context, ownerID, bookmarkID int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	const op = "service.EditBookmark"

	bm, err := s.storage.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Bookmark{}, ErrAccessDenied
		}
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}
	if bm.OwnerID != ownerID {
		return models.Bookmark{}, ErrAccessDenied
	}

	updated, err := s.storage.UpdateBookmark(ctx, bookmarkID, patch)
	if err != nil {
		// the row may vanish between the ownership check and the update
		if errors.Is(err, storage.ErrNotFound) {
			return models.Bookmark{}, ErrAccessDenied
		}
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		return models.Bookmark{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *service) DeleteBookmark(ctx context.Context, ownerID, bookmarkID int64) error {
	const op = "service.DeleteBookmark"

	bm, err := s.storage.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if bm.OwnerID != ownerID {
		return ErrAccessDenied
	}

	if err := s.storage.DeleteBookmark(ctx, bookmarkID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
