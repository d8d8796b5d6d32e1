package service

import (
	"bookmarks_service/internal/auth"
	"bookmarks_service/internal/models"
	"bookmarks_service/internal/storage"
	"context"
	"sync"
	"testing"
	"time"
)

// --- fakes ---

type fakeStorage struct {
	mu sync.Mutex

	users     map[int64]models.User
	bookmarks map[int64]models.Bookmark

	nextUserID     int64
	nextBookmarkID int64

	listCalls int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:     make(map[int64]models.User),
		bookmarks: make(map[int64]models.Bookmark),
	}
}

func (f *fakeStorage) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return models.User{}, storage.ErrEmailTaken
		}
	}

	f.nextUserID++
	user := models.User{
		ID:           f.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}

	return models.User{}, storage.ErrNotFound
}

func (f *fakeStorage) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}

	return user, nil
}

func (f *fakeStorage) CreateBookmark(ctx context.Context, ownerID int64, title, link, description string) (models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextBookmarkID++
	now := time.Now()
	bm := models.Bookmark{
		ID:          f.nextBookmarkID,
		OwnerID:     ownerID,
		Title:       title,
		Link:        link,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.bookmarks[bm.ID] = bm

	return bm, nil
}

func (f *fakeStorage) ListBookmarksByOwner(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++

	var out []models.Bookmark
	for id := int64(1); id <= f.nextBookmarkID; id++ {
		if bm, ok := f.bookmarks[id]; ok && bm.OwnerID == ownerID {
			out = append(out, bm)
		}
	}

	return out, nil
}

func (f *fakeStorage) GetBookmarkByID(ctx context.Context, bookmarkID int64) (models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bm, ok := f.bookmarks[bookmarkID]
	if !ok {
		return models.Bookmark{}, storage.ErrNotFound
	}

	return bm, nil
}

func (f *fakeStorage) GetBookmarkForOwner(ctx context.Context, ownerID, bookmarkID int64) (models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bm, ok := f.bookmarks[bookmarkID]
	if !ok || bm.OwnerID != ownerID {
		return models.Bookmark{}, storage.ErrNotFound
	}

	return bm, nil
}

func (f *fakeStorage) UpdateBookmark(ctx context.Context, bookmarkID int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bm, ok := f.bookmarks[bookmarkID]
	if !ok {
		return models.Bookmark{}, storage.ErrNotFound
	}

	if patch.Title != nil {
		bm.Title = *patch.Title
	}
	if patch.Link != nil {
		bm.Link = *patch.Link
	}
	if patch.Description != nil {
		bm.Description = *patch.Description
	}
	bm.UpdatedAt = time.Now()
	f.bookmarks[bookmarkID] = bm

	return bm, nil
}

func (f *fakeStorage) DeleteBookmark(ctx context.Context, bookmarkID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookmarks[bookmarkID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.bookmarks, bookmarkID)

	return nil
}

func (f *fakeStorage) Close() {}

type fakeCache struct {
	mu sync.Mutex

	entries map[int64][]models.Bookmark

	sets          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[int64][]models.Bookmark),
	}
}

func (f *fakeCache) Get(ctx context.Context, ownerID int64) ([]models.Bookmark, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bookmarks, ok := f.entries[ownerID]

	return bookmarks, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, ownerID int64, bookmarks []models.Bookmark) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sets++
	f.entries[ownerID] = bookmarks

	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invalidations++
	delete(f.entries, ownerID)

	return nil
}

func newTestService(t *testing.T) (Service, *fakeStorage, *fakeCache, *auth.TokenManager) {
	t.Helper()

	st := newFakeStorage()
	c := newFakeCache()
	tokens := auth.NewTokenManager("test-secret", 15*time.Minute)

	return NewService(st, c, tokens), st, c, tokens
}
