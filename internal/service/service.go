package service

import (
	"bookmarks_service/internal/auth"
	"bookmarks_service/internal/models"
	"bookmarks_service/internal/storage"
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("credentials incorrect")
	ErrCredentialsTaken   = errors.New("credentials taken")
	ErrAccessDenied       = errors.New("access to resource denied")
	ErrNotFound           = errors.New("resource not found")
)

type Service interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	ListBookmarks(ctx context.Context, ownerID int64) ([]models.Bookmark, error)
	GetBookmarkByID(ctx context.Context, ownerID, bookmarkID int64) (*models.Bookmark, error)
	CreateBookmark(ctx context.Context, ownerID int64, title, link, description string) (models.Bookmark, error)
	EditBookmark(ctx context.Context, ownerID, bookmarkID int64, patch models.BookmarkPatch) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, ownerID, bookmarkID int64) error
}

// ListCache is the seam to the per-owner bookmark list cache.
type ListCache interface {
	Get(ctx context.Context, ownerID int64) ([]models.Bookmark, bool, error)
	Set(ctx context.Context, ownerID int64, bookmarks []models.Bookmark) error
	Invalidate(ctx context.Context, ownerID int64) error
}

type service struct {
	storage storage.Storage
	cache   ListCache
	tokens  *auth.TokenManager
}

func NewService(st storage.Storage, cache ListCache, tokens *auth.TokenManager) *service {
	return &service{
		storage: st,
		cache:   cache,
		tokens:  tokens,
	}
}
