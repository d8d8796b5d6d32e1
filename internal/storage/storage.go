package storage

import (
	"bookmarks_service/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	usersTable     = "users"
	bookmarksTable = "bookmarks"
)

const uniqueViolationCode = "23505"

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already taken")
)

type Storage interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	CreateBookmark(ctx context.Context, ownerID int64, title, link, description string) (models.Bookmark, error)
	ListBookmarksByOwner(ctx context.Context, ownerID int64) ([]models.Bookmark, error)
	GetBookmarkByID(ctx context.Context, bookmarkID int64) (models.Bookmark, error)
	GetBookmarkForOwner(ctx context.Context, ownerID, bookmarkID int64) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, bookmarkID int64, patch models.BookmarkPatch) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, bookmarkID int64) error

	Close()
}

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(dbURL string) (*PostgresStorage, error) {
	const op = "storage.NewPostgresStorage"

	conn, err := pgxpool.Connect(context.Background(), dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStorage{
		db: conn,
	}, nil
}

func (p *PostgresStorage) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	const op = "storage.CreateUser"

	var user models.User
	query := fmt.Sprintf("INSERT INTO %s(email, password_hash) VALUES ($1, $2) RETURNING id, email, password_hash, created_at;", usersTable)

	err := p.db.QueryRow(ctx, query, email, passwordHash).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return user, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return user, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"

	var user models.User
	query := fmt.Sprintf("SELECT id, email, password_hash, created_at FROM %s WHERE email=$1;", usersTable)

	err := p.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return user, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "storage.GetUserByID"

	var user models.User
	query := fmt.Sprintf("SELECT id, email, password_hash, created_at FROM %s WHERE id=$1;", usersTable)

	err := p.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return user, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (p *PostgresStorage) CreateBookmark(ctx context.Context, ownerID int64, title, link, description string) (models.Bookmark, error) {
	const op = "storage.CreateBookmark"

	var bm models.Bookmark
	query := fmt.Sprintf(`INSERT INTO %s(owner_id, title, link, description)
	VALUES ($1, $2, $3, $4)
	RETURNING id, owner_id, title, link, description, created_at, updated_at;`, bookmarksTable)

	err := p.db.QueryRow(ctx, query, ownerID, title, link, description).Scan(
		&bm.ID, &bm.OwnerID, &bm.Title, &bm.Link, &bm.Description, &bm.CreatedAt, &bm.UpdatedAt,
	)
	if err != nil {
		return bm, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

func (p *PostgresStorage) ListBookmarksByOwner(ctx context.Context, ownerID int64) ([]models.Bookmark, error) {
	const op = "storage.ListBookmarksByOwner"

	var bookmarks []models.Bookmark
	query := fmt.Sprintf("SELECT id, owner_id, title, link, description, created_at, updated_at FROM %s WHERE owner_id=$1 ORDER BY id;", bookmarksTable)

	rows, err := p.db.Query(ctx, query, ownerID)
	if err != nil {
		return bookmarks, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bm models.Bookmark

		err := rows.Scan(&bm.ID, &bm.OwnerID, &bm.Title, &bm.Link, &bm.Description, &bm.CreatedAt, &bm.UpdatedAt)
		if err != nil {
			return bookmarks, fmt.Errorf("%s: %w", op, err)
		}

		bookmarks = append(bookmarks, bm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s (rows): %w", op, err)
	}

	return bookmarks, nil
}

func (p *PostgresStorage) GetBookmarkByID(ctx context.Context, bookmarkID int64) (models.Bookmark, error) {
	const op = "storage.GetBookmarkByID"

	var bm models.Bookmark
	query := fmt.Sprintf("SELECT id, owner_id, title, link, description, created_at, updated_at FROM %s WHERE id=$1;", bookmarksTable)

	err := p.db.QueryRow(ctx, query, bookmarkID).Scan(&bm.ID, &bm.OwnerID, &bm.Title, &bm.Link, &bm.Description, &bm.CreatedAt, &bm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bm, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return bm, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

func (p *PostgresStorage) GetBookmarkForOwner(ctx context.Context, ownerID, bookmarkID int64) (models.Bookmark, error) {
	const op = "storage.GetBookmarkForOwner"

	var bm models.Bookmark
	query := fmt.Sprintf("SELECT id, owner_id, title, link, description, created_at, updated_at FROM %s WHERE id=$1 AND owner_id=$2;", bookmarksTable)

	err := p.db.QueryRow(ctx, query, bookmarkID, ownerID).Scan(&bm.ID, &bm.OwnerID, &bm.Title, &bm.Link, &bm.Description, &bm.CreatedAt, &bm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bm, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return bm, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

func (p *PostgresStorage) UpdateBookmark(ctx context.Context, bookmarkID int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	const op = "storage.UpdateBookmark"

	var bm models.Bookmark
	query := fmt.Sprintf(`UPDATE %s
	SET title=COALESCE($2, title),
	    link=COALESCE($3, link),
	    description=COALESCE($4, description),
	    updated_at=now()
	WHERE id=$1
	RETURNING id, owner_id, title, link, description, created_at, updated_at;`, bookmarksTable)

	err := p.db.QueryRow(ctx, query, bookmarkID, patch.Title, patch.Link, patch.Description).Scan(
		&bm.ID, &bm.OwnerID, &bm.Title, &bm.Link, &bm.Description, &bm.CreatedAt, &bm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bm, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return bm, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

func (p *PostgresStorage) DeleteBookmark(ctx context.Context, bookmarkID int64) error {
	const op = "storage.DeleteBookmark"

	query := fmt.Sprintf("DELETE FROM %s WHERE id=$1;", bookmarksTable)

	tag, err := p.db.Exec(ctx, query, bookmarkID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (p *PostgresStorage) Close() {
	p.db.Close()
}
