package service

import (
	"bookmarks_service/internal/auth"
	"bookmarks_service/internal/models"
	"bookmarks_service/internal/storage"
	"context"
	"errors"
	"fmt"
)

// dummyHash keeps the unknown-email path doing the same argon2 work as a real
// verification, so sign-in latency does not reveal whether the email exists.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func (s *service) SignUp(ctx context.Context, email, password string) (string, error) {
	const op = "service.SignUp"

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.CreateUser(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return "", ErrCredentialsTaken
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		// the user record already persisted, no rollback: a signing failure
		// is a server misconfiguration, not a client problem
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (string, error) {
	const op = "service.SignIn"

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_, _ = auth.CheckPasswordHash(dummyHash, password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := auth.CheckPasswordHash(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "service.GetUserByID"

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
