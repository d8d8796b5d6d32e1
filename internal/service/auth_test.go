package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignUpThenSignIn(t *testing.T) {
	t.Parallel()

	svc, _, _, tokens := newTestService(t)
	ctx := context.Background()

	signUpToken, err := svc.SignUp(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, signUpToken)

	signInToken, err := svc.SignIn(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, signInToken)

	for _, token := range []string{signUpToken, signInToken} {
		userID, email, err := tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, int64(1), userID)
		require.Equal(t, "alice@example.com", email)
	}
}

func TestSignUp_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "alice@example.com", "completely-different")
	require.ErrorIs(t, err, ErrCredentialsTaken)
}

func TestSignIn_WrongPasswordAndUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	// both failure modes surface as the same error kind
	_, err = svc.SignIn(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = svc.GetUserByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}
