package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHousekeepingClearsOnlyExpiredTokens(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	stale, err := svc.Register(ctx, registerInput("jane@acme.com"))
	require.NoError(t, err)
	fresh, err := svc.Register(ctx, registerInput("bob@acme.com"))
	require.NoError(t, err)

	// Push the first account's token into the past.
	user, err := st.Users().GetUserByID(ctx, stale.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user.VerificationTokenHash)
	require.NoError(t, st.Users().SetVerificationToken(ctx, user.ID, *user.VerificationTokenHash, time.Now().Add(-time.Minute)))

	// The worker sweeps once on startup.
	hk := NewHousekeepingService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	hk.Start()
	hk.Stop()

	swept, err := st.Users().GetUserByID(ctx, stale.User.ID)
	require.NoError(t, err)
	require.Nil(t, swept.VerificationTokenHash)
	require.Nil(t, swept.VerificationTokenExpiresAt)

	kept, err := st.Users().GetUserByID(ctx, fresh.User.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.VerificationTokenHash)
}
