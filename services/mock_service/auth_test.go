package mock_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/zsmartex/tradedesk/services/session_service"
)

func TestAuthClient(t *testing.T) {
	ctx := context.Background()
	client := NewAuthClient()

	profile, err := client.SignUp(ctx, "Trader@Example.com", "s3cret-pass", null.StringFrom("trader"))
	require.NoError(t, err)
	assert.Equal(t, "trader@example.com", profile.Email)
	assert.NotEqual(t, "s3cret-pass", profile.PasswordDigest)

	_, err = client.SignUp(ctx, "trader@example.com", "other", null.String{})
	assert.ErrorIs(t, err, session_service.ErrEmailTaken)

	signedIn, err := client.SignIn(ctx, "trader@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, signedIn.ID)

	_, err = client.SignIn(ctx, "trader@example.com", "wrong")
	assert.ErrorIs(t, err, session_service.ErrInvalidCredentials)

	_, err = client.Profile(ctx, "missing")
	assert.ErrorIs(t, err, session_service.ErrUserNotFound)
}
