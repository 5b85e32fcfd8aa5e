package httpapi

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophprofile/internal/server/services"
)

// The HTTP client of the settings app against the real handlers.
func TestClientContract(t *testing.T) {
	ctx := context.Background()
	svc := services.NewUserService(nil, repomanager.NewMemoryRepositoryManager(),
		&config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour})

	alexUser, token, err := svc.Seed(ctx, "Alex", "alex@example.com")
	require.NoError(t, err)
	_, _, err = svc.Seed(ctx, "Sam", "sam@example.com")
	require.NoError(t, err)

	s := NewServer("127.0.0.1:0", logging.NewNop(), svc)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.App().Listener(ln) }()
	t.Cleanup(func() { _ = s.App().Shutdown() })

	c := client.NewHTTPClient("http://"+ln.Addr().String(), client.WithTimeout(5*time.Second))
	defer c.Close()

	require.Eventually(t, func() bool { return c.Ping(ctx) == nil }, 2*time.Second, 10*time.Millisecond)

	id, err := c.GetProfile(ctx, models.Credential(token))
	require.NoError(t, err)
	assert.Equal(t, alexUser.ID, id.ID)
	assert.Equal(t, "Alex", id.DisplayName)

	update, err := c.UpdateProfile(ctx, "Alex Doe", models.Credential(token))
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", update.Identity.DisplayName)
	assert.NotEqual(t, models.Credential(token), update.Credential)

	// The previous credential is no longer accepted.
	_, err = c.GetProfile(ctx, models.Credential(token))
	var rej *client.RejectionError
	require.True(t, errors.As(err, &rej), "got %v", err)
	assert.Equal(t, msgInvalidToken, rej.Reason)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = c.UpdateProfile(ctx, "sam", update.Credential)
	require.True(t, errors.As(err, &rej), "got %v", err)
	assert.Equal(t, msgNameTaken, rej.Reason)
	assert.Equal(t, 409, rej.Status)
}
