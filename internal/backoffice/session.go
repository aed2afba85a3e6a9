package backoffice

import (
	"context"
	"errors"

	"github.com/cobaltpay/backoffice/internal/refcache"
)

// Logout terminates the API session and resets the reference data cache, so
// nothing cached during one user's session leaks into the next one. A session
// that is already gone server-side still clears the local cache.
func Logout(ctx context.Context, client *Client, cache *refcache.Cache) error {
	_, err := client.Post(ctx, "/v1/auth/logout", nil)
	if err != nil && !errors.Is(err, ErrSessionLost) {
		return err
	}
	cache.Reset()
	return nil
}
