// Package localstate persists the client's small key/value state: the bearer
// credential, the display email, and the single-use "next panel" hint.
package localstate

import "context"

// Well-known keys. All values are strings.
const (
	KeyAuthToken = "auth_token"
	KeyUserEmail = "user_email"
	KeyNextPanel = "next_panel"
)

// Repository is a string key/value store. Get returns ("", nil) for a
// missing key; absence and emptiness are deliberately indistinguishable,
// matching how the session layer treats both.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	List(ctx context.Context) (map[string]string, error)
}
