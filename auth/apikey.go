package auth

import (
	"sync"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
)

const defaultKeyHeader = "X-API-Key"

// APIKey authenticates requests by a static key carried in a header. Keys
// map to the identity they represent.
type APIKey struct {
	header string
	mu     sync.RWMutex
	keys   map[string]string
}

func NewAPIKey(keys map[string]string) *APIKey {
	copied := make(map[string]string, len(keys))
	for k, v := range keys {
		copied[k] = v
	}
	return &APIKey{header: defaultKeyHeader, keys: copied}
}

// WithHeader changes the header the key is read from.
func (a *APIKey) WithHeader(header string) *APIKey {
	if header != "" {
		a.header = header
	}
	return a
}

func (a *APIKey) Authenticate(req engine.Request) (engine.AuthUser, error) {
	key := req.Header(a.header)
	if key == "" {
		return nil, apierror.AuthenticationFailed("missing api key")
	}
	a.mu.RLock()
	identity, ok := a.keys[key]
	a.mu.RUnlock()
	if !ok {
		return nil, apierror.AuthenticationFailed("unknown api key")
	}
	return &KeyUser{Subject: identity}, nil
}

// KeyUser is the principal behind a static key. Key users are never staff.
type KeyUser struct {
	Subject string
}

func (u *KeyUser) Identity() string { return u.Subject }

func (u *KeyUser) IsAuthenticated() bool { return true }

func (u *KeyUser) IsStaff() bool { return false }
