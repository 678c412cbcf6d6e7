// Package session persists the authenticated X-Track identity across runs
// using the OS credential store.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/xtrack/xtracktui/xtrack"
)

const (
	defaultSecretService = "xtracktui"
	tokenEntry           = "xtrack_token"
	userEntry            = "xtrack_user"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no saved session")

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// Session is the persisted identity: the bearer token plus the user it
// belongs to. It is replaced wholesale on login and removed on logout,
// never mutated in place.
type Session struct {
	Token string      `json:"token"`
	User  xtrack.User `json:"user"`
}

// Load restores a saved session.
//
// Order of precedence:
// 1) XTRACK_TOKEN environment variable (user details are left empty).
// 2) The two credential-store entries written by Save.
func Load() (*Session, error) {
	if token := strings.TrimSpace(os.Getenv("XTRACK_TOKEN")); token != "" {
		return &Session{Token: token}, nil
	}

	service := serviceName()

	token, err := keyringGet(service, tokenEntry)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read keyring item service=%q entry=%q: %w", service, tokenEntry, err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoSession
	}

	session := &Session{Token: token}

	rawUser, err := keyringGet(service, userEntry)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("read keyring item service=%q entry=%q: %w", service, userEntry, err)
	}
	if rawUser != "" {
		if err := json.Unmarshal([]byte(rawUser), &session.User); err != nil {
			// A corrupt user entry invalidates the whole session rather than
			// authenticating an unknown identity.
			return nil, fmt.Errorf("decode saved user: %w", err)
		}
	}

	return session, nil
}

// Save stores the session in the system credential store.
func Save(s *Session) error {
	if s == nil || strings.TrimSpace(s.Token) == "" {
		return errors.New("session token cannot be empty")
	}

	service := serviceName()

	if err := keyringSet(service, tokenEntry, strings.TrimSpace(s.Token)); err != nil {
		return fmt.Errorf("store keyring item service=%q entry=%q: %w", service, tokenEntry, err)
	}

	rawUser, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := keyringSet(service, userEntry, string(rawUser)); err != nil {
		return fmt.Errorf("store keyring item service=%q entry=%q: %w", service, userEntry, err)
	}

	return nil
}

// Clear removes the saved session. Missing entries are not an error, so
// logout is idempotent.
func Clear() error {
	service := serviceName()

	for _, entry := range []string{tokenEntry, userEntry} {
		if err := keyringDelete(service, entry); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("delete keyring item service=%q entry=%q: %w", service, entry, err)
		}
	}

	return nil
}

func serviceName() string {
	if value := strings.TrimSpace(os.Getenv("XTRACK_KEYCHAIN_SERVICE")); value != "" {
		return value
	}
	return defaultSecretService
}
