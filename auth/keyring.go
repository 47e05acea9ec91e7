// Package auth provides a high-level API for persisting and retrieving the cloud session from the system keyring.
package auth

import (
	"github.com/aniko-app/aniko/constant"
	"github.com/zalando/go-keyring"
)

const (
	service    = "aniko"
	userEntry  = "cloud-user"
	tokenEntry = "cloud-token"
)

// SetSession persists the authenticated cloud identity and its bearer token.
func SetSession(userID, token string) error {
	if err := keyring.Set(service, userEntry, userID); err != nil {
		return err
	}
	return keyring.Set(service, tokenEntry, token)
}

// UserID returns the active identity. Without a stored session the demo identity
// is returned, which routes all persistence to local-only storage.
func UserID() string {
	id, err := keyring.Get(service, userEntry)
	if err != nil || id == "" {
		return constant.DemoUserID
	}
	return id
}

// Token retrieves the cloud bearer token for the active session.
func Token() (string, error) {
	return keyring.Get(service, tokenEntry)
}

// ClearSession removes the stored identity and token, reverting to the demo identity.
func ClearSession() error {
	_ = keyring.Delete(service, userEntry)
	return keyring.Delete(service, tokenEntry)
}
